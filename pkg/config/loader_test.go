package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/config"
)

type serverConfig struct {
	Addr    string        `env:"CFG_TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"5s"`
	Debug   bool          `env:"CFG_TEST_DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"initial"`
}

func TestLoad(t *testing.T) {
	t.Run("parses values and defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFG_TEST_ADDR", ":9000")
		t.Setenv("CFG_TEST_DEBUG", "true")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.True(t, cfg.Debug)
	})

	t.Run("returns parse error for missing required value", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("retries after a failed parse", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		require.Error(t, config.Load(&cfg))

		t.Setenv("CFG_TEST_REQUIRED_SECRET", "s3cr3t")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "s3cr3t", cfg.Secret)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFG_TEST_CACHED", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_TEST_CACHED", "second")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		var cfg *serverConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
