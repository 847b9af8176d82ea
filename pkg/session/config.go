package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// IdleTimeout ends a session that saw no request for this long.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`

	// MaxLifetime caps a session regardless of activity.
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"720h"`

	// ActivityUpdateThreshold is the minimum time between activity updates.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for the in-memory store (0 disables it).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// Store selects the backend: "memory" or "redis".
	Store string `env:"SESSION_STORE" envDefault:"memory"`

	// RedisKeyPrefix namespaces session keys in Redis.
	RedisKeyPrefix string `env:"SESSION_REDIS_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:              "sid",
		IdleTimeout:             2 * time.Hour,
		MaxLifetime:             30 * 24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
		Store:                   StoreMemory,
		RedisKeyPrefix:          "session:",
	}
}

// Store backend names accepted by Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// NewFromConfig creates a Manager from cfg. The store and cookie manager
// still come from opts.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
