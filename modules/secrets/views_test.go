package secrets_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/handler"
	"github.com/dmitrymomot/secretkeeper/modules/secrets"
)

func TestDefaultViews(t *testing.T) {
	t.Parallel()

	v := secrets.DefaultViews()

	t.Run("secret text is escaped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := v.Secrets(secrets.SecretsPageParams{Secrets: []string{"<script>x</script>"}}).Render(context.Background(), &buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "&lt;script&gt;")
		assert.NotContains(t, buf.String(), "<script>x")
	})

	t.Run("empty list shows placeholder", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := v.Secrets(secrets.SecretsPageParams{EmptyMessage: "nothing here"}).Render(context.Background(), &buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "nothing here")
	})

	t.Run("google button follows flag", func(t *testing.T) {
		t.Parallel()

		var on, off bytes.Buffer
		require.NoError(t, v.Login(secrets.LoginPageParams{GoogleEnabled: true}).Render(context.Background(), &on))
		require.NoError(t, v.Login(secrets.LoginPageParams{}).Render(context.Background(), &off))
		assert.Contains(t, on.String(), "/auth/google")
		assert.NotContains(t, off.String(), "/auth/google")
	})

	t.Run("error page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := v.Error(handler.ErrorPageParams{Error: "Not Found", StatusCode: 404, RequestID: "req-1"}).Render(context.Background(), &buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "404")
		assert.Contains(t, buf.String(), "req-1")
	})
}
