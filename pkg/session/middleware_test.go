package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/session"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t)

	var (
		gotID uuid.UUID
		found bool
	)
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, found = session.UserIDFromContext(r.Context())
	}))

	t.Run("anonymous request passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, found)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("session is placed in the context", func(t *testing.T) {
		userID := uuid.New()
		lw := httptest.NewRecorder()
		_, err := m.Login(context.Background(), lw, httptest.NewRequest(http.MethodPost, "/", nil), userID)
		require.NoError(t, err)

		h.ServeHTTP(httptest.NewRecorder(), requestWithCookies(lw))
		assert.True(t, found)
		assert.Equal(t, userID, gotID)
	})

	t.Run("revoked token cookie is cleared", func(t *testing.T) {
		lw := httptest.NewRecorder()
		_, err := m.Login(context.Background(), lw, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New())
		require.NoError(t, err)

		r := requestWithCookies(lw)
		require.NoError(t, m.Logout(context.Background(), httptest.NewRecorder(), r))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.False(t, found)
		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, -1, cleared[0].MaxAge)
	})
}
