package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
)

func TestStateCookie(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	states := auth.NewStateCookie(cookies, time.Minute)

	issue := func(t *testing.T) (string, *http.Request) {
		t.Helper()
		w := httptest.NewRecorder()
		state, err := states.Issue(w)
		require.NoError(t, err)
		require.NotEmpty(t, state)

		r := httptest.NewRequest(http.MethodGet, "/auth/google/secrets?state="+state, nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}
		return state, r
	}

	t.Run("matching state", func(t *testing.T) {
		t.Parallel()
		state, r := issue(t)
		w := httptest.NewRecorder()
		require.NoError(t, states.Verify(w, r, state))

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, auth.DefaultStateCookie, cleared[0].Name)
		assert.Equal(t, -1, cleared[0].MaxAge)
	})

	t.Run("mismatched state", func(t *testing.T) {
		t.Parallel()
		_, r := issue(t)
		assert.ErrorIs(t, states.Verify(httptest.NewRecorder(), r, "forged"), auth.ErrInvalidState)
	})

	t.Run("empty state", func(t *testing.T) {
		t.Parallel()
		_, r := issue(t)
		assert.ErrorIs(t, states.Verify(httptest.NewRecorder(), r, ""), auth.ErrInvalidState)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.ErrorIs(t, states.Verify(httptest.NewRecorder(), r, "x"), auth.ErrInvalidState)
	})
}
