package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/auth"
)

func fakeGoogle(t *testing.T, userinfoStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(userinfoStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{"sub": "1098765", "name": "Ada"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func googleConfig(srv *httptest.Server) auth.GoogleOAuthConfig {
	return auth.GoogleOAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/auth/google/secrets",
		AuthURL:      srv.URL + "/auth",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	}
}

func TestGoogleAdapter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("auth url requests profile scope only", func(t *testing.T) {
		t.Parallel()
		srv := fakeGoogle(t, http.StatusOK)
		adapter := auth.NewGoogleAdapter(googleConfig(srv))

		raw, err := adapter.AuthURL("state-1")
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)

		assert.Equal(t, "profile", u.Query().Get("scope"))
		assert.Equal(t, "state-1", u.Query().Get("state"))
		assert.Equal(t, "client", u.Query().Get("client_id"))
		assert.Equal(t, "code", u.Query().Get("response_type"))
		assert.Equal(t, "google", adapter.ProviderID())
	})

	t.Run("scope cannot be widened through the environment", func(t *testing.T) {
		t.Parallel()
		srv := fakeGoogle(t, http.StatusOK)

		var cfg auth.GoogleOAuthConfig
		require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{
			"GOOGLE_OAUTH_CLIENT_ID":     "client",
			"GOOGLE_OAUTH_CLIENT_SECRET": "secret",
			"GOOGLE_OAUTH_AUTH_URL":      srv.URL + "/auth",
			"GOOGLE_OAUTH_SCOPES":        "profile,email,openid",
		}}))

		raw, err := auth.NewGoogleAdapter(cfg).AuthURL("state-2")
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "profile", u.Query().Get("scope"))
	})

	t.Run("resolves subject id", func(t *testing.T) {
		t.Parallel()
		srv := fakeGoogle(t, http.StatusOK)

		profile, err := auth.NewGoogleAdapter(googleConfig(srv)).ResolveProfile(ctx, "good-code")
		require.NoError(t, err)
		assert.Equal(t, "1098765", profile.ProviderUserID)
	})

	t.Run("rejected code", func(t *testing.T) {
		t.Parallel()
		srv := fakeGoogle(t, http.StatusOK)

		_, err := auth.NewGoogleAdapter(googleConfig(srv)).ResolveProfile(ctx, "bad-code")
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	})

	t.Run("userinfo failure", func(t *testing.T) {
		t.Parallel()
		srv := fakeGoogle(t, http.StatusInternalServerError)

		_, err := auth.NewGoogleAdapter(googleConfig(srv)).ResolveProfile(ctx, "good-code")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}
