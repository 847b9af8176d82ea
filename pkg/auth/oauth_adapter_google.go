package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthProviderGoogle identifies Google-linked accounts.
const OAuthProviderGoogle = "google"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Only the subject id is read, so no other scope is ever requested.
const googleScope = "profile"

// GoogleOAuthConfig holds configuration for Google OAuth provider.
type GoogleOAuthConfig struct {
	ClientID     string        `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string        `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"GOOGLE_OAUTH_REDIRECT_URL" envDefault:"http://localhost:3000/auth/google/secrets"`
	StateTTL     time.Duration `env:"GOOGLE_OAUTH_STATE_TTL" envDefault:"10m"`
	Timeout      time.Duration `env:"GOOGLE_OAUTH_TIMEOUT" envDefault:"10s"`

	// Endpoint overrides, empty means Google's production endpoints.
	AuthURL     string `env:"GOOGLE_OAUTH_AUTH_URL"`
	TokenURL    string `env:"GOOGLE_OAUTH_TOKEN_URL"`
	UserInfoURL string `env:"GOOGLE_OAUTH_USERINFO_URL"`
}

type googleAdapter struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// NewGoogleAdapter creates a new Google OAuth provider adapter.
func NewGoogleAdapter(cfg GoogleOAuthConfig) ProviderAdapter {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = googleUserInfoURL
	}

	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{googleScope},
			Endpoint:     endpoint,
		},
		httpClient:  &http.Client{Timeout: timeout},
		userInfoURL: userInfoURL,
	}
}

func (a *googleAdapter) ProviderID() string {
	return OAuthProviderGoogle
}

func (a *googleAdapter) AuthURL(state string) (string, error) {
	return a.conf.AuthCodeURL(state), nil
}

// ResolveProfile exchanges the code and reads the OpenID subject from the
// userinfo endpoint.
func (a *googleAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrInvalidCode, err)
	}

	u, err := a.fetchGoogleUser(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("fetch google user: %w", err)
	}
	if u.Sub == "" {
		return ProviderProfile{}, ErrMissingSubject
	}

	return ProviderProfile{ProviderUserID: u.Sub}, nil
}

func (a *googleAdapter) fetchGoogleUser(ctx context.Context, accessToken string) (*gUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var user gUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

type gUser struct {
	Sub string `json:"sub"`
}

var _ ProviderAdapter = (*googleAdapter)(nil)
