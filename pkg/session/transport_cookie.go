package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
)

// CookieTransport keeps the token in an encrypted, HTTP-only cookie.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	options    []cookie.Option
}

func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		options:    opts,
	}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookieMgr.GetEncrypted(r, t.cookieName)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
	}, t.options...)
	return t.cookieMgr.SetEncrypted(w, t.cookieName, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
