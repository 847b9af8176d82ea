package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
)

// DefaultStateCookie is the cookie carrying the OAuth state parameter.
const DefaultStateCookie = "oauth_state"

// StateCookie issues and checks the OAuth state parameter. The value is kept
// in an encrypted cookie for the round trip to the provider and is single use.
type StateCookie struct {
	cookies *cookie.Manager
	name    string
	ttl     time.Duration
}

func NewStateCookie(cookies *cookie.Manager, ttl time.Duration) *StateCookie {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &StateCookie{cookies: cookies, name: DefaultStateCookie, ttl: ttl}
}

// Issue generates a state value and sets the cookie.
func (s *StateCookie) Issue(w http.ResponseWriter) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	if err := s.cookies.SetEncrypted(w, s.name, state, cookie.WithMaxAge(int(s.ttl.Seconds()))); err != nil {
		return "", err
	}
	return state, nil
}

// Verify consumes the cookie and compares it with the state returned by the
// provider.
func (s *StateCookie) Verify(w http.ResponseWriter, r *http.Request, state string) error {
	stored, err := s.cookies.GetEncrypted(r, s.name)
	if err != nil {
		return errors.Join(ErrInvalidState, err)
	}
	s.cookies.Delete(w, s.name)

	if state == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(state)) != 1 {
		return ErrInvalidState
	}
	return nil
}
