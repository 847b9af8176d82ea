package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind a session token.
type Session struct {
	ID             uuid.UUID `json:"id"`
	Token          string    `json:"token"`
	UserID         uuid.UUID `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// newSession creates a session for userID that expires after ttl.
func newSession(token string, userID uuid.UUID, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         userID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
	}
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
