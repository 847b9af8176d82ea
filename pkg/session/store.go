package session

import (
	"context"
	"time"
)

// Store persists sessions keyed by token.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get returns the session for token. Unknown tokens yield
	// ErrSessionNotFound and expired ones ErrSessionExpired.
	Get(ctx context.Context, token string) (*Session, error)

	// Touch records activity and moves the expiry forward.
	Touch(ctx context.Context, token string, lastActivity, expiresAt time.Time) error

	// Delete removes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
