package users

import (
	"context"

	"github.com/google/uuid"
)

// Storage is the persistence contract for users.
type Storage interface {
	// FindByUsername returns ErrUserNotFound when no user has username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID returns ErrUserNotFound when no user has id.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// CreateLocal creates a user with a local account and no secrets.
	// It returns ErrDuplicateUsername when the username is taken.
	CreateLocal(ctx context.Context, username string, acc LocalAccount) (*User, error)

	// CreateOrFindFederated atomically returns the user linked to acc,
	// creating it under derivedUsername on first use. Concurrent callers
	// with the same account observe the same user.
	CreateOrFindFederated(ctx context.Context, acc FederatedAccount, derivedUsername string) (*User, error)

	// AppendSecret appends text to the end of the user's secrets.
	AppendSecret(ctx context.Context, id uuid.UUID, text string) error
}
