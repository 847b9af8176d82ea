package users

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrStoreUnavailable  = errors.New("credential store unavailable")

	// ErrInvalidAccount is returned for records carrying neither or both
	// account variants. Such records never authenticate.
	ErrInvalidAccount = errors.New("user record has no valid account")
)
