package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username and password are required")
)

// OAuth-specific errors
var (
	ErrProviderAuth   = errors.New("identity provider authentication failed")
	ErrInvalidState   = errors.New("invalid OAuth state")
	ErrInvalidCode    = errors.New("invalid OAuth code")
	ErrMissingSubject = errors.New("provider profile has no subject id")
)
