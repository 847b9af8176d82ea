// Package auth verifies who a request belongs to. It offers two strategies
// over the users.Storage credential store:
//
//   - LocalStrategy registers and authenticates username/password accounts.
//     Passwords are derived with PBKDF2-HMAC-SHA256 and a per-user random salt
//     by PasswordHasher; raw passwords are never stored.
//   - FederatedStrategy authenticates through an external identity provider
//     behind the ProviderAdapter interface. The first successful login for an
//     external id creates a user atomically; later logins find it.
//
// The Google adapter speaks OAuth2 authorization code flow via
// golang.org/x/oauth2 and requests only the "profile" scope. StateCookie
// carries the OAuth state parameter between redirect and callback in a
// short-lived encrypted cookie.
//
// Errors are sentinel values. Failed logins return ErrInvalidCredentials;
// when the username is unknown the error also matches users.ErrUserNotFound so
// callers may tell the two cases apart. Provider failures match
// ErrProviderAuth and wrap the cause.
//
//	local := auth.NewLocalStrategy(store)
//	user, err := local.Authenticate(ctx, username, password)
//	switch {
//	case errors.Is(err, users.ErrUserNotFound):
//	case errors.Is(err, auth.ErrInvalidCredentials):
//	}
package auth
