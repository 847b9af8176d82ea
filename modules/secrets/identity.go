package secrets

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/secretkeeper/handler"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/session"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

// Identity is the authenticated caller, resolved from the store for the
// current request only.
type Identity struct {
	UserID   uuid.UUID
	Username string
	secrets  []string
}

// Secrets returns a copy of the caller's secrets as loaded for this request.
func (i Identity) Secrets() []string {
	return slices.Clone(i.secrets)
}

type identityKey struct{}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext reports the caller, or false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// resolveIdentity turns the session bound to the request into an Identity.
// A session whose user is gone is revoked; a store outage leaves the
// request anonymous.
func resolveIdentity(storage users.Storage, sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := session.UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := storage.FindByID(r.Context(), userID)
			switch {
			case errors.Is(err, users.ErrUserNotFound), errors.Is(err, users.ErrInvalidAccount):
				log.WarnContext(r.Context(), "session refers to unusable user",
					logger.UserID(userID),
					logger.Error(err),
				)
				if err := sessions.Logout(r.Context(), w, r); err != nil {
					log.ErrorContext(r.Context(), "failed to revoke session", logger.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			case err != nil:
				log.ErrorContext(r.Context(), "failed to resolve identity",
					logger.UserID(userID),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := withIdentity(r.Context(), Identity{
				UserID:   user.ID,
				Username: user.Username,
				secrets:  user.Secrets,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireIdentity sends anonymous callers to /login.
func requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			_ = handler.Redirect("/login").Render(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
