package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/secretkeeper/pkg/logger"
)

// Middleware resolves the request's session and stores it in the context.
// Requests without a valid session pass through untouched; a stale token
// cookie is cleared.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Get(r.Context(), r)
		if err != nil {
			switch {
			case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
				if _, tokenErr := m.transport.GetToken(r); tokenErr == nil {
					_ = m.transport.ClearToken(w)
				}
			default:
				m.logger.ErrorContext(r.Context(), "failed to load session", logger.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if m.shouldUpdateActivity(session) {
			m.queueActivityUpdate(session)
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}
