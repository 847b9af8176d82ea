package secrets

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/secretkeeper/handler"
	"github.com/dmitrymomot/secretkeeper/pkg/binder"
	"github.com/dmitrymomot/secretkeeper/pkg/httpserver"
)

// Router returns the full HTTP surface of the application.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		s.metrics.Middleware,
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(s.logger, s.cfg.ReadinessTimeout, s.checks...))
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	r.Handle("/css/*", http.FileServerFS(staticFS()))

	r.Group(func(r chi.Router) {
		r.Use(
			s.sessions.Middleware,
			resolveIdentity(s.storage, s.sessions, s.logger),
		)

		r.Get("/", wrap(s, s.home))
		r.Get("/login", wrap(s, s.loginPage))
		r.Get("/register", wrap(s, s.registerPage))
		r.Post("/login", wrap(s, s.login, binder.Form()))
		r.Post("/register", wrap(s, s.register, binder.Form()))
		r.Get("/logout", wrap(s, s.logout))

		if s.federated != nil {
			r.Get("/auth/google", wrap(s, s.googleStart))
			r.Get("/auth/google/secrets", wrap(s, s.googleCallback, binder.Query()))
		}

		r.Group(func(r chi.Router) {
			r.Use(requireIdentity)

			r.Get("/secrets", wrap(s, s.secretsPage))
			r.Get("/submit", wrap(s, s.submitPage))
			r.Post("/submit", wrap(s, s.submit, binder.Form()))
		})
	})

	return r
}

func wrap[R any](s *Service, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
	)
}
