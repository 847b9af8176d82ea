package secrets

import (
	"log/slog"

	"github.com/dmitrymomot/secretkeeper/handler"
	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
	"github.com/dmitrymomot/secretkeeper/pkg/httpserver"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/metrics"
	"github.com/dmitrymomot/secretkeeper/pkg/session"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

// Service serves the secretkeeper pages.
type Service struct {
	cfg       Config
	storage   users.Storage
	local     *auth.LocalStrategy
	federated *auth.FederatedStrategy
	state     *auth.StateCookie
	sessions  *session.Manager
	flash     *cookie.Manager
	metrics   *metrics.Metrics
	views     *Views
	checks    []httpserver.Check
	logger    *slog.Logger

	errorHandler handler.ErrorHandler[handler.Context]
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithFederated enables the Google routes. Both arguments are required.
func WithFederated(strategy *auth.FederatedStrategy, state *auth.StateCookie) Option {
	if strategy == nil || state == nil {
		panic("secrets: federated strategy and state cookie are required")
	}
	return func(s *Service) {
		s.federated = strategy
		s.state = state
	}
}

// WithFlash enables one-shot messages carried across redirects.
func WithFlash(cookies *cookie.Manager) Option {
	return func(s *Service) { s.flash = cookies }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithViews(v *Views) Option {
	return func(s *Service) {
		if v != nil {
			s.views = v
		}
	}
}

// WithReadinessChecks adds dependency probes served at /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *Service) { s.checks = append(s.checks, checks...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wires the route layer. storage, local and sessions are required.
func NewService(storage users.Storage, local *auth.LocalStrategy, sessions *session.Manager, opts ...Option) *Service {
	if storage == nil || local == nil || sessions == nil {
		panic("secrets: storage, local strategy and session manager are required")
	}

	s := &Service{
		cfg:      DefaultConfig(),
		storage:  storage,
		local:    local,
		sessions: sessions,
		views:    DefaultViews(),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(logger.Component("secrets"))
	s.errorHandler = handler.NewErrorHandler(s.logger, s.views.Error)
	return s
}
