package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets the session store. Defaults to a MemoryStore.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.config.IdleTimeout = d
	}
}

func WithMaxLifetime(d time.Duration) Option {
	return func(m *Manager) {
		m.config.MaxLifetime = d
	}
}

// WithCookieManager sets the cookie manager used by the default transport.
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

// WithLogger sets the logger for background failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
