package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
)

// Manager issues, resolves and revokes sessions.
type Manager struct {
	store         Store
	ownedStore    *MemoryStore
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
	now           func() time.Time
	activityChan  chan activityUpdate
	done          chan struct{}
}

type activityUpdate struct {
	token        string
	lastActivity time.Time
	expiresAt    time.Time
}

// New creates a session manager. It panics when no cookie manager is
// configured.
func New(opts ...Option) *Manager {
	m := &Manager{
		config:       DefaultConfig(),
		logger:       slog.Default(),
		now:          time.Now,
		activityChan: make(chan activityUpdate, 1000),
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.ownedStore = NewMemoryStore(m.config.CleanupInterval)
		m.store = m.ownedStore
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.cookieOptions...)
	}

	go m.activityWorker()

	return m
}

// Login binds a fresh session to userID. Any session the request already
// carried is revoked first so a token never survives a login.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidSession
	}

	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			m.logger.WarnContext(ctx, "failed to revoke previous session", logger.Error(err))
		}
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	session := newSession(token, userID, now, m.expiry(now, now).Sub(now))
	if err := m.store.Create(ctx, session); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	if err := m.transport.SetToken(w, session.Token, m.config.MaxLifetime); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}

	return session, nil
}

// Get resolves the session carried by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Logout revokes the request's session and clears the token on the client.
// It succeeds when there is no session to revoke.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			m.logger.WarnContext(ctx, "failed to delete session", logger.Error(err))
		}
	}
	return m.transport.ClearToken(w)
}

// Close stops the activity worker after draining queued updates. A store
// passed through WithStore stays open; the default MemoryStore is closed.
func (m *Manager) Close() error {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	if m.ownedStore != nil {
		return m.ownedStore.Close()
	}
	return nil
}

func (m *Manager) shouldUpdateActivity(session *Session) bool {
	return m.now().Sub(session.LastActivityAt) >= m.config.ActivityUpdateThreshold
}

func (m *Manager) queueActivityUpdate(session *Session) {
	now := m.now()
	select {
	case m.activityChan <- activityUpdate{
		token:        session.Token,
		lastActivity: now,
		expiresAt:    m.expiry(session.CreatedAt, now),
	}:
	default:
		// Dropped; the next request past the threshold retries.
	}
}

func (m *Manager) activityWorker() {
	apply := func(u activityUpdate) {
		if err := m.store.Touch(context.Background(), u.token, u.lastActivity, u.expiresAt); err != nil &&
			!errors.Is(err, ErrSessionNotFound) {
			m.logger.Warn("failed to record session activity", logger.Error(err))
		}
	}

	for {
		select {
		case u := <-m.activityChan:
			apply(u)
		case <-m.done:
			for {
				select {
				case u := <-m.activityChan:
					apply(u)
				default:
					return
				}
			}
		}
	}
}

// expiry returns the earlier of the idle deadline and the lifetime cap.
func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idleExpiry := now.Add(m.config.IdleTimeout)
	maxExpiry := createdAt.Add(m.config.MaxLifetime)
	if maxExpiry.Before(idleExpiry) {
		return maxExpiry
	}
	return idleExpiry
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
