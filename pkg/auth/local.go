package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

// LocalStrategy authenticates username/password accounts.
type LocalStrategy struct {
	storage users.Storage
	hasher  *PasswordHasher
	logger  *slog.Logger

	// dummy material keeps unknown-user lookups about as slow as real ones.
	dummyHash string
	dummySalt string
}

type LocalOption func(*LocalStrategy)

func WithHasher(h *PasswordHasher) LocalOption {
	return func(s *LocalStrategy) {
		if h != nil {
			s.hasher = h
		}
	}
}

func WithLocalLogger(l *slog.Logger) LocalOption {
	return func(s *LocalStrategy) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewLocalStrategy(storage users.Storage, opts ...LocalOption) *LocalStrategy {
	s := &LocalStrategy{
		storage: storage,
		hasher:  NewPasswordHasher(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	// A fixed salt is enough here: the dummy only has to cost one derivation.
	s.dummySalt = strings.Repeat("0", 2*DefaultSaltLength)
	s.dummyHash = s.hasher.derive("dummy-password", s.dummySalt)
	return s
}

// Register creates a local account for username. The password is hashed
// before it reaches the store. A taken username is reported as
// users.ErrDuplicateUsername even when the password is missing.
func (s *LocalStrategy) Register(ctx context.Context, username, password string) (*users.User, error) {
	if username == "" {
		return nil, ErrMissingCredentials
	}
	if password == "" {
		_, err := s.storage.FindByUsername(ctx, username)
		switch {
		case err == nil:
			return nil, users.ErrDuplicateUsername
		case errors.Is(err, users.ErrUserNotFound):
			return nil, ErrMissingCredentials
		default:
			return nil, err
		}
	}

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.CreateLocal(ctx, username, users.LocalAccount{PasswordHash: hash, PasswordSalt: salt})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.Event("register"),
		logger.UserID(user.ID),
	)
	return user, nil
}

// Authenticate verifies username and password. An unknown or empty username
// yields an error matching both ErrInvalidCredentials and
// users.ErrUserNotFound; an empty password is simply a wrong one.
// Users without a local account never authenticate here.
func (s *LocalStrategy) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	if username == "" {
		s.hasher.Verify(password, s.dummyHash, s.dummySalt)
		return nil, errors.Join(ErrInvalidCredentials, users.ErrUserNotFound)
	}

	user, err := s.storage.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash, s.dummySalt)
			return nil, errors.Join(ErrInvalidCredentials, users.ErrUserNotFound)
		}
		if errors.Is(err, users.ErrInvalidAccount) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	acc, ok := user.Local()
	if !ok {
		s.hasher.Verify(password, s.dummyHash, s.dummySalt)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, acc.PasswordHash, acc.PasswordSalt) {
		s.logger.InfoContext(ctx, "password mismatch",
			logger.Event("login_failed"),
			logger.UserID(user.ID),
		)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
