package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

// DefaultUsernamePrefix is prepended to the provider subject id to form the
// username of a user created by a federated login.
const DefaultUsernamePrefix = "federatedUser_"

// ProviderProfile is the normalized identity returned by a provider.
type ProviderProfile struct {
	ProviderUserID string
}

// ProviderAdapter hides provider-specific OAuth details.
type ProviderAdapter interface {
	// ProviderID returns a stable identifier such as "google".
	ProviderID() string

	// AuthURL builds the authorization URL carrying state.
	AuthURL(state string) (string, error)

	// ResolveProfile exchanges the authorization code and fetches the profile.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// FederatedStrategy authenticates users through a ProviderAdapter.
type FederatedStrategy struct {
	storage        users.Storage
	adapter        ProviderAdapter
	usernamePrefix string
	logger         *slog.Logger
}

type FederatedOption func(*FederatedStrategy)

// WithUsernamePrefix overrides DefaultUsernamePrefix.
func WithUsernamePrefix(prefix string) FederatedOption {
	return func(s *FederatedStrategy) {
		if prefix != "" {
			s.usernamePrefix = prefix
		}
	}
}

func WithFederatedLogger(l *slog.Logger) FederatedOption {
	return func(s *FederatedStrategy) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewFederatedStrategy(storage users.Storage, adapter ProviderAdapter, opts ...FederatedOption) *FederatedStrategy {
	s := &FederatedStrategy{
		storage:        storage,
		adapter:        adapter,
		usernamePrefix: DefaultUsernamePrefix,
		logger:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FederatedStrategy) ProviderID() string {
	return s.adapter.ProviderID()
}

// AuthURL returns the provider redirect for state.
func (s *FederatedStrategy) AuthURL(state string) (string, error) {
	if state == "" {
		return "", errors.Join(ErrProviderAuth, ErrInvalidState)
	}
	url, err := s.adapter.AuthURL(state)
	if err != nil {
		return "", errors.Join(ErrProviderAuth, err)
	}
	return url, nil
}

// Authenticate completes the callback: it resolves the profile for code and
// returns the linked user, creating it on first login. The user is created
// in one atomic store call after the provider succeeded, so a failure never
// leaves a partial record behind.
func (s *FederatedStrategy) Authenticate(ctx context.Context, code string) (*users.User, error) {
	if code == "" {
		return nil, errors.Join(ErrProviderAuth, ErrInvalidCode)
	}

	profile, err := s.adapter.ResolveProfile(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to resolve provider profile",
			logger.Provider(s.adapter.ProviderID()),
			logger.Error(err),
		)
		return nil, errors.Join(ErrProviderAuth, err)
	}
	if profile.ProviderUserID == "" {
		return nil, errors.Join(ErrProviderAuth, ErrMissingSubject)
	}

	acc := users.FederatedAccount{
		Provider:   s.adapter.ProviderID(),
		ExternalID: profile.ProviderUserID,
	}
	user, err := s.storage.CreateOrFindFederated(ctx, acc, s.usernamePrefix+profile.ProviderUserID)
	if err != nil {
		return nil, errors.Join(ErrProviderAuth, fmt.Errorf("link %s account: %w", acc.Provider, err))
	}

	s.logger.InfoContext(ctx, "federated login",
		logger.Event("login"),
		logger.Provider(acc.Provider),
		logger.UserID(user.ID),
	)
	return user, nil
}
