package auth_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

// MockStorage is a mock implementation of users.Storage.
type MockStorage struct {
	mock.Mock
}

var _ users.Storage = (*MockStorage)(nil)

func (m *MockStorage) userResult(args mock.Arguments) (*users.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockStorage) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	return m.userResult(m.Called(ctx, username))
}

func (m *MockStorage) FindByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockStorage) CreateLocal(ctx context.Context, username string, acc users.LocalAccount) (*users.User, error) {
	return m.userResult(m.Called(ctx, username, acc))
}

func (m *MockStorage) CreateOrFindFederated(ctx context.Context, acc users.FederatedAccount, derivedUsername string) (*users.User, error) {
	return m.userResult(m.Called(ctx, acc, derivedUsername))
}

func (m *MockStorage) AppendSecret(ctx context.Context, id uuid.UUID, text string) error {
	return m.Called(ctx, id, text).Error(0)
}

// MockProviderAdapter is a mock implementation of auth.ProviderAdapter.
type MockProviderAdapter struct {
	mock.Mock
}

var _ auth.ProviderAdapter = (*MockProviderAdapter)(nil)

func (m *MockProviderAdapter) ProviderID() string {
	return m.Called().String(0)
}

func (m *MockProviderAdapter) AuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockProviderAdapter) ResolveProfile(ctx context.Context, code string) (auth.ProviderProfile, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(auth.ProviderProfile), args.Error(1)
}
