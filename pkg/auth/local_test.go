package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

func newLocal(store users.Storage) *auth.LocalStrategy {
	return auth.NewLocalStrategy(store, auth.WithHasher(auth.NewPasswordHasher(auth.WithIterations(100))))
}

func TestLocalStrategyRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores hash and salt, never the password", func(t *testing.T) {
		t.Parallel()
		store := users.NewMemoryStorage()
		local := newLocal(store)

		u, err := local.Register(ctx, "alice", "pw")
		require.NoError(t, err)

		acc, ok := u.Local()
		require.True(t, ok)
		assert.NotEmpty(t, acc.PasswordHash)
		assert.NotEmpty(t, acc.PasswordSalt)
		assert.NotContains(t, acc.PasswordHash, "pw")
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		store := users.NewMemoryStorage()
		local := newLocal(store)

		_, err := local.Register(ctx, "alice", "pw")
		require.NoError(t, err)
		_, err = local.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, users.ErrDuplicateUsername)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		store := users.NewMemoryStorage()
		local := newLocal(store)

		_, err := local.Register(ctx, "", "pw")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
		_, err = local.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("taken username wins over missing password", func(t *testing.T) {
		t.Parallel()
		store := users.NewMemoryStorage()
		local := newLocal(store)

		_, err := local.Register(ctx, "alice", "pw")
		require.NoError(t, err)
		_, err = local.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, users.ErrDuplicateUsername)
		assert.Equal(t, 1, store.Len())
	})
}

func TestLocalStrategyAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := users.NewMemoryStorage()
	local := newLocal(store)
	registered, err := local.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		u, err := local.Authenticate(ctx, "alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := local.Authenticate(ctx, "alice", "nope")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("unknown username", func(t *testing.T) {
		t.Parallel()
		_, err := local.Authenticate(ctx, "bob", "pw")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("empty username is unknown", func(t *testing.T) {
		t.Parallel()
		_, err := local.Authenticate(ctx, "", "pw")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("empty password is wrong", func(t *testing.T) {
		t.Parallel()
		_, err := local.Authenticate(ctx, "alice", "")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("federated user has no password", func(t *testing.T) {
		t.Parallel()
		_, err := store.CreateOrFindFederated(ctx, users.FederatedAccount{Provider: "google", ExternalID: "9"}, "federatedUser_9")
		require.NoError(t, err)

		_, err = local.Authenticate(ctx, "federatedUser_9", "")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		_, err = local.Authenticate(ctx, "federatedUser_9", "anything")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestLocalStrategyStoreOutage(t *testing.T) {
	t.Parallel()

	store := &MockStorage{}
	outage := errors.Join(users.ErrStoreUnavailable, errors.New("no reachable servers"))
	store.On("FindByUsername", mock.Anything, "alice").Return(nil, outage)

	local := newLocal(store)

	_, err := local.Authenticate(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, users.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = local.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, users.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, auth.ErrMissingCredentials)
	store.AssertExpectations(t)
}
