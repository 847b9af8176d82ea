package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

func googleMock() *MockProviderAdapter {
	a := &MockProviderAdapter{}
	a.On("ProviderID").Return("google").Maybe()
	return a
}

func TestFederatedStrategyAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first login creates, second finds", func(t *testing.T) {
		t.Parallel()
		adapter := googleMock()
		adapter.On("ResolveProfile", mock.Anything, "code").Return(auth.ProviderProfile{ProviderUserID: "123"}, nil)

		store := users.NewMemoryStorage()
		fed := auth.NewFederatedStrategy(store, adapter)

		first, err := fed.Authenticate(ctx, "code")
		require.NoError(t, err)
		assert.Equal(t, "federatedUser_123", first.Username)

		second, err := fed.Authenticate(ctx, "code")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("custom username prefix", func(t *testing.T) {
		t.Parallel()
		adapter := googleMock()
		adapter.On("ResolveProfile", mock.Anything, "code").Return(auth.ProviderProfile{ProviderUserID: "7"}, nil)

		u, err := auth.NewFederatedStrategy(users.NewMemoryStorage(), adapter, auth.WithUsernamePrefix("googleUser_")).
			Authenticate(ctx, "code")
		require.NoError(t, err)
		assert.Equal(t, "googleUser_7", u.Username)
	})

	t.Run("provider failure creates nothing", func(t *testing.T) {
		t.Parallel()
		adapter := googleMock()
		adapter.On("ResolveProfile", mock.Anything, "bad").Return(auth.ProviderProfile{}, auth.ErrInvalidCode)

		store := users.NewMemoryStorage()
		_, err := auth.NewFederatedStrategy(store, adapter).Authenticate(ctx, "bad")
		assert.ErrorIs(t, err, auth.ErrProviderAuth)
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		_, err := auth.NewFederatedStrategy(users.NewMemoryStorage(), googleMock()).Authenticate(ctx, "")
		assert.ErrorIs(t, err, auth.ErrProviderAuth)
	})

	t.Run("profile without subject", func(t *testing.T) {
		t.Parallel()
		adapter := googleMock()
		adapter.On("ResolveProfile", mock.Anything, "code").Return(auth.ProviderProfile{}, nil)

		_, err := auth.NewFederatedStrategy(users.NewMemoryStorage(), adapter).Authenticate(ctx, "code")
		assert.ErrorIs(t, err, auth.ErrMissingSubject)
	})

	t.Run("store outage is a provider failure", func(t *testing.T) {
		t.Parallel()
		adapter := googleMock()
		adapter.On("ResolveProfile", mock.Anything, "code").Return(auth.ProviderProfile{ProviderUserID: "1"}, nil)

		store := &MockStorage{}
		store.On("CreateOrFindFederated", mock.Anything,
			users.FederatedAccount{Provider: "google", ExternalID: "1"}, "federatedUser_1",
		).Return(nil, errors.Join(users.ErrStoreUnavailable, errors.New("timeout")))

		_, err := auth.NewFederatedStrategy(store, adapter).Authenticate(ctx, "code")
		assert.ErrorIs(t, err, auth.ErrProviderAuth)
		assert.ErrorIs(t, err, users.ErrStoreUnavailable)
	})

	t.Run("concurrent first logins share one user", func(t *testing.T) {
		t.Parallel()
		adapter := googleMock()
		adapter.On("ResolveProfile", mock.Anything, "code").Return(auth.ProviderProfile{ProviderUserID: "race"}, nil)

		store := users.NewMemoryStorage()
		fed := auth.NewFederatedStrategy(store, adapter)

		const n = 16
		ids := make([]uuid.UUID, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				u, err := fed.Authenticate(ctx, "code")
				if assert.NoError(t, err) {
					ids[i] = u.ID
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, store.Len())
		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}
	})
}

func TestFederatedStrategyAuthURL(t *testing.T) {
	t.Parallel()

	adapter := googleMock()
	adapter.On("AuthURL", "st").Return("https://provider/auth?state=st", nil)
	fed := auth.NewFederatedStrategy(users.NewMemoryStorage(), adapter)

	url, err := fed.AuthURL("st")
	require.NoError(t, err)
	assert.Equal(t, "https://provider/auth?state=st", url)

	_, err = fed.AuthURL("")
	assert.ErrorIs(t, err, auth.ErrInvalidState)
}
