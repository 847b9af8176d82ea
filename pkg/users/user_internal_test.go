package users

import (
	"io/fs"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountFromFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                             string
		hash, salt, provider, externalID string
		want                             Account
		wantErr                          bool
	}{
		{name: "local", hash: "h", salt: "s", want: LocalAccount{PasswordHash: "h", PasswordSalt: "s"}},
		{name: "federated", provider: "google", externalID: "1", want: FederatedAccount{Provider: "google", ExternalID: "1"}},
		{name: "neither", wantErr: true},
		{name: "both", hash: "h", salt: "s", provider: "google", externalID: "1", wantErr: true},
		{name: "hash without salt", hash: "h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := accountFromFields(tt.hash, tt.salt, tt.provider, tt.externalID)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAccount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserDocumentToUser(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	u, err := userDocument{ID: id.String(), Username: "g", Provider: "google", ExternalID: "42"}.toUser()
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.NotNil(t, u.Secrets)
	_, isLocal := u.Local()
	assert.False(t, isLocal)

	_, err = userDocument{ID: id.String(), Username: "broken"}.toUser()
	assert.ErrorIs(t, err, ErrInvalidAccount)

	_, err = userDocument{ID: "not-a-uuid", PasswordHash: "h", PasswordSalt: "s"}.toUser()
	assert.ErrorIs(t, err, ErrInvalidAccount)
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "00001_create_users.sql")
}
