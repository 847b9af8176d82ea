package users_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgx.Row)
}

// fakeRow scans a fixed user row or returns err.
type fakeRow struct {
	err    error
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case **string:
			if v, ok := r.values[i].(string); ok {
				*p = &v
			}
		case *[]string:
			*p = r.values[i].([]string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func federatedRow(id uuid.UUID, username string) fakeRow {
	return fakeRow{values: []any{id, username, nil, nil, "google", "42", []string{"s"}, time.Now()}}
}

func isInsert(sql string) bool { return strings.HasPrefix(sql, "INSERT") }

func isSelect(sql string) bool { return strings.HasPrefix(sql, "SELECT") }

func TestPostgresStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	anySQL := mock.AnythingOfType("string")

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", ctx, anySQL, mock.Anything).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := users.NewPostgresStorage(db).FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("driver failure is a store outage", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", ctx, anySQL, mock.Anything).Return(fakeRow{err: errors.New("conn reset")})

		_, err := users.NewPostgresStorage(db).FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, users.ErrStoreUnavailable)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", ctx, anySQL, mock.Anything).Return(fakeRow{err: &pgconn.PgError{Code: "23505"}})

		_, err := users.NewPostgresStorage(db).CreateLocal(ctx, "alice", localAcc)
		assert.ErrorIs(t, err, users.ErrDuplicateUsername)
	})

	t.Run("federated conflict falls back to select", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		db := &mockDB{}
		db.On("QueryRow", ctx, mock.MatchedBy(isInsert), mock.Anything).
			Return(fakeRow{err: pgx.ErrNoRows}).Once()
		db.On("QueryRow", ctx, mock.MatchedBy(isSelect), mock.Anything).
			Return(federatedRow(id, "federatedUser_42")).Once()

		u, err := users.NewPostgresStorage(db).CreateOrFindFederated(ctx,
			users.FederatedAccount{Provider: "google", ExternalID: "42"}, "federatedUser_42")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		acc, ok := u.Federated()
		require.True(t, ok)
		assert.Equal(t, "42", acc.ExternalID)
		db.AssertExpectations(t)
	})

	t.Run("federated username race re-reads the winner", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		db := &mockDB{}
		db.On("QueryRow", ctx, mock.MatchedBy(isInsert), mock.Anything).
			Return(fakeRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "users_username_unique"}}).Once()
		db.On("QueryRow", ctx, mock.MatchedBy(isSelect), mock.Anything).
			Return(federatedRow(id, "federatedUser_42")).Once()

		u, err := users.NewPostgresStorage(db).CreateOrFindFederated(ctx,
			users.FederatedAccount{Provider: "google", ExternalID: "42"}, "federatedUser_42")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		db.AssertExpectations(t)
	})

	t.Run("federated username taken by another account", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", ctx, mock.MatchedBy(isInsert), mock.Anything).
			Return(fakeRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "users_username_unique"}}).Once()
		db.On("QueryRow", ctx, mock.MatchedBy(isSelect), mock.Anything).
			Return(fakeRow{err: pgx.ErrNoRows}).Once()

		_, err := users.NewPostgresStorage(db).CreateOrFindFederated(ctx,
			users.FederatedAccount{Provider: "google", ExternalID: "42"}, "federatedUser_42")
		assert.ErrorIs(t, err, users.ErrDuplicateUsername)
		db.AssertExpectations(t)
	})

	t.Run("append to missing user", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("Exec", ctx, anySQL, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := users.NewPostgresStorage(db).AppendSecret(ctx, uuid.New(), "s")
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("append", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("Exec", ctx, anySQL, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		assert.NoError(t, users.NewPostgresStorage(db).AppendSecret(ctx, uuid.New(), "s"))
	})
}
