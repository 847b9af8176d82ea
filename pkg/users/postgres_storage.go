package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/secretkeeper/pkg/pg"
)

// DBTX is the subset of pgxpool.Pool used by PostgresStorage.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage stores users in the users table created by Migrations.
type PostgresStorage struct {
	db DBTX
}

var _ Storage = (*PostgresStorage)(nil)

func NewPostgresStorage(db DBTX) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const userColumns = `id, username, password_hash, password_salt, provider, external_id, secrets, created_at`

func (s *PostgresStorage) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.scan(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (s *PostgresStorage) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.scan(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStorage) CreateLocal(ctx context.Context, username string, acc LocalAccount) (*User, error) {
	if _, err := accountFromFields(acc.PasswordHash, acc.PasswordSalt, "", ""); err != nil {
		return nil, err
	}

	u, err := s.scan(s.db.QueryRow(ctx,
		`INSERT INTO users (id, username, password_hash, password_salt, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		uuid.New(), username, acc.PasswordHash, acc.PasswordSalt, time.Now().UTC(),
	))
	if err != nil && pg.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateUsername
	}
	return u, err
}

// CreateOrFindFederated inserts unless the (provider, external_id) pair
// exists, then reads the row either way. Two concurrent first logins can
// both pass the conflict check and collide on the username index; the
// loser re-reads the winner's row.
func (s *PostgresStorage) CreateOrFindFederated(ctx context.Context, acc FederatedAccount, derivedUsername string) (*User, error) {
	if _, err := accountFromFields("", "", acc.Provider, acc.ExternalID); err != nil {
		return nil, err
	}

	u, err := s.scan(s.db.QueryRow(ctx,
		`INSERT INTO users (id, username, provider, external_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (provider, external_id) WHERE provider IS NOT NULL DO NOTHING
		 RETURNING `+userColumns,
		uuid.New(), derivedUsername, acc.Provider, acc.ExternalID, time.Now().UTC(),
	))
	if err == nil {
		return u, nil
	}
	duplicate := pg.IsDuplicateKeyError(err)
	if !duplicate && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u, err = s.findFederated(ctx, acc)
	if duplicate && errors.Is(err, ErrUserNotFound) {
		// The key that collided was the username, not the external id.
		return nil, ErrDuplicateUsername
	}
	return u, err
}

func (s *PostgresStorage) findFederated(ctx context.Context, acc FederatedAccount) (*User, error) {
	return s.scan(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE provider = $1 AND external_id = $2`,
		acc.Provider, acc.ExternalID,
	))
}

func (s *PostgresStorage) AppendSecret(ctx context.Context, id uuid.UUID, text string) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET secrets = array_append(secrets, $2) WHERE id = $1`, id, text)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) scan(row pgx.Row) (*User, error) {
	var (
		u                                User
		hash, salt, provider, externalID *string
	)
	err := row.Scan(&u.ID, &u.Username, &hash, &salt, &provider, &externalID, &u.Secrets, &u.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		if pg.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	u.Account, err = accountFromFields(deref(hash), deref(salt), deref(provider), deref(externalID))
	if err != nil {
		return nil, err
	}
	if u.Secrets == nil {
		u.Secrets = []string{}
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
