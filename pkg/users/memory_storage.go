package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is a mutex-guarded Storage for tests and local runs.
type MemoryStorage struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*User
	byUsername map[string]uuid.UUID
	byExternal map[FederatedAccount]uuid.UUID
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:       make(map[uuid.UUID]*User),
		byUsername: make(map[string]uuid.UUID),
		byExternal: make(map[FederatedAccount]uuid.UUID),
	}
}

func (s *MemoryStorage) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *MemoryStorage) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryStorage) CreateLocal(_ context.Context, username string, acc LocalAccount) (*User, error) {
	if _, err := accountFromFields(acc.PasswordHash, acc.PasswordSalt, "", ""); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[username]; taken {
		return nil, ErrDuplicateUsername
	}
	return cloneUser(s.insert(username, acc)), nil
}

func (s *MemoryStorage) CreateOrFindFederated(_ context.Context, acc FederatedAccount, derivedUsername string) (*User, error) {
	if _, err := accountFromFields("", "", acc.Provider, acc.ExternalID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byExternal[acc]; ok {
		return cloneUser(s.byID[id]), nil
	}
	if _, taken := s.byUsername[derivedUsername]; taken {
		return nil, ErrDuplicateUsername
	}

	u := s.insert(derivedUsername, acc)
	s.byExternal[acc] = u.ID
	return cloneUser(u), nil
}

func (s *MemoryStorage) AppendSecret(_ context.Context, id uuid.UUID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Secrets = append(u.Secrets, text)
	return nil
}

// Len returns the number of stored users.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// insert must be called with the write lock held.
func (s *MemoryStorage) insert(username string, acc Account) *User {
	u := &User{
		ID:        uuid.New(),
		Username:  username,
		Account:   acc,
		Secrets:   []string{},
		CreatedAt: time.Now().UTC(),
	}
	s.byID[u.ID] = u
	s.byUsername[username] = u.ID
	return u
}
