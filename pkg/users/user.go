package users

import (
	"time"

	"github.com/google/uuid"
)

// Account is the credential variant attached to a user: LocalAccount or
// FederatedAccount.
type Account interface {
	account()
}

// LocalAccount holds the derived password material of a locally
// registered user. Raw passwords never reach this package.
type LocalAccount struct {
	PasswordHash string
	PasswordSalt string
}

func (LocalAccount) account() {}

// FederatedAccount links a user to an external identity provider.
type FederatedAccount struct {
	Provider   string
	ExternalID string
}

func (FederatedAccount) account() {}

// User is a registered user.
type User struct {
	ID        uuid.UUID
	Username  string
	Account   Account
	Secrets   []string
	CreatedAt time.Time
}

// Local returns the local account, if the user has one.
func (u *User) Local() (LocalAccount, bool) {
	if u == nil {
		return LocalAccount{}, false
	}
	acc, ok := u.Account.(LocalAccount)
	return acc, ok
}

// Federated returns the federated account, if the user has one.
func (u *User) Federated() (FederatedAccount, bool) {
	if u == nil {
		return FederatedAccount{}, false
	}
	acc, ok := u.Account.(FederatedAccount)
	return acc, ok
}

// accountFromFields rebuilds the account variant from persisted columns.
func accountFromFields(hash, salt, provider, externalID string) (Account, error) {
	local := hash != "" && salt != ""
	federated := provider != "" && externalID != ""
	switch {
	case local && !federated:
		return LocalAccount{PasswordHash: hash, PasswordSalt: salt}, nil
	case federated && !local:
		return FederatedAccount{Provider: provider, ExternalID: externalID}, nil
	default:
		return nil, ErrInvalidAccount
	}
}

func cloneUser(u *User) *User {
	c := *u
	c.Secrets = append([]string(nil), u.Secrets...)
	return &c
}
