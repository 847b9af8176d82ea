package secrets

import "time"

// Config controls route-layer behavior.
type Config struct {
	// UnifyLoginErrors renders one message for unknown usernames and wrong
	// passwords so login responses do not reveal which usernames exist.
	UnifyLoginErrors bool          `env:"SECRETS_UNIFY_LOGIN_ERRORS" envDefault:"false"`
	UsernamePrefix   string        `env:"SECRETS_FEDERATED_USERNAME_PREFIX" envDefault:"federatedUser_"`
	ReadinessTimeout time.Duration `env:"SECRETS_READINESS_TIMEOUT" envDefault:"3s"`
}

func DefaultConfig() Config {
	return Config{
		UsernamePrefix:   "federatedUser_",
		ReadinessTimeout: 3 * time.Second,
	}
}
