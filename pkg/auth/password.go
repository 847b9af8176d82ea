package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Defaults for PasswordHasher.
const (
	DefaultIterations = 25000
	DefaultSaltLength = 32
	DefaultKeyLength  = 32
)

// PasswordHasher derives password hashes with PBKDF2-HMAC-SHA256.
type PasswordHasher struct {
	iterations int
	saltLength int
	keyLength  int
}

type HasherOption func(*PasswordHasher)

func WithIterations(n int) HasherOption {
	return func(h *PasswordHasher) {
		if n > 0 {
			h.iterations = n
		}
	}
}

func NewPasswordHasher(opts ...HasherOption) *PasswordHasher {
	h := &PasswordHasher{
		iterations: DefaultIterations,
		saltLength: DefaultSaltLength,
		keyLength:  DefaultKeyLength,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns the hex-encoded derived key and the hex-encoded random salt.
func (h *PasswordHasher) Hash(password string) (hash, salt string, err error) {
	raw := make([]byte, h.saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	return h.derive(password, salt), salt, nil
}

// Verify reports whether password matches hash under salt. The comparison
// runs in constant time.
func (h *PasswordHasher) Verify(password, hash, salt string) bool {
	want, err := hex.DecodeString(hash)
	if err != nil || len(want) == 0 {
		return false
	}
	got, _ := hex.DecodeString(h.deriveWithLength(password, salt, len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *PasswordHasher) derive(password, salt string) string {
	return h.deriveWithLength(password, salt, h.keyLength)
}

// The hex salt string itself is the PBKDF2 salt input.
func (h *PasswordHasher) deriveWithLength(password, salt string, keyLen int) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), []byte(salt), h.iterations, keyLen, sha256.New))
}
