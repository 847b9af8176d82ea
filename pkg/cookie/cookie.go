package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	minSecretLength = 32
	flashPrefix     = "__flash_"
)

// Manager writes and reads cookies with shared default attributes.
type Manager struct {
	aeads    []cipher.AEAD
	defaults Options
}

// New creates a Manager. Empty secrets are ignored; at least one secret of
// minSecretLength characters is required.
func New(secrets []string, opts ...Option) (*Manager, error) {
	aeads := make([]cipher.AEAD, 0, len(secrets))
	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		aead, err := newAEAD(s)
		if err != nil {
			return nil, err
		}
		aeads = append(aeads, aead)
	}
	if len(aeads) == 0 {
		return nil, ErrNoSecret
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{aeads: aeads, defaults: defaults}, nil
}

// newAEAD derives an AES-256 key from the secret so any secret length works.
func newAEAD(secret string) (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	})
}

// Get reads a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie using the manager's default path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetEncrypted seals value with the primary secret and writes it.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	aead := m.aeads[0]
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	// The cookie name is bound as additional data so a value cannot be
	// replayed under another cookie name.
	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	m.Set(w, name, base64.RawURLEncoding.EncodeToString(sealed), opts...)
	return nil
}

// GetEncrypted reads and opens an encrypted cookie, trying every secret.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	sealed, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, aead := range m.aeads {
		if len(sealed) < aead.NonceSize() {
			return "", ErrInvalidFormat
		}
		nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
		if plain, err := aead.Open(nil, nonce, ciphertext, []byte(name)); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}

// SetFlash stores value for exactly one subsequent read.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data))
}

// GetFlash decodes the flash value into dest and deletes the cookie.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key
	data, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}
	m.Delete(w, name)

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}
	return nil
}
