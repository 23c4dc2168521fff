package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const saltSize = 16

// Store keeps the bearer token on disk, encrypted at rest. Lookup walks an
// ordered list of locations: the persistent token file first, then the
// legacy cookie file. Encryption here is obfuscated storage only, not a
// security boundary; the upstream API enforces real authorization.
type Store struct {
	secret []byte
	paths  []string
}

func NewStore(secret, tokenFile, cookieFile string) *Store {
	return &Store{
		secret: []byte(secret),
		paths:  []string{tokenFile, cookieFile},
	}
}

// Load returns the first token found across the storage locations.
func (s *Store) Load() (string, error) {
	for _, path := range s.paths {
		blob, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		token, err := s.decrypt(strings.TrimSpace(string(blob)))
		if err != nil {
			continue
		}
		if token != "" {
			return token, nil
		}
	}
	return "", ErrNoToken
}

// Save writes the token to the primary location.
func (s *Store) Save(token string) error {
	blob, err := s.encrypt(token)
	if err != nil {
		return fmt.Errorf("encrypt token: %w", err)
	}

	path := s.paths[0]
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear wipes every storage location. Used on hard logout.
func (s *Store) Clear() error {
	var firstErr error
	for _, path := range s.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Store) encrypt(plain string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	out := append(salt, nonce...)
	out = gcm.Seal(out, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *Store) decrypt(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("decode token blob: %w", err)
	}
	if len(raw) < saltSize {
		return "", fmt.Errorf("token blob too short")
	}

	salt := raw[:saltSize]
	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	rest := raw[saltSize:]
	if len(rest) < gcm.NonceSize() {
		return "", fmt.Errorf("token blob too short")
	}

	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	return string(plain), nil
}

func (s *Store) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.secret, salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
