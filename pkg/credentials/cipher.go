package credentials

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// Cipher encrypts api keys at rest with nacl secretbox
type Cipher struct {
	key [keySize]byte
}

// NewCipher makes cipher with a raw 32 byte key
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key size %d, expected %d", len(key), keySize)
	}
	res := &Cipher{}
	copy(res.key[:], key)
	return res, nil
}

// LoadOrCreateCipher reads key file, generating a new random key if file doesn't exist
func LoadOrCreateCipher(path string) (*Cipher, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from config
	if err == nil {
		return NewCipher(data)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("make key dir: %w", err)
		}
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return NewCipher(key)
}

// Encrypt seals plaintext, nonce is prepended to the result
func (c *Cipher) Encrypt(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &c.key), nil
}

// Decrypt opens data produced by Encrypt
func (c *Cipher) Decrypt(data []byte) ([]byte, error) {
	if len(data) < nonceSize+secretbox.Overhead {
		return nil, errors.New("encrypted data too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])
	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, errors.New("decrypt failed")
	}
	return plain, nil
}
