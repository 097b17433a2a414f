// Package cryptobox encrypts financial fields at rest. It wraps
// XChaCha20-Poly1305 with a random nonce prepended to the ciphertext, so a
// stored blob is self-contained: nonce || sealed.
package cryptobox

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length in bytes.
const KeySize = chacha20poly1305.KeySize

// ErrInvalidCiphertext is returned when a blob is too short or fails
// authentication.
var ErrInvalidCiphertext = errors.New("cryptobox: invalid ciphertext")

// Box seals and opens byte blobs with a single symmetric key.
type Box struct {
	key []byte
}

// New creates a Box. The key must be exactly KeySize bytes.
func New(key []byte) (*Box, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cryptobox: key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Box{key: k}, nil
}

// Encrypt seals plaintext and returns nonce || ciphertext.
func (b *Box) Encrypt(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, fmt.Errorf("cryptobox: init aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cryptobox: nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt.
func (b *Box) Decrypt(blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, fmt.Errorf("cryptobox: init aead: %w", err)
	}

	if len(blob) < aead.NonceSize() {
		return nil, ErrInvalidCiphertext
	}

	nonce, sealed := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	return plaintext, nil
}

// EncryptString seals a string value.
func (b *Box) EncryptString(s string) ([]byte, error) {
	return b.Encrypt([]byte(s))
}

// DecryptString opens a blob into a string value.
func (b *Box) DecryptString(blob []byte) (string, error) {
	p, err := b.Decrypt(blob)
	if err != nil {
		return "", err
	}
	return string(p), nil
}
