// Package crypt implements the symmetric cipher the credential gateway
// encrypts files with: an scrypt-derived AES-256 key and AES-GCM with a
// versioned on-disk header. The gateway treats this package as opaque.
package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/oidcvault/oidcvault/internal/secret"
)

const (
	// Version identifies the on-disk format.
	Version = 1

	KeySize   = 32 // AES-256
	NonceSize = 12 // GCM standard
	TagSize   = 16 // GCM tag
	SaltSize  = 32

	// Scrypt parameters
	ScryptN = 32768 // CPU/memory cost parameter
	ScryptR = 8     // block size parameter
	ScryptP = 1     // parallelization parameter
)

var magic = []byte("OVLT")

// Errors
var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
	// ErrDecryptionFailed covers both a wrong password and corrupt
	// ciphertext; AES-GCM cannot tell them apart.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Cipher encrypts and decrypts under a password.
type Cipher interface {
	Encrypt(plaintext, password []byte) ([]byte, error)
	Decrypt(ciphertext, password []byte) ([]byte, error)
}

// GCMCipher is the production Cipher.
type GCMCipher struct{}

// New creates a Cipher.
func New() Cipher {
	return &GCMCipher{}
}

// Encrypt seals plaintext under password.
// Output: magic || version || salt || nonce || ciphertext+tag.
func (c *GCMCipher) Encrypt(plaintext, password []byte) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, magic)

	result := make([]byte, 0, len(magic)+1+SaltSize+NonceSize+len(sealed))
	result = append(result, magic...)
	result = append(result, Version)
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, sealed...)

	return result, nil
}

// Decrypt opens ciphertext under password. A wrong password and a
// corrupt file both surface as ErrDecryptionFailed; a file that is not
// in this format at all surfaces as ErrInvalidCiphertext.
func (c *GCMCipher) Decrypt(ciphertext, password []byte) ([]byte, error) {
	header := len(magic) + 1 + SaltSize + NonceSize
	if len(ciphertext) < header+TagSize {
		return nil, ErrInvalidCiphertext
	}
	if !bytes.Equal(ciphertext[:len(magic)], magic) {
		return nil, ErrInvalidCiphertext
	}
	if ciphertext[len(magic)] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidCiphertext, ciphertext[len(magic)])
	}

	salt := ciphertext[len(magic)+1 : len(magic)+1+SaltSize]
	nonce := ciphertext[len(magic)+1+SaltSize : header]
	sealed := ciphertext[header:]

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(key)

	plaintext, err := aeadOpen(key, nonce, sealed)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// deriveKey runs scrypt over the NFKC-normalized password. The
// normalized copy is wiped before returning; the caller keeps ownership
// of password itself.
func deriveKey(password, salt []byte) ([]byte, error) {
	normalized := norm.NFKC.Bytes(password)
	// NFKC.Bytes returns its input unchanged when the input is
	// already normalized; only wipe a copy we actually own.
	if len(normalized) > 0 && len(password) > 0 && &normalized[0] != &password[0] {
		defer secret.Wipe(normalized)
	}

	key, err := scrypt.Key(normalized, salt, ScryptN, ScryptR, ScryptP, KeySize)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation: %w", err)
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return aead, nil
}

func aeadOpen(key, nonce, sealed []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, sealed, magic)
}
