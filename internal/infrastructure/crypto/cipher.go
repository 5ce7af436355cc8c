// Package crypto implements the at-rest confidentiality scheme for todo
// titles and comments: AES-256-GCM with a process-wide key derived from the
// configured secret.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength  = 32
	iterations = 4096
)

// Cipherer encrypts and decrypts todo content with a fixed process-wide key
type Cipherer struct {
	aead cipher.AEAD
}

// New derives an AES-256 key from the configured secret and salt and returns
// a ready-to-use Cipherer. An empty secret is refused: running without a key
// would silently store plaintext.
func New(secret, salt string) (*Cipherer, error) {
	if secret == "" {
		return nil, fmt.Errorf("crypto secret is required")
	}
	if salt == "" {
		return nil, fmt.Errorf("crypto salt is required")
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Cipherer{aead: aead}, nil
}

// Encrypt seals the plaintext with a random nonce and returns the
// base64-encoded nonce||ciphertext blob
func (c *Cipherer) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Malformed ciphertext, a truncated blob, or a key
// mismatch all fail with DECRYPTION_FAILED rather than returning garbage.
func (c *Cipherer) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", shared.ErrDecryptionFailed
	}
	if len(raw) < c.aead.NonceSize() {
		return "", shared.ErrDecryptionFailed
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", shared.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
