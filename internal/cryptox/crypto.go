package cryptox

import (
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// NonceSize is the XChaCha20-Poly1305 nonce length prepended to every
// ciphertext blob.
const NonceSize = chacha20poly1305.NonceSizeX

// Encrypt seals plaintext under the master key and returns
// nonce || ciphertext-with-tag. A fresh random 24-byte nonce is generated
// per call; nonce uniqueness is what makes key reuse across entries safe.
func Encrypt(key *MasterKey, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt. It returns
// common.ErrDecryptionFailed when the blob is too short or authentication
// fails; callers use that as the wrong-password signal and must not treat
// it as recoverable.
func Decrypt(key *MasterKey, blob []byte) ([]byte, error) {
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("%w: blob shorter than nonce", common.ErrDecryptionFailed)
	}

	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	return plaintext, nil
}
