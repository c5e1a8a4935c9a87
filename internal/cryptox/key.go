// Package cryptox implements the key material and envelope cipher layer:
// argon2id key derivation from a password and stored salt, and
// XChaCha20-Poly1305 authenticated encryption of opaque payloads.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the master key length in bytes (256 bits).
	KeySize = 32

	// SaltSize is the stored salt length in bytes.
	SaltSize = 16

	// argon2id parameters: 3 passes over 64 MiB with 4 lanes. Fixed for the
	// lifetime of the on-disk format so the same password always derives the
	// same key.
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// MasterKey holds the derived 256-bit key for the lifetime of a command.
// It is never serialized; call Wipe when the session ends so the backing
// bytes are overwritten with zeros.
type MasterKey struct {
	b [KeySize]byte
}

// NewMasterKey copies b into a key handle. The caller keeps ownership of b
// and should wipe it separately if it holds secret material.
func NewMasterKey(b []byte) (*MasterKey, error) {
	if len(b) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", common.ErrKeyDerivation, KeySize, len(b))
	}
	k := &MasterKey{}
	copy(k.b[:], b)
	return k, nil
}

// Bytes returns the raw key bytes. The slice aliases the key's backing
// array: do not retain it past the key's lifetime.
func (k *MasterKey) Bytes() []byte {
	return k.b[:]
}

// Wipe overwrites the key bytes with zeros. Safe to call more than once
// and on a nil key.
func (k *MasterKey) Wipe() {
	if k == nil {
		return
	}
	for i := range k.b {
		k.b[i] = 0
	}
}

// WipeBytes zeroes a byte slice holding secret material (passwords read
// from the terminal, intermediate key buffers). A nil slice is a no-op.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// DeriveKey derives the master key from a password and salt using argon2id.
// Deterministic: the same (password, salt) pair always yields the same key.
func DeriveKey(password, salt []byte) (*MasterKey, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", common.ErrKeyDerivation)
	}
	raw := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
	k, err := NewMasterKey(raw)
	WipeBytes(raw)
	return k, err
}

// GenerateSalt returns 16 cryptographically random bytes. Called exactly
// once per store lifetime, at init.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// MakeVerifier returns the SHA-256 hash of the key bytes. It is used as the
// signing secret for peer auth tokens and is never persisted; knowing the
// verifier does not reveal the key.
func MakeVerifier(k *MasterKey) []byte {
	hash := sha256.Sum256(k.Bytes())
	return hash[:]
}
