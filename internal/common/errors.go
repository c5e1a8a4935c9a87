// Package common defines shared constants and sentinel errors used across
// clipvault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("store not initialized")

	// Crypto errors. ErrDecryptionFailed deliberately does not distinguish
	// a wrong key from tampered or corrupted ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrKeyDerivation    = errors.New("key derivation failed")
	ErrInvalidPassword  = errors.New("invalid password")

	// Remote peer errors.
	ErrTransport    = errors.New("transport error")
	ErrInvalidToken = errors.New("invalid token")
)
