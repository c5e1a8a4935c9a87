// Package common contains shared constants and sentinel errors used across
// clipvault components.
package common

// VerificationPlaintext is the fixed plaintext encrypted into the store's
// verification payload at init time. Decrypting the payload back to this
// exact value is the password-correctness check.
const VerificationPlaintext = "clpd_test"

// StoreFormatVersion is the on-disk metadata format version.
const StoreFormatVersion uint32 = 1
