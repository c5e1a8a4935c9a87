// Package models defines the clipboard entry types, their canonical byte
// forms, and the compressed wire codec used by the remote peer API.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"time"
)

// ContentType classifies what kind of clipboard content an entry holds.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// ClipboardEntry is one stored clipboard capture. Payload is the envelope
// ciphertext (nonce || sealed bytes); Hash is the hex SHA-256 of the
// plaintext canonical form and drives deduplication. Entries are immutable
// after creation except for deletion.
type ClipboardEntry struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	ContentType ContentType `json:"content_type"`
	Payload     []byte      `json:"payload"`
	Hash        string      `json:"hash"`
}

// NewEntry builds an entry for freshly captured content. The id combines
// millis-since-epoch with a random 32-bit suffix: practically unique and
// roughly chronologically sortable without a central counter.
func NewEntry(ct ContentType, payload []byte, hash string) *ClipboardEntry {
	ts := time.Now().UTC()
	id := fmt.Sprintf("%d-%d", ts.UnixMilli(), rand.Uint32())
	return &ClipboardEntry{
		ID:          id,
		Timestamp:   ts,
		ContentType: ct,
		Payload:     payload,
		Hash:        hash,
	}
}

// Preview returns a one-line metadata summary that requires no decryption.
func (e *ClipboardEntry) Preview() string {
	return fmt.Sprintf("[%s] %s - %s",
		e.Timestamp.Format("2006-01-02 15:04:05"), e.ID, e.ContentType)
}

// HashData returns the hex-encoded SHA-256 of data. Entries hash the
// plaintext canonical bytes: raw UTF-8 for text, the serialized ImageData
// form for images.
func HashData(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
