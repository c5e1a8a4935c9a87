// Package backend defines the single capability surface the watcher and
// the CLI commands are written against, with a Local variant wrapping the
// in-process store and a Remote variant speaking the peer HTTP API.
//
// Hashing and encryption always happen on the caller's side of this
// interface: the Remote variant only ever moves ciphertext and non-secret
// metadata over the wire.
package backend

import (
	"context"

	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// Backend is the uniform store contract. Callers cannot tell (and must not
// care) whether entries live in a local file or on a remote peer.
type Backend interface {
	// IsInitialized reports whether the store has salt metadata.
	IsInitialized(ctx context.Context) (bool, error)

	// GetSalt returns the stored salt, or common.ErrNotInitialized.
	GetSalt(ctx context.Context) ([]byte, error)

	// VerifyPassword checks the candidate key against the verification
	// payload. The decryption happens locally in both variants.
	VerifyPassword(ctx context.Context, key *cryptox.MasterKey) (bool, error)

	// ListEntries returns all entries, newest first.
	ListEntries(ctx context.Context) ([]models.ClipboardEntry, error)

	// GetEntry returns one entry, or common.ErrNotFound.
	GetEntry(ctx context.Context, id string) (*models.ClipboardEntry, error)

	// InsertEntry persists a new entry durably.
	InsertEntry(ctx context.Context, e *models.ClipboardEntry) error

	// DeleteEntry removes one entry, reporting whether anything was removed.
	DeleteEntry(ctx context.Context, id string) (bool, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)

	// HashExists reports whether any stored entry has the given content hash.
	HashExists(ctx context.Context, hash string) (bool, error)

	// PruneToLimit deletes entries beyond the newest max; returns the
	// number deleted.
	PruneToLimit(ctx context.Context, max int) (int, error)

	// ClearEntries deletes everything; returns the number deleted.
	ClearEntries(ctx context.Context) (int, error)
}
