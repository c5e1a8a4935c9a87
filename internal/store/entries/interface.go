package entries

import (
	"context"

	"github.com/dmitrijs2005/clipvault/internal/models"
)

// Repository is the entry namespace of the store. Entries are written once,
// read many times and eventually deleted; there is no update path.
type Repository interface {
	// Insert writes a new entry keyed by its id.
	Insert(ctx context.Context, e *models.ClipboardEntry) error

	// GetByID returns an entry, or common.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.ClipboardEntry, error)

	// DeleteByID removes an entry, reporting whether anything was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// List returns all entries sorted newest first, with the generated id
	// as the tiebreak for equal timestamps.
	List(ctx context.Context) ([]models.ClipboardEntry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// HashExists reports whether any entry carries the given content hash.
	HashExists(ctx context.Context, hash string) (bool, error)

	// DeleteOlderThanLimit removes every entry beyond the newest max,
	// returning how many were deleted.
	DeleteOlderThanLimit(ctx context.Context, max int) (int, error)

	// Clear removes all entries, returning how many were deleted.
	Clear(ctx context.Context) (int, error)
}
