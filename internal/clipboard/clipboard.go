// Package clipboard abstracts system clipboard access behind a small
// interface so the watcher and commands can run against the real clipboard
// or an in-memory fake in tests.
package clipboard

import (
	"errors"

	"github.com/dmitrijs2005/clipvault/internal/models"
)

// ErrEmpty is returned when the clipboard holds no supported content.
// Callers treat it as "nothing to do", never as a failure.
var ErrEmpty = errors.New("clipboard is empty")

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	// ReadText returns the current text content, or ErrEmpty.
	ReadText() (string, error)

	// ReadImage returns the current image content, or ErrEmpty.
	ReadImage() (*models.ImageData, error)

	// WriteText places text on the clipboard.
	WriteText(text string) error

	// WriteImage places an image on the clipboard.
	WriteImage(img *models.ImageData) error
}
