package clipboard

import (
	"sync"

	"github.com/dmitrijs2005/clipvault/internal/models"
)

// Memory is an in-memory Clipboard used by tests. It holds either text or
// an image, mirroring real clipboard semantics.
type Memory struct {
	mu    sync.Mutex
	text  string
	image *models.ImageData
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

func (m *Memory) ReadImage() (*models.ImageData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return nil, ErrEmpty
	}
	return m.image, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.image = nil
	return nil
}

func (m *Memory) WriteImage(img *models.ImageData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = img
	m.text = ""
	return nil
}

// Clear empties the fake clipboard.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = ""
	m.image = nil
}
