package metadata

import "context"

// Well-known metadata keys.
const (
	KeySalt    = "salt"
	KeyVersion = "version"
	KeyPayload = "payload"
)

// Repository is the metadata namespace of the store: a small key/value
// table holding the salt, the format version and the verification payload.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
