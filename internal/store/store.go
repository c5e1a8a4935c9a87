// Package store implements the durable encrypted entry store: a SQLite
// database split into two logical namespaces, metadata (salt, format
// version, verification payload) and entries (id → encrypted entry).
//
// Every mutating statement runs in its own implicit transaction with
// synchronous=FULL, so each insert/delete/prune is a durability checkpoint:
// a crash after a call returns cannot lose that write. Access to the handle
// is serialized by a reader/writer lock so the same store can back both a
// local watcher and the network server.
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/dbx"
	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/dmitrijs2005/clipvault/internal/store/entries"
	"github.com/dmitrijs2005/clipvault/internal/store/metadata"
	"github.com/dmitrijs2005/clipvault/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store owns the database handle and the two namespace repositories.
type Store struct {
	mu       sync.RWMutex
	db       *sql.DB
	metadata metadata.Repository
	entries  entries.Repository
}

// runMigrations applies the embedded goose migrations.
func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open creates the database (and its parent directories) if absent and
// applies migrations. Idempotent: opening an existing store is a no-op
// beyond acquiring the handle.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		db:       db,
		metadata: metadata.NewSQLiteRepository(db),
		entries:  entries.NewSQLiteRepository(db),
	}, nil
}

// DefaultPath returns the per-user store location, e.g.
// ~/.local/share/clipvault/db on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user data directory: %w", err)
	}
	return filepath.Join(dir, "clipvault", "db"), nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// IsInitialized reports whether the salt metadata key is present.
func (s *Store) IsInitialized(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata.Exists(ctx, metadata.KeySalt)
}

// Initialize writes the salt, format version and verification payload in
// one transaction: a partial init would leave a salt whose payload no
// password verifies against. Re-initializing (a password change)
// overwrites salt and payload but never touches existing entries:
// anything stored under the old password stays encrypted with the old key
// and becomes undecryptable with the new one. This is the documented
// trade-off of the fast password change.
func (s *Store) Initialize(ctx context.Context, salt, verificationPayload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := make([]byte, 4)
	binary.LittleEndian.PutUint32(version, common.StoreFormatVersion)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		m := metadata.NewSQLiteRepository(tx)

		if err := m.Set(ctx, metadata.KeySalt, salt); err != nil {
			return err
		}
		if err := m.Set(ctx, metadata.KeyVersion, version); err != nil {
			return err
		}
		return m.Set(ctx, metadata.KeyPayload, verificationPayload)
	})
}

// GetSalt returns the stored salt, or common.ErrNotInitialized.
func (s *Store) GetSalt(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	salt, err := s.metadata.Get(ctx, metadata.KeySalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		return nil, common.ErrNotInitialized
	}
	return salt, nil
}

// GetVerificationPayload returns the verification payload ciphertext, or
// common.ErrNotInitialized. The blob is non-secret; the peer server hands
// it out so remote callers can check their password locally.
func (s *Store) GetVerificationPayload(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, err := s.metadata.Get(ctx, metadata.KeyPayload)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, common.ErrNotInitialized
	}
	return payload, nil
}

// VerifyPassword decrypts the verification payload with the candidate key
// and compares it to the known plaintext. A decryption failure means a
// wrong password, not an error.
func (s *Store) VerifyPassword(ctx context.Context, key *cryptox.MasterKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, err := s.metadata.Get(ctx, metadata.KeyPayload)
	if err != nil {
		return false, err
	}
	if payload == nil {
		return false, common.ErrNotInitialized
	}

	plaintext, err := cryptox.Decrypt(key, payload)
	if err != nil {
		return false, nil
	}
	return string(plaintext) == common.VerificationPlaintext, nil
}

func (s *Store) InsertEntry(ctx context.Context, e *models.ClipboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Insert(ctx, e)
}

func (s *Store) GetEntry(ctx context.Context, id string) (*models.ClipboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.GetByID(ctx, id)
}

func (s *Store) DeleteEntry(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.DeleteByID(ctx, id)
}

// ListEntries returns all entries, newest first. The full slice is
// materialized: entry counts stay small because pruning bounds them.
func (s *Store) ListEntries(ctx context.Context) ([]models.ClipboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.List(ctx)
}

func (s *Store) CountEntries(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Count(ctx)
}

func (s *Store) HashExists(ctx context.Context, hash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.HashExists(ctx, hash)
}

// PruneToLimit deletes every entry beyond the newest max and returns the
// number deleted; 0 when already within bound.
func (s *Store) PruneToLimit(ctx context.Context, max int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.DeleteOlderThanLimit(ctx, max)
}

// ClearEntries deletes all entries and returns the number deleted.
func (s *Store) ClearEntries(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Clear(ctx)
}
