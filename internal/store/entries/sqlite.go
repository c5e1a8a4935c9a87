// Package entries provides the persistence layer for encrypted clipboard
// entries.
//
// # Overview
//
// The package defines a Repository interface for the write-once entry
// records and a SQLite-backed implementation (SQLiteRepository) over a
// dbx.DBTX (either *sql.DB or *sql.Tx).
//
// # Data Model
//
// Each row stores the entry id, its UTC timestamp (RFC3339Nano text, which
// sorts lexicographically in chronological order), the content type
// discriminant, the encrypted payload (nonce || ciphertext) and the hex
// SHA-256 hash of the plaintext used for deduplication.
//
// # Concurrency
//
// Implementations are safe for concurrent use when backed by a properly
// configured *sql.DB; the owning Store additionally serializes access with
// a reader/writer lock when shared with the network server.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/dbx"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.ClipboardEntry) error {
	query := `INSERT INTO entries (id, ts, content_type, payload, hash) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano), string(e.ContentType), e.Payload, e.Hash)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.ClipboardEntry, error) {
	query := `SELECT id, ts, content_type, payload, hash FROM entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete entry: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra > 0, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.ClipboardEntry, error) {
	query := `SELECT id, ts, content_type, payload, hash FROM entries ORDER BY ts DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.ClipboardEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) HashExists(ctx context.Context, hash string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM entries WHERE hash = ? LIMIT 1`, hash).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check hash: %w", err)
	}
	return true, nil
}

// DeleteOlderThanLimit keeps the max newest entries (ts, then id as the
// tiebreak) and deletes the rest in one statement.
func (r *SQLiteRepository) DeleteOlderThanLimit(ctx context.Context, max int) (int, error) {
	query := `DELETE FROM entries WHERE id NOT IN (
		SELECT id FROM entries ORDER BY ts DESC, id DESC LIMIT ?
	)`
	res, err := r.db.ExecContext(ctx, query, max)
	if err != nil {
		return 0, fmt.Errorf("failed to prune entries: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(ra), nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear entries: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(ra), nil
}

func scanEntry(scan func(dest ...any) error) (*models.ClipboardEntry, error) {
	var (
		e  models.ClipboardEntry
		ts string
		ct string
	)
	if err := scan(&e.ID, &ts, &ct, &e.Payload, &e.Hash); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry timestamp %q: %w", ts, err)
	}
	e.Timestamp = parsed.UTC()
	e.ContentType = models.ContentType(ct)
	return &e, nil
}
