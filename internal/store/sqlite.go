package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
    slot INTEGER PRIMARY KEY CHECK (slot >= 0 AND slot < 10),
    data TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// SQLiteStore implements SlotStore on a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// OpenSQLite opens (creating if needed) the slot database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string { return s.path }

// Put stores data in the slot, replacing earlier contents.
func (s *SQLiteStore) Put(ctx context.Context, index int, data []byte) error {
	if err := ValidateIndex(index); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (slot, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		index, string(data), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store slot %d: %w", index, err)
	}
	return nil
}

// Get returns the slot contents or ErrSlotEmpty.
func (s *SQLiteStore) Get(ctx context.Context, index int) (Slot, error) {
	if err := ValidateIndex(index); err != nil {
		return Slot{}, err
	}
	var data, updated string
	err := s.db.QueryRowContext(ctx, `SELECT data, updated_at FROM slots WHERE slot = ?`, index).Scan(&data, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("slot %d: %w", index, ErrSlotEmpty)
	}
	if err != nil {
		return Slot{}, fmt.Errorf("failed to read slot %d: %w", index, err)
	}
	return newSlot(index, data, updated), nil
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, index int) error {
	if err := ValidateIndex(index); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE slot = ?`, index); err != nil {
		return fmt.Errorf("failed to delete slot %d: %w", index, err)
	}
	return nil
}

// List returns the occupied slots in index order.
func (s *SQLiteStore) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, data, updated_at FROM slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var index int
		var data, updated string
		if err := rows.Scan(&index, &data, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		out = append(out, newSlot(index, data, updated))
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func newSlot(index int, data, updated string) Slot {
	// A malformed timestamp leaves UpdatedAt zero.
	ts, _ := time.Parse(time.RFC3339Nano, updated)
	return Slot{Index: index, Data: []byte(data), UpdatedAt: ts}
}
