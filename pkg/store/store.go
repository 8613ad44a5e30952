// Package store persists named layout snapshots in a local SQLite database,
// so users can keep several workspace arrangements and switch between them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a named snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Store is a snapshot database handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	name       TEXT PRIMARY KEY,
	layout     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save stores layout JSON under name, replacing any previous snapshot with
// the same name.
func (s *Store) Save(name string, layout []byte) error {
	if name == "" {
		return fmt.Errorf("snapshot name cannot be empty")
	}
	_, err := s.db.Exec(`
		INSERT INTO snapshots (name, layout, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET layout = excluded.layout, created_at = excluded.created_at`,
		name, string(layout), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return nil
}

// Load returns the layout JSON stored under name.
func (s *Store) Load(name string) ([]byte, error) {
	var layout string
	err := s.db.QueryRow(`SELECT layout FROM snapshots WHERE name = ?`, name).Scan(&layout)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return []byte(layout), nil
}

// Snapshot describes one stored layout.
type Snapshot struct {
	Name      string
	CreatedAt time.Time
}

// List returns all snapshots, most recent first.
func (s *Store) List() ([]Snapshot, error) {
	rows, err := s.db.Query(`SELECT name, created_at FROM snapshots ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.Name, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Delete removes the snapshot stored under name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
