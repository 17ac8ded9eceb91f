// Package sqlite stores the serialized aggregate as a single-row document in
// a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/parish-booking/internal/persistence"
	"github.com/example/parish-booking/internal/state"
)

const snapshotRowID = 1

// Store implements persistence.SnapshotStore on SQLite.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database identified by the DSN. The schema is
// created by Migrate.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single writer keeps snapshot replacement serial at the driver level too.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate ensures the snapshot table exists.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			document TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}
	return nil
}

// Load restores the most recently saved aggregate.
func (s *Store) Load(ctx context.Context) (state.AppState, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE id = ?`, snapshotRowID).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return state.AppState{}, persistence.ErrNotFound
	}
	if err != nil {
		return state.AppState{}, fmt.Errorf("read snapshot: %w", err)
	}

	snapshot, err := state.Decode([]byte(document))
	if err != nil {
		return state.AppState{}, fmt.Errorf("restore snapshot: %w", err)
	}
	return snapshot, nil
}

// Save replaces the stored snapshot with the provided aggregate.
func (s *Store) Save(ctx context.Context, snapshot state.AppState) error {
	document, err := state.Encode(snapshot)
	if err != nil {
		return err
	}

	const upsert = `
		INSERT INTO snapshots (id, document, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, saved_at = excluded.saved_at
	`
	if _, err := s.db.ExecContext(ctx, upsert, snapshotRowID, string(document), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
