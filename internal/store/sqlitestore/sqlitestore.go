// Package sqlitestore keeps editor documents in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/vitreous/internal/store/core"
	"github.com/udisondev/vitreous/internal/store/migrations"
)

const upsert = `
INSERT INTO editor_documents (name, payload, fingerprint, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET
    payload = excluded.payload,
    fingerprint = excluded.fingerprint,
    updated_at = excluded.updated_at
WHERE editor_documents.fingerprint <> excluded.fingerprint`

// Store is a core.Documents over database/sql with the modernc driver.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the database at path and migrates it.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlitestore: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}
	if err := migrations.Up(ctx, db, goose.DialectSQLite3); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM editor_documents WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) (bool, error) {
	if err := core.ValidateName(name); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, upsert, name, data, core.Fingerprint(data))
	if err != nil {
		return false, fmt.Errorf("saving %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("saving %s: %w", name, err)
	}
	return n > 0, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Driver() core.Driver { return core.DriverSQLite }
