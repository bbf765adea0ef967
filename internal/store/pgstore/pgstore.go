// Package pgstore keeps editor documents in PostgreSQL.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/vitreous/internal/store/core"
	"github.com/udisondev/vitreous/internal/store/migrations"
)

const upsert = `
INSERT INTO editor_documents (name, payload, fingerprint, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (name) DO UPDATE SET
    payload = excluded.payload,
    fingerprint = excluded.fingerprint,
    updated_at = excluded.updated_at
WHERE editor_documents.fingerprint <> excluded.fingerprint`

// Store is a core.Documents backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to dsn and returns a Store. Call Migrate before first use on a
// fresh database.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewFromPool wraps an existing pool. Close closes it.
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate runs the goose migrations on dsn.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer db.Close()
	return migrations.Up(ctx, db, goose.DialectPostgres)
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM editor_documents WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
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
	tag, err := s.pool.Exec(ctx, upsert, name, data, core.Fingerprint(data))
	if err != nil {
		return false, fmt.Errorf("saving %s: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Driver() core.Driver { return core.DriverPostgres }
