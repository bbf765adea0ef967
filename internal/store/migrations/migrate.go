package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Up applies every pending migration for dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	var (
		fsys fs.FS
		err  error
	)
	switch dialect {
	case goose.DialectPostgres:
		fsys, err = fs.Sub(Postgres, "postgres")
	case goose.DialectSQLite3:
		fsys, err = fs.Sub(SQLite, "sqlite")
	default:
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("opening migrations: %w", err)
	}

	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	for _, r := range results {
		slog.Debug("applied migration", "dialect", dialect, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
