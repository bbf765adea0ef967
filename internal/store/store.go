// Package store opens the editor document store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/store/core"
	"github.com/udisondev/vitreous/internal/store/fsstore"
	"github.com/udisondev/vitreous/internal/store/pgstore"
	"github.com/udisondev/vitreous/internal/store/s3store"
	"github.com/udisondev/vitreous/internal/store/sqlitestore"
)

type (
	Documents = core.Documents
	Driver    = core.Driver
)

var (
	ErrNotFound    = core.ErrNotFound
	ErrInvalidName = core.ErrInvalidName
)

// Open returns the backend named by cfg.Driver. The postgres backend is
// migrated before use.
func Open(ctx context.Context, cfg config.StoreConfig) (Documents, error) {
	var (
		docs Documents
		err  error
	)
	switch cfg.Driver {
	case config.DriverFS, "":
		docs, err = fsstore.New(cfg.Dir)
	case config.DriverSQLite:
		docs, err = sqlitestore.New(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		if err = pgstore.Migrate(ctx, dsn); err != nil {
			return nil, err
		}
		docs, err = pgstore.New(ctx, dsn)
	case config.DriverS3:
		docs, err = s3store.New(ctx, s3store.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}
	slog.Info("opened document store", "driver", docs.Driver())
	return docs, nil
}
