package database

import (
	"context"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/melbooking/melbooking_backend/config"
)

// NewDriver opens the booking database and wraps it in an ent SQL driver.
func NewDriver(ctx context.Context, cfg config.DatabaseConfig) (dialect.Driver, error) {
	return NewDriverFromConfig(ctx, FromCentralConfig(cfg))
}

// NewDriverFromConfig opens an ent SQL driver from package Config.
// With query logging enabled every statement is logged at debug level.
func NewDriverFromConfig(ctx context.Context, cfg Config) (dialect.Driver, error) {
	db, err := openSQLDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	drv := entsql.OpenDB(dialect.Postgres, db)
	if !cfg.EnableLogging {
		return drv, nil
	}

	return dialect.DebugWithContext(drv, func(ctx context.Context, v ...any) {
		slog.DebugContext(ctx, "sql", "query", fmt.Sprint(v...))
	}), nil
}
