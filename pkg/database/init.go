package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/melbooking/melbooking_backend/config"
)

// InitializeDatabases creates the booking and casbin databases that do not
// exist yet, connecting through the maintenance "postgres" database. It
// returns the names it created.
func InitializeDatabases(ctx context.Context, cfg *config.Config) ([]string, error) {
	if len(cfg.Server.Databases) == 0 {
		return nil, fmt.Errorf("server.databases is empty")
	}

	admin := FromCentralConfig(cfg.Database)
	admin.DBName = "postgres"
	admin.MaxOpenConns = 1

	conn, err := openSQLDB(ctx, admin)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var created []string
	for _, name := range cfg.Server.Databases {
		ok, err := createDatabaseIfNotExists(ctx, conn, name)
		if err != nil {
			return created, fmt.Errorf("database %q: %w", name, err)
		}
		if ok {
			slog.Info("database created", "db", name)
			created = append(created, name)
		}
	}
	return created, nil
}

func createDatabaseIfNotExists(ctx context.Context, conn *sql.DB, name string) (bool, error) {
	var exists bool
	err := conn.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lookup: %w", err)
	}
	if exists {
		return false, nil
	}
	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return false, fmt.Errorf("create: %w", err)
	}
	return true, nil
}
