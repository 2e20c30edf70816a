package repo

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"

	entschema "github.com/melbooking/melbooking_backend/internal/schema"
)

// Schema creates and upgrades the booking tables.
type Schema struct {
	drv dialect.Driver
}

// Create runs the migration. In safe mode columns and indexes are never
// dropped.
func (s *Schema) Create(ctx context.Context, safe bool) error {
	m, err := schema.NewMigrate(s.drv,
		schema.WithDropColumn(!safe),
		schema.WithDropIndex(!safe),
		schema.WithForeignKeys(true),
	)
	if err != nil {
		return fmt.Errorf("create migrate: %w", err)
	}
	if err := m.Create(ctx, entschema.Tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
