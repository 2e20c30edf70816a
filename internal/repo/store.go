package repo

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	entschema "github.com/melbooking/melbooking_backend/internal/schema"
)

var storeColumns = []string{"id", "store_name", "store_slug", "status", "created_at"}

func scanStore(rows *entsql.Rows) (*Store, error) {
	var s Store
	if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// StoreRepo is not tenant-scoped: stores are the tenants.
type StoreRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

func (r *StoreRepo) Create(ctx context.Context, s *Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	q, args := r.b.Insert(entschema.StoresTable).
		Columns(storeColumns...).
		Values(s.ID, s.Name, s.Slug, s.Status, s.CreatedAt).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) Get(ctx context.Context, id uuid.UUID) (*Store, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	return r.one(ctx, entsql.EQ("store_slug", slug))
}

func (r *StoreRepo) one(ctx context.Context, p *entsql.Predicate) (*Store, error) {
	q, args := r.b.Select(storeColumns...).
		From(r.b.Table(entschema.StoresTable)).
		Where(p).
		Limit(1).
		Query()

	var out *Store
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) (err error) {
		out, err = scanStore(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]*Store, error) {
	q, args := r.b.Select(storeColumns...).
		From(r.b.Table(entschema.StoresTable)).
		OrderBy("store_name").
		Query()

	var out []*Store
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		s, err := scanStore(rows)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return out, nil
}
