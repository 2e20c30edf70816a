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

var adminColumns = []string{"id", "email", "hashed_password", "store_id", "role", "created_at"}

type AdminRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

func (r *AdminRepo) scanAll(ctx context.Context, q string, args []any) ([]*Admin, error) {
	var out []*Admin
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var a Admin
		if err := rows.Scan(&a.ID, &a.Email, &a.HashedPassword, &a.StoreID, &a.Role, &a.CreatedAt); err != nil {
			return err
		}
		out = append(out, &a)
		return nil
	})
	return out, err
}

func (r *AdminRepo) Create(ctx context.Context, a *Admin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	q, args := r.b.Insert(entschema.AdminsTable).
		Columns(adminColumns...).
		Values(a.ID, a.Email, a.HashedPassword, a.StoreID, a.Role, a.CreatedAt).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	q, args := r.b.Select(adminColumns...).
		From(r.b.Table(entschema.AdminsTable)).
		Where(entsql.EQ("email", email)).
		Limit(1).
		Query()
	admins, err := r.scanAll(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if len(admins) == 0 {
		return nil, ErrNotFound
	}
	return admins[0], nil
}

func (r *AdminRepo) List(ctx context.Context) ([]*Admin, error) {
	q, args := r.b.Select(adminColumns...).
		From(r.b.Table(entschema.AdminsTable)).
		OrderBy("email").
		Query()
	admins, err := r.scanAll(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (r *AdminRepo) UpdatePassword(ctx context.Context, email, hashed string) error {
	q, args := r.b.Update(entschema.AdminsTable).
		Set("hashed_password", hashed).
		Where(entsql.EQ("email", email)).
		Query()
	return affectOne(ctx, r.ex, "update admin password", q, args)
}

func (r *AdminRepo) UpdateStore(ctx context.Context, email string, storeID uuid.UUID) error {
	q, args := r.b.Update(entschema.AdminsTable).
		Set("store_id", storeID).
		Where(entsql.EQ("email", email)).
		Query()
	return affectOne(ctx, r.ex, "update admin store", q, args)
}

func (r *AdminRepo) Delete(ctx context.Context, email string) error {
	q, args := r.b.Delete(entschema.AdminsTable).
		Where(entsql.EQ("email", email)).
		Query()
	return affectOne(ctx, r.ex, "delete admin", q, args)
}
