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

// ---------------------------------------------------------------------------
// Store hours
// ---------------------------------------------------------------------------

type StoreHoursRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

// Latest returns the most recently saved pair for the store.
func (r *StoreHoursRepo) Latest(ctx context.Context, storeID uuid.UUID) (*StoreHours, error) {
	q, args := r.b.Select("id", "store_id", "open", "close", "updated_at").
		From(r.b.Table(entschema.StoreHoursTable)).
		Where(entsql.EQ("store_id", storeID)).
		OrderBy(entsql.Desc("updated_at")).
		Limit(1).
		Query()

	var out *StoreHours
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var h StoreHours
		if err := rows.Scan(&h.ID, &h.StoreID, &h.Open, &h.Close, &h.UpdatedAt); err != nil {
			return err
		}
		out = &h
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("latest store hours: %w", err)
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

// Save appends a new pair; it supersedes older rows.
func (r *StoreHoursRepo) Save(ctx context.Context, storeID uuid.UUID, openTime, closeTime string) (*StoreHours, error) {
	h := &StoreHours{ID: uuid.New(), StoreID: storeID, Open: openTime, Close: closeTime, UpdatedAt: time.Now()}
	q, args := r.b.Insert(entschema.StoreHoursTable).
		Columns("id", "store_id", "open", "close", "updated_at").
		Values(h.ID, h.StoreID, h.Open, h.Close, h.UpdatedAt).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return nil, fmt.Errorf("save store hours: %w", err)
	}
	return h, nil
}

// ---------------------------------------------------------------------------
// Service types
// ---------------------------------------------------------------------------

type ServiceTypeRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

func (r *ServiceTypeRepo) List(ctx context.Context, storeID uuid.UUID) ([]*ServiceType, error) {
	q, args := r.b.Select("id", "store_id", "name", "rate", "is_addon", "created_at").
		From(r.b.Table(entschema.ServiceTypesTable)).
		Where(entsql.EQ("store_id", storeID)).
		OrderBy("created_at", "name").
		Query()

	var out []*ServiceType
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var st ServiceType
		if err := rows.Scan(&st.ID, &st.StoreID, &st.Name, &st.Rate, &st.IsAddOn, &st.CreatedAt); err != nil {
			return err
		}
		out = append(out, &st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}
	return out, nil
}

func (r *ServiceTypeRepo) Create(ctx context.Context, st *ServiceType) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	q, args := r.b.Insert(entschema.ServiceTypesTable).
		Columns("id", "store_id", "name", "rate", "is_addon", "created_at").
		Values(st.ID, st.StoreID, st.Name, st.Rate, st.IsAddOn, st.CreatedAt).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("insert service type: %w", err)
	}
	return nil
}

func (r *ServiceTypeRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	q, args := r.b.Delete(entschema.ServiceTypesTable).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("store_id", storeID))).
		Query()
	return affectOne(ctx, r.ex, "delete service type", q, args)
}

// ---------------------------------------------------------------------------
// Therapists
// ---------------------------------------------------------------------------

type TherapistRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

// List returns therapists in creation order; calendar colors follow it.
func (r *TherapistRepo) List(ctx context.Context, storeID uuid.UUID) ([]*Therapist, error) {
	q, args := r.b.Select("id", "store_id", "name", "rate", "created_at").
		From(r.b.Table(entschema.TherapistsTable)).
		Where(entsql.EQ("store_id", storeID)).
		OrderBy("created_at", "name").
		Query()

	var out []*Therapist
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var t Therapist
		if err := rows.Scan(&t.ID, &t.StoreID, &t.Name, &t.Rate, &t.CreatedAt); err != nil {
			return err
		}
		out = append(out, &t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	return out, nil
}

func (r *TherapistRepo) Create(ctx context.Context, t *Therapist) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	q, args := r.b.Insert(entschema.TherapistsTable).
		Columns("id", "store_id", "name", "rate", "created_at").
		Values(t.ID, t.StoreID, t.Name, t.Rate, t.CreatedAt).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("insert therapist: %w", err)
	}
	return nil
}

func (r *TherapistRepo) DeleteByName(ctx context.Context, storeID uuid.UUID, name string) error {
	q, args := r.b.Delete(entschema.TherapistsTable).
		Where(entsql.And(entsql.EQ("store_id", storeID), entsql.EQ("name", name))).
		Query()
	return affectOne(ctx, r.ex, "delete therapist", q, args)
}

// ---------------------------------------------------------------------------
// Therapist working hours
// ---------------------------------------------------------------------------

type TherapistTimeRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

func (r *TherapistTimeRepo) List(ctx context.Context, storeID uuid.UUID) ([]*TherapistTime, error) {
	q, args := r.b.Select("id", "store_id", "name", "start_time", "end_time", "updated_at").
		From(r.b.Table(entschema.TherapistTimesTable)).
		Where(entsql.EQ("store_id", storeID)).
		OrderBy("name").
		Query()

	var out []*TherapistTime
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var tt TherapistTime
		if err := rows.Scan(&tt.ID, &tt.StoreID, &tt.Name, &tt.StartTime, &tt.EndTime, &tt.UpdatedAt); err != nil {
			return err
		}
		out = append(out, &tt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list therapist times: %w", err)
	}
	return out, nil
}

// Upsert saves working hours keyed by (store, therapist name).
func (r *TherapistTimeRepo) Upsert(ctx context.Context, storeID uuid.UUID, name, start, end string) error {
	q, args := r.b.Insert(entschema.TherapistTimesTable).
		Columns("id", "store_id", "name", "start_time", "end_time", "updated_at").
		Values(uuid.New(), storeID, name, start, end, time.Now()).
		OnConflict(
			entsql.ConflictColumns("store_id", "name"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("start_time")
				u.SetExcluded("end_time")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("upsert therapist time: %w", err)
	}
	return nil
}
