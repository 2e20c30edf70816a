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

var bookingColumns = []string{
	"id", "store_id", "date", "start_time", "end_time", "customer_name", "phone",
	"therapist", "service_type", "add_on", "add_on_price", "created_at",
}

func (b *Booking) scanDest() []any {
	return []any{
		&b.ID, &b.StoreID, &b.Date, &b.StartTime, &b.EndTime, &b.CustomerName, &b.Phone,
		&b.Therapist, &b.ServiceType, &b.AddOn, &b.AddOnPrice, &b.CreatedAt,
	}
}

func (b *Booking) values() []any {
	return []any{
		b.ID, b.StoreID, b.Date, b.StartTime, b.EndTime, b.CustomerName, b.Phone,
		b.Therapist, b.ServiceType, b.AddOn, b.AddOnPrice, b.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type BookingRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

// Create inserts bk under storeID, overriding whatever StoreID bk carries.
func (r *BookingRepo) Create(ctx context.Context, storeID uuid.UUID, bk *Booking) error {
	bk.StoreID = storeID
	if bk.ID == uuid.Nil {
		bk.ID = uuid.New()
	}
	if bk.CreatedAt.IsZero() {
		bk.CreatedAt = time.Now()
	}
	q, args := r.b.Insert(entschema.BookingsTable).
		Columns(bookingColumns...).
		Values(bk.values()...).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepo) list(ctx context.Context, p *entsql.Predicate) ([]*Booking, error) {
	sel := r.b.Select(bookingColumns...).
		From(r.b.Table(entschema.BookingsTable)).
		OrderBy("created_at")
	if p != nil {
		sel = sel.Where(p)
	}
	q, args := sel.Query()

	var out []*Booking
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var bk Booking
		if err := rows.Scan(bk.scanDest()...); err != nil {
			return err
		}
		out = append(out, &bk)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

func (r *BookingRepo) List(ctx context.Context, storeID uuid.UUID) ([]*Booking, error) {
	return r.list(ctx, entsql.EQ("store_id", storeID))
}

// ListAll spans every store. Only the superadmin console uses it.
func (r *BookingRepo) ListAll(ctx context.Context) ([]*Booking, error) {
	return r.list(ctx, nil)
}

func (r *BookingRepo) Count(ctx context.Context, storeID uuid.UUID) (int, error) {
	q, args := r.b.Select(entsql.Count("*")).
		From(r.b.Table(entschema.BookingsTable)).
		Where(entsql.EQ("store_id", storeID)).
		Query()

	var n int
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// Reschedule moves a booking in time and/or to another therapist.
func (r *BookingRepo) Reschedule(ctx context.Context, storeID, id uuid.UUID, date, start, end, therapist string) error {
	q, args := r.b.Update(entschema.BookingsTable).
		Set("date", date).
		Set("start_time", start).
		Set("end_time", end).
		Set("therapist", therapist).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("store_id", storeID))).
		Query()
	return affectOne(ctx, r.ex, "reschedule booking", q, args)
}

func (r *BookingRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	q, args := r.b.Delete(entschema.BookingsTable).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("store_id", storeID))).
		Query()
	return affectOne(ctx, r.ex, "delete booking", q, args)
}

// ---------------------------------------------------------------------------
// Archive
// ---------------------------------------------------------------------------

type ArchivedBookingRepo struct {
	ex dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

// Insert copies bk into the archive. Callers delete the live row in the
// same transaction.
func (r *ArchivedBookingRepo) Insert(ctx context.Context, bk *Booking, at time.Time) error {
	cols := append(append([]string{}, bookingColumns...), "archived_at")
	q, args := r.b.Insert(entschema.ArchivedBookingsTable).
		Columns(cols...).
		Values(append(bk.values(), at)...).
		Query()
	if _, err := exec(ctx, r.ex, q, args); err != nil {
		return fmt.Errorf("archive booking: %w", err)
	}
	return nil
}

func (r *ArchivedBookingRepo) List(ctx context.Context, storeID uuid.UUID) ([]*ArchivedBooking, error) {
	cols := append(append([]string{}, bookingColumns...), "archived_at")
	q, args := r.b.Select(cols...).
		From(r.b.Table(entschema.ArchivedBookingsTable)).
		Where(entsql.EQ("store_id", storeID)).
		Query()

	var out []*ArchivedBooking
	err := query(ctx, r.ex, q, args, func(rows *entsql.Rows) error {
		var ab ArchivedBooking
		if err := rows.Scan(append(ab.scanDest(), &ab.ArchivedAt)...); err != nil {
			return err
		}
		out = append(out, &ab)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list archived bookings: %w", err)
	}
	return out, nil
}

// ArchiveBookings moves bookings of one store into the archive atomically.
func (c *Client) ArchiveBookings(ctx context.Context, storeID uuid.UUID, bookings []*Booking, at time.Time) (int, error) {
	moved := 0
	err := c.WithTx(ctx, func(tx *Client) error {
		for _, bk := range bookings {
			if bk.StoreID != storeID {
				return fmt.Errorf("archive booking %s: belongs to another store", bk.ID)
			}
			if err := tx.ArchivedBooking.Insert(ctx, bk, at); err != nil {
				return err
			}
			if err := tx.Booking.Delete(ctx, storeID, bk.ID); err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
