package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// recorder captures statements instead of hitting Postgres.
type recorder struct {
	stmts    []string
	args     [][]any
	affected int64
	err      error
}

type stmtResult struct{ n int64 }

func (r stmtResult) LastInsertId() (int64, error) { return 0, nil }
func (r stmtResult) RowsAffected() (int64, error) { return r.n, nil }

type emptyRows struct{}

func (emptyRows) Close() error                           { return nil }
func (emptyRows) ColumnTypes() ([]*sql.ColumnType, error) { return nil, nil }
func (emptyRows) Columns() ([]string, error)             { return nil, nil }
func (emptyRows) Err() error                             { return nil }
func (emptyRows) Next() bool                             { return false }
func (emptyRows) NextResultSet() bool                    { return false }
func (emptyRows) Scan(...any) error                      { return nil }

func (r *recorder) Exec(_ context.Context, q string, args, v any) error {
	r.stmts = append(r.stmts, q)
	r.args = append(r.args, args.([]any))
	if r.err != nil {
		return r.err
	}
	if res, ok := v.(*sql.Result); ok {
		*res = stmtResult{n: r.affected}
	}
	return nil
}

func (r *recorder) Query(_ context.Context, q string, args, v any) error {
	r.stmts = append(r.stmts, q)
	r.args = append(r.args, args.([]any))
	if r.err != nil {
		return r.err
	}
	if rows, ok := v.(*entsql.Rows); ok {
		*rows = entsql.Rows{ColumnScanner: emptyRows{}}
	}
	return nil
}

var _ dialect.ExecQuerier = (*recorder)(nil)

func hasArg(args []any, want any) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func TestTenantScopedStatements(t *testing.T) {
	rec := &recorder{affected: 1}
	c := newClient(rec)
	ctx := context.Background()
	storeID := uuid.New()
	id := uuid.New()

	calls := []struct {
		name string
		run  func() error
	}{
		{"latest hours", func() error { _, err := c.StoreHours.Latest(ctx, storeID); return ignoreNotFound(err) }},
		{"save hours", func() error { _, err := c.StoreHours.Save(ctx, storeID, "10:00 AM", "06:00 PM"); return err }},
		{"list services", func() error { _, err := c.ServiceType.List(ctx, storeID); return err }},
		{"delete service", func() error { return c.ServiceType.Delete(ctx, storeID, id) }},
		{"list therapists", func() error { _, err := c.Therapist.List(ctx, storeID); return err }},
		{"delete therapist", func() error { return c.Therapist.DeleteByName(ctx, storeID, "Ann") }},
		{"list therapist times", func() error { _, err := c.TherapistTime.List(ctx, storeID); return err }},
		{"upsert therapist time", func() error { return c.TherapistTime.Upsert(ctx, storeID, "Ann", "10:00 AM", "06:00 PM") }},
		{"create booking", func() error { return c.Booking.Create(ctx, storeID, &Booking{StoreID: uuid.New()}) }},
		{"list bookings", func() error { _, err := c.Booking.List(ctx, storeID); return err }},
		{"count bookings", func() error { _, err := c.Booking.Count(ctx, storeID); return err }},
		{"reschedule", func() error { return c.Booking.Reschedule(ctx, storeID, id, "01/06/2025", "10:00 AM", "11:00 AM", "Ann") }},
		{"delete booking", func() error { return c.Booking.Delete(ctx, storeID, id) }},
		{"list archive", func() error { _, err := c.ArchivedBooking.List(ctx, storeID); return err }},
	}

	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			before := len(rec.stmts)
			if err := tc.run(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rec.stmts) != before+1 {
				t.Fatalf("expected one statement, got %d", len(rec.stmts)-before)
			}
			stmt, args := rec.stmts[before], rec.args[before]
			if !strings.Contains(stmt, `"store_id"`) {
				t.Errorf("statement does not reference store_id: %s", stmt)
			}
			if !hasArg(args, storeID) {
				t.Errorf("store id not bound: %s %v", stmt, args)
			}
		})
	}
}

func ignoreNotFound(err error) error {
	if IsNotFound(err) {
		return nil
	}
	return err
}

func TestCreateBookingOverridesStoreID(t *testing.T) {
	rec := &recorder{affected: 1}
	c := newClient(rec)
	storeID := uuid.New()

	bk := &Booking{StoreID: uuid.New(), Date: "01/06/2025"}
	if err := c.Booking.Create(context.Background(), storeID, bk); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bk.StoreID != storeID {
		t.Errorf("StoreID = %v, want %v", bk.StoreID, storeID)
	}
	if bk.ID == uuid.Nil || bk.CreatedAt.IsZero() {
		t.Error("id and created_at should be filled")
	}
}

func TestAffectOneNotFound(t *testing.T) {
	rec := &recorder{affected: 0}
	c := newClient(rec)

	err := c.Booking.Delete(context.Background(), uuid.New(), uuid.New())
	if !IsNotFound(err) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestEmptyResultIsNotFound(t *testing.T) {
	c := newClient(&recorder{})
	ctx := context.Background()

	if _, err := c.Store.GetBySlug(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("GetBySlug() error = %v, want ErrNotFound", err)
	}
	if _, err := c.Admin.GetByEmail(ctx, "a@b.c"); !IsNotFound(err) {
		t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
	}
	if _, err := c.StoreHours.Latest(ctx, uuid.New()); !IsNotFound(err) {
		t.Errorf("Latest() error = %v, want ErrNotFound", err)
	}
}

func TestQueryErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	c := newClient(&recorder{err: boom})

	_, err := c.StoreHours.Latest(context.Background(), uuid.New())
	if !errors.Is(err, boom) {
		t.Errorf("Latest() error = %v, want wrapped %v", err, boom)
	}
	if IsNotFound(err) {
		t.Error("query failure must not read as not found")
	}
}

func TestWithTxOnTransactionalClientReuses(t *testing.T) {
	c := newClient(&recorder{})
	called := false
	err := c.WithTx(context.Background(), func(tx *Client) error {
		called = tx == c
		return nil
	})
	if err != nil || !called {
		t.Errorf("WithTx() = %v, reused = %v", err, called)
	}
}

func TestArchiveBookingsRejectsForeignRows(t *testing.T) {
	rec := &recorder{affected: 1}
	c := newClient(rec)
	storeID := uuid.New()

	_, err := c.ArchiveBookings(context.Background(), storeID, []*Booking{{ID: uuid.New(), StoreID: uuid.New()}}, time.Now())
	if err == nil {
		t.Fatal("expected error for a booking of another store")
	}
	if len(rec.stmts) != 0 {
		t.Errorf("no statement should run, got %d", len(rec.stmts))
	}
}

func TestArchiveBookingsMovesRows(t *testing.T) {
	rec := &recorder{affected: 1}
	c := newClient(rec)
	storeID := uuid.New()

	bks := []*Booking{{ID: uuid.New(), StoreID: storeID}, {ID: uuid.New(), StoreID: storeID}}
	n, err := c.ArchiveBookings(context.Background(), storeID, bks, time.Now())
	if err != nil || n != 2 {
		t.Fatalf("ArchiveBookings() = %d, %v", n, err)
	}
	if len(rec.stmts) != 4 {
		t.Fatalf("statements = %d, want 4", len(rec.stmts))
	}
	if !strings.HasPrefix(rec.stmts[0], `INSERT INTO "archived_bookings"`) || !strings.HasPrefix(rec.stmts[1], `DELETE FROM "bookings"`) {
		t.Errorf("unexpected statements: %v", rec.stmts[:2])
	}
}
