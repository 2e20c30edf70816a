package archive

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/repo/repotest"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time           { return c.now }
func (c fixedClock) Location() *time.Location { return c.now.Location() }

func newService(t *testing.T, drv *repotest.Driver) Service {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		t.Fatal(err)
	}
	return New(repo.NewClient(drv), fixedClock{time.Date(2025, 6, 1, 0, 30, 0, 0, loc)}, nil)
}

func bookingsOn(storeID uuid.UUID, dates ...string) [][]any {
	var rows [][]any
	for _, d := range dates {
		rows = append(rows, repotest.BookingRow(repo.Booking{
			ID: uuid.New(), StoreID: storeID, Date: d, StartTime: "10:00 AM", EndTime: "11:00 AM",
		}))
	}
	return rows
}

func countInserts(drv *repotest.Driver) int {
	n := 0
	for _, s := range drv.Statements() {
		if strings.HasPrefix(s, `INSERT INTO "archived_bookings"`) {
			n++
		}
	}
	return n
}

func TestSweepStoreMovesOnlyPastDays(t *testing.T) {
	storeID := uuid.New()
	drv := &repotest.Driver{
		QueryFn: func(q string, _ []any) ([][]any, error) {
			if repotest.From(q, "bookings") {
				return bookingsOn(storeID, "31/05/2025", "01/06/2025", "02/06/2025", "15/12/2024", "not a date"), nil
			}
			return nil, nil
		},
	}

	n, err := newService(t, drv).SweepStore(context.Background(), storeID)
	if err != nil {
		t.Fatalf("SweepStore() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SweepStore() = %d, want 2", n)
	}
	if got := countInserts(drv); got != 2 {
		t.Errorf("archived %d rows, want 2", got)
	}
}

func TestSweepStoreNothingToDo(t *testing.T) {
	storeID := uuid.New()
	drv := &repotest.Driver{
		QueryFn: func(q string, _ []any) ([][]any, error) {
			return bookingsOn(storeID, "01/06/2025"), nil
		},
	}
	n, err := newService(t, drv).SweepStore(context.Background(), storeID)
	if err != nil || n != 0 {
		t.Fatalf("SweepStore() = %d, %v; want 0, nil", n, err)
	}
	if drv.Ran("INSERT") || drv.Ran("DELETE") {
		t.Error("sweep wrote with nothing to archive")
	}
}

func TestSweepAllContinuesPastFailures(t *testing.T) {
	good, bad := uuid.New(), uuid.New()
	errBoom := errors.New("boom")
	drv := &repotest.Driver{
		QueryFn: func(q string, args []any) ([][]any, error) {
			switch {
			case repotest.From(q, "stores"):
				return [][]any{
					repotest.StoreRow(repo.Store{ID: bad, Name: "A", Slug: "a", Status: "active"}),
					repotest.StoreRow(repo.Store{ID: good, Name: "B", Slug: "b", Status: "active"}),
				}, nil
			case repotest.From(q, "bookings"):
				if len(args) > 0 && args[0] == bad {
					return nil, errBoom
				}
				return bookingsOn(good, "30/05/2025"), nil
			}
			return nil, nil
		},
	}

	n, err := newService(t, drv).SweepAll(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("SweepAll() error = %v, want boom", err)
	}
	if n != 1 {
		t.Errorf("SweepAll() = %d, want 1", n)
	}
}

func TestListNewestFirst(t *testing.T) {
	storeID := uuid.New()
	drv := &repotest.Driver{
		QueryFn: func(q string, _ []any) ([][]any, error) {
			var rows [][]any
			for _, d := range []string{"02/05/2025", "30/05/2025", "15/12/2024"} {
				rows = append(rows, repotest.ArchivedBookingRow(repo.ArchivedBooking{
					Booking: repo.Booking{ID: uuid.New(), StoreID: storeID, Date: d},
				}))
			}
			return rows, nil
		},
	}

	got, err := newService(t, drv).List(context.Background(), storeID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"30/05/2025", "02/05/2025", "15/12/2024"}
	for i, ab := range got {
		if ab.Date != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, ab.Date, want[i])
		}
	}
}
