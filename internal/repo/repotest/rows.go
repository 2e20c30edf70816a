package repotest

import (
	"strings"

	"github.com/melbooking/melbooking_backend/internal/repo"
)

// Row builders in the column order the repositories select.

func StoreRow(s repo.Store) []any {
	return []any{s.ID, s.Name, s.Slug, s.Status, s.CreatedAt}
}

func AdminRow(a repo.Admin) []any {
	return []any{a.ID, a.Email, a.HashedPassword, a.StoreID, a.Role, a.CreatedAt}
}

func StoreHoursRow(h repo.StoreHours) []any {
	return []any{h.ID, h.StoreID, h.Open, h.Close, h.UpdatedAt}
}

func ServiceTypeRow(st repo.ServiceType) []any {
	return []any{st.ID, st.StoreID, st.Name, st.Rate, st.IsAddOn, st.CreatedAt}
}

func TherapistRow(t repo.Therapist) []any {
	return []any{t.ID, t.StoreID, t.Name, t.Rate, t.CreatedAt}
}

func TherapistTimeRow(tt repo.TherapistTime) []any {
	return []any{tt.ID, tt.StoreID, tt.Name, tt.StartTime, tt.EndTime, tt.UpdatedAt}
}

func BookingRow(b repo.Booking) []any {
	return []any{
		b.ID, b.StoreID, b.Date, b.StartTime, b.EndTime, b.CustomerName, b.Phone,
		b.Therapist, b.ServiceType, b.AddOn, b.AddOnPrice, b.CreatedAt,
	}
}

func ArchivedBookingRow(ab repo.ArchivedBooking) []any {
	return append(BookingRow(ab.Booking), ab.ArchivedAt)
}

// From reports whether q selects from table.
func From(q, table string) bool {
	return strings.Contains(q, `FROM "`+table+`"`)
}
