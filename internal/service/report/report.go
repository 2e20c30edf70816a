// Package report builds the weekly income and payroll summaries of the
// admin console.
package report

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
)

// Window is how far back a summary reaches from now.
const Window = 7 * 24 * time.Hour

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type IncomeLine struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	ServiceType string  `json:"service_type"`
	RatePerHour float64 `json:"rate_per_hour"`
	Hours       float64 `json:"hours"`
	AddOnPrice  float64 `json:"add_on_price"`
	Total       float64 `json:"total"`
}

type PayLine struct {
	Date      string  `json:"date"`
	Therapist string  `json:"therapist"`
	Rate      float64 `json:"rate"`
	Hours     float64 `json:"hours"`
	Pay       float64 `json:"pay"`
}

type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type Income struct {
	Lines []IncomeLine `json:"lines"`
	Days  []DayTotal   `json:"days"`
	Total float64      `json:"total"`
}

type Payroll struct {
	Lines []PayLine  `json:"lines"`
	Days  []DayTotal `json:"days"`
	Total float64    `json:"total"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	WeeklyIncome(ctx context.Context, storeID uuid.UUID) (*Income, error)
	WeeklyPayroll(ctx context.Context, storeID uuid.UUID) (*Payroll, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type reportService struct {
	db    *repo.Client
	clock booking.Clock
}

func New(db *repo.Client, clock booking.Clock) Service {
	return &reportService{db: db, clock: clock}
}

// worked is a booking inside the window with its parsed day and length.
type worked struct {
	bk    *repo.Booking
	day   time.Time
	hours float64
}

// recent gathers live and archived bookings dated inside the window,
// ordered by day then start time. Rows with unreadable dates are dropped;
// unreadable times count as zero hours.
func (s *reportService) recent(ctx context.Context, storeID uuid.UUID) ([]worked, error) {
	live, err := s.db.Booking.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	archived, err := s.db.ArchivedBooking.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	all := live
	for _, ab := range archived {
		all = append(all, &ab.Booking)
	}

	loc := s.clock.Location()
	cutoff := s.clock.Now().Add(-Window)
	var out []worked
	for _, bk := range all {
		day, err := booking.ParseDate(bk.Date, loc)
		if err != nil || day.Before(cutoff) {
			continue
		}
		out = append(out, worked{bk: bk, day: day, hours: hoursOf(bk)})
	}
	slices.SortStableFunc(out, func(a, b worked) int {
		if c := a.day.Compare(b.day); c != 0 {
			return c
		}
		return cmp.Compare(minutesOf(a.bk.StartTime), minutesOf(b.bk.StartTime))
	})
	return out, nil
}

func (s *reportService) WeeklyIncome(ctx context.Context, storeID uuid.UUID) (*Income, error) {
	rows, err := s.recent(ctx, storeID)
	if err != nil {
		return nil, err
	}
	types, err := s.db.ServiceType.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]float64, len(types))
	for _, st := range types {
		if !st.IsAddOn {
			rates[st.Name] = st.Rate
		}
	}

	inc := &Income{Lines: make([]IncomeLine, 0, len(rows))}
	var days dayTotals
	for _, w := range rows {
		rate := rates[w.bk.ServiceType]
		total := booking.Round2(w.hours*rate + w.bk.AddOnPrice)
		inc.Lines = append(inc.Lines, IncomeLine{
			Date:        w.bk.Date,
			StartTime:   w.bk.StartTime,
			ServiceType: w.bk.ServiceType,
			RatePerHour: booking.Round2(rate),
			Hours:       booking.Round2(w.hours),
			AddOnPrice:  booking.Round2(w.bk.AddOnPrice),
			Total:       total,
		})
		days.add(w.bk.Date, total)
	}
	inc.Days, inc.Total = days.result()
	return inc, nil
}

func (s *reportService) WeeklyPayroll(ctx context.Context, storeID uuid.UUID) (*Payroll, error) {
	rows, err := s.recent(ctx, storeID)
	if err != nil {
		return nil, err
	}
	therapists, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]float64, len(therapists))
	for _, t := range therapists {
		rates[t.Name] = t.Rate
	}

	pr := &Payroll{Lines: make([]PayLine, 0, len(rows))}
	var days dayTotals
	for _, w := range rows {
		rate := rates[w.bk.Therapist]
		hours := booking.Round2(w.hours)
		pay := booking.Round2(hours * rate)
		pr.Lines = append(pr.Lines, PayLine{
			Date:      w.bk.Date,
			Therapist: w.bk.Therapist,
			Rate:      rate,
			Hours:     hours,
			Pay:       pay,
		})
		days.add(w.bk.Date, pay)
	}
	pr.Days, pr.Total = days.result()
	return pr, nil
}

// dayTotals sums per date in first-seen order; callers feed it sorted rows.
type dayTotals struct {
	order []string
	sums  map[string]float64
}

func (d *dayTotals) add(date string, v float64) {
	if d.sums == nil {
		d.sums = map[string]float64{}
	}
	if _, ok := d.sums[date]; !ok {
		d.order = append(d.order, date)
	}
	d.sums[date] += v
}

func (d *dayTotals) result() ([]DayTotal, float64) {
	out := make([]DayTotal, 0, len(d.order))
	total := 0.0
	for _, date := range d.order {
		v := booking.Round2(d.sums[date])
		out = append(out, DayTotal{Date: date, Total: v})
		total += v
	}
	return out, booking.Round2(total)
}

func hoursOf(bk *repo.Booking) float64 {
	start, err := booking.ParseTimeOfDay(bk.StartTime)
	if err != nil {
		return 0
	}
	end, err := booking.ParseTimeOfDay(bk.EndTime)
	if err != nil {
		return 0
	}
	return float64(end.Minutes()-start.Minutes()) / 60
}

func minutesOf(clock string) int {
	t, err := booking.ParseTimeOfDay(clock)
	if err != nil {
		return 0
	}
	return t.Minutes()
}
