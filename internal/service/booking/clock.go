package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is how booking dates are stored and accepted.
	DateLayout = "02/01/2006"
	// ClockLayout labels slots and stores start/end times.
	ClockLayout = "03:04 PM"

	clockLayoutShort = "3:04 PM"
	clockLayout24    = "15:04"
)

// Clock supplies "now" and the single zone all bookings live in.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c systemClock) Location() *time.Location { return c.loc }

// Today is midnight of the current day in the clock's zone.
func Today(c Clock) time.Time {
	now := c.Now().In(c.Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.Location())
}

// ParseDate reads a "DD/MM/YYYY" date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "03:04 PM" and "3:04 PM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range []string{ClockLayout, clockLayoutShort} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("unrecognised time of day %q", s)
}

// ParseTimeOfDay24 accepts "15:04", the format used in config files.
func ParseTimeOfDay24(s string) (TimeOfDay, error) {
	t, err := time.Parse(clockLayout24, strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On combines the time of day with day's date in day's zone.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Minutes() < o.Minutes() }

// String formats as "03:04 PM".
func (t TimeOfDay) String() string {
	return time.Date(2000, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(ClockLayout)
}
