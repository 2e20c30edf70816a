package booking

import "time"

// SlotStep is the spacing between candidate start times.
const SlotStep = 15 * time.Minute

// NoSlotsLabel is shown when a day has no bookable slot. Submitting it is
// the same as selecting nothing.
const NoSlotsLabel = "No available slots"

type Slot struct {
	Label string
	Start time.Time
}

// Slots is ordered by start time.
type Slots []Slot

// GenerateSlots lists start times from opens to closes-duration inclusive,
// every SlotStep, on day's date in day's zone. Existing bookings are not
// consulted.
func GenerateSlots(day time.Time, opens, closes TimeOfDay, duration time.Duration) Slots {
	if duration <= 0 {
		return nil
	}

	cursor := opens.On(day)
	limit := closes.On(day).Add(-duration)

	var out Slots
	for !cursor.After(limit) {
		out = append(out, Slot{Label: cursor.Format(ClockLayout), Start: cursor})
		cursor = cursor.Add(SlotStep)
	}
	return out
}

// Lookup maps a label back to its slot.
func (s Slots) Lookup(label string) (Slot, bool) {
	for _, slot := range s {
		if slot.Label == label {
			return slot, true
		}
	}
	return Slot{}, false
}

func (s Slots) Labels() []string {
	out := make([]string, len(s))
	for i, slot := range s {
		out[i] = slot.Label
	}
	return out
}
