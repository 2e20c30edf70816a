package email

import (
	"fmt"
	"strings"
	"time"
)

const icsStamp = "20060102T150405Z"

// CalendarInvite renders a single-event iCalendar file for the booking so
// customers can add it to their calendar. Times are written in UTC.
func CalendarInvite(d BookingConfirmationData, now time.Time) []byte {
	uid := d.BookingID
	if uid == "" {
		uid = fmt.Sprintf("%d", d.Start.Unix())
	}
	store := d.StoreName
	if store == "" {
		store = "MelBooking"
	}

	summary := d.MassageType + " massage"
	if d.Therapist != "" {
		summary += " with " + d.Therapist
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//melbooking//booking//EN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid + "@melbooking",
		"DTSTAMP:" + now.UTC().Format(icsStamp),
		"DTSTART:" + d.Start.UTC().Format(icsStamp),
		"DTEND:" + d.End.UTC().Format(icsStamp),
		"SUMMARY:" + icsEscape(summary),
		"LOCATION:" + icsEscape(store),
	}
	if d.AddOns != "" {
		lines = append(lines, "DESCRIPTION:"+icsEscape("Add-ons: "+d.AddOns))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

var icsReplacer = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func icsEscape(s string) string {
	return icsReplacer.Replace(s)
}
