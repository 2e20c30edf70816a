package email

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const BookingConfirmationSubject = "🧴 Massage Booking Confirmed"

// BookingConfirmationData carries what the customer sees in the
// confirmation mail. Start and End are in the store's zone.
type BookingConfirmationData struct {
	BookingID   string
	StoreName   string
	Name        string
	Phone       string
	Email       string
	MassageType string
	AddOns      string
	Therapist   string
	Start       time.Time
	End         time.Time
	Note        string
}

type confirmationLine struct{ label, value string }

func (d BookingConfirmationData) lines() []confirmationLine {
	return []confirmationLine{
		{"👤 Name", d.Name},
		{"📞 Phone", d.Phone},
		{"📧 Email", d.Email},
		{"💆 Massage", d.MassageType},
		{"🧴 Add-ons", orNone(d.AddOns)},
		{"🦶 Therapist", d.Therapist},
		{"🗓 Date", d.Start.Format("Monday, 02 January 2006")},
		{"⏰ Time", d.Start.Format("03:04 PM") + " - " + d.End.Format("03:04 PM")},
		{"✏️ Note", orNone(d.Note)},
	}
}

// BuildBookingConfirmationEmail renders the customer confirmation mail.
func BuildBookingConfirmationEmail(d BookingConfirmationData) Message {
	storeName := d.StoreName
	if storeName == "" {
		storeName = "MelBooking"
	}

	var text strings.Builder
	fmt.Fprintf(&text, "🙏 Thank you for booking with %s!\n\n", storeName)
	for _, l := range d.lines() {
		fmt.Fprintf(&text, "%s: %s\n", l.label, l.value)
	}
	text.WriteString("\nWe'll see you soon! ❤️\n")

	var rows strings.Builder
	for _, l := range d.lines() {
		fmt.Fprintf(&rows, "        <tr><td style=\"padding: 4px 12px 4px 0;\">%s</td><td>%s</td></tr>\n",
			html.EscapeString(l.label), html.EscapeString(l.value))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #009688;">🙏 Thank you for booking with %s!</h2>
    <table>
%s    </table>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">We'll see you soon! ❤️</p>
</body>
</html>`, html.EscapeString(storeName), rows.String())

	msg := Message{
		To:       []string{d.Email},
		Subject:  BookingConfirmationSubject,
		TextBody: text.String(),
		HTMLBody: htmlBody,
	}
	if !d.Start.IsZero() && d.End.After(d.Start) {
		msg.Attachments = []Attachment{{
			Filename:    "booking.ics",
			ContentType: "text/calendar; charset=utf-8; method=PUBLISH",
			Data:        CalendarInvite(d, time.Now()),
		}}
	}
	return msg
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
