// Package notification tells customers about their bookings by email and,
// when configured, SMS.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/pkg/email"
	"github.com/melbooking/melbooking_backend/pkg/util/phone"
)

// ---------------------------------------------------------------------------
// Senders
// ---------------------------------------------------------------------------

type EmailSender interface {
	Enabled() bool
	Send(ctx context.Context, m email.Message) error
}

type SMSSender interface {
	IsEnabled() bool
	SendTemplate(ctx context.Context, mobile string, params map[string]string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

// Service implements booking.Notifier. Email is the confirmation of
// record; SMS is best effort.
type Service struct {
	mail   EmailSender
	sms    SMSSender
	region string
}

var _ booking.Notifier = (*Service)(nil)

// New builds the notifier. region is the default phone region, e.g. "AU".
func New(mail EmailSender, sms SMSSender, region string) *Service {
	return &Service{mail: mail, sms: sms, region: region}
}

func (s *Service) Send(ctx context.Context, c booking.Confirmation) error {
	if err := s.sendEmail(ctx, c); err != nil {
		return err
	}
	s.sendSMS(ctx, c)
	return nil
}

func (s *Service) sendEmail(ctx context.Context, c booking.Confirmation) error {
	if s.mail == nil || !s.mail.Enabled() {
		slog.DebugContext(ctx, "email disabled, skipping booking confirmation", "store_id", c.StoreID)
		return nil
	}
	if c.Email == "" {
		return ErrNoRecipient
	}

	msg := email.BuildBookingConfirmationEmail(email.BookingConfirmationData{
		BookingID:   c.BookingID.String(),
		StoreName:   c.StoreName,
		Name:        c.CustomerName,
		Phone:       c.Phone,
		Email:       c.Email,
		MassageType: c.ServiceType,
		AddOns:      c.AddOns,
		Therapist:   c.Therapist,
		Start:       c.Start,
		End:         c.End,
		Note:        c.Note,
	})
	if err := s.mail.Send(ctx, msg); err != nil {
		var disabled email.ErrDisabled
		if errors.As(err, &disabled) {
			return nil
		}
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func (s *Service) sendSMS(ctx context.Context, c booking.Confirmation) {
	if s.sms == nil || !s.sms.IsEnabled() {
		return
	}

	mobile, err := phone.Normalize(c.Phone, s.region)
	if err != nil {
		slog.WarnContext(ctx, "skipping confirmation sms: unusable phone", "store_id", c.StoreID, "error", err)
		return
	}

	params := map[string]string{
		"STORE":     c.StoreName,
		"DATE":      c.Start.Format(booking.DateLayout),
		"TIME":      c.Start.Format(booking.ClockLayout),
		"THERAPIST": c.Therapist,
	}
	if err := s.sms.SendTemplate(ctx, mobile, params); err != nil {
		slog.WarnContext(ctx, "failed to send confirmation sms", "store_id", c.StoreID, "error", err)
	}
}
