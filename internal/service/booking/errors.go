package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every user-correctable rejection.
	ErrValidation = errors.New("invalid booking request")

	ErrNoSlotSelected  = fmt.Errorf("%w: please select a time slot", ErrValidation)
	ErrMissingEmail    = fmt.Errorf("%w: email is required", ErrValidation)
	ErrMissingPhone    = fmt.Errorf("%w: phone is required", ErrValidation)
	ErrInvalidDuration = fmt.Errorf("%w: unsupported duration", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: date must be DD/MM/YYYY", ErrValidation)
	ErrDateInPast      = fmt.Errorf("%w: date is in the past", ErrValidation)
	ErrSlotUnavailable = fmt.Errorf("%w: selected slot is not available", ErrValidation)

	// ErrConfigurationMissing means the store catalog lacks what the
	// request names (service type, add-on or therapist).
	ErrConfigurationMissing = errors.New("store configuration missing")

	ErrHoursNotConfigured = errors.New("store hours not configured")
	ErrHoursMalformed     = errors.New("store hours malformed")

	ErrBackendUnavailable = errors.New("booking backend unavailable")

	// ErrNotificationFailed is returned together with a persisted booking.
	ErrNotificationFailed = errors.New("booking saved but confirmation could not be sent")
)
