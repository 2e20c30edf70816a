package calendar

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrUnknownResource  = errors.New("calendar resource does not match a therapist")
	ErrInvalidTimeRange = errors.New("event must end after it starts on the same day")
)
