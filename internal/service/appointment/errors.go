package appointment

import "errors"

var (
	ErrNotFound            = errors.New("booking not found")
	ErrCustomerRequired    = errors.New("customer name is required")
	ErrTherapistRequired   = errors.New("therapist is required")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrInvalidAddOnMinutes = errors.New("add-on minutes must be 0, 15, 30, 45 or 60")
	ErrUnknownServiceType  = errors.New("service type not offered by this store")
)
