package catalog

import "errors"

var (
	ErrNameRequired      = errors.New("name is required")
	ErrNegativeRate      = errors.New("rate must not be negative")
	ErrTherapistExists   = errors.New("therapist already exists")
	ErrTherapistNotFound = errors.New("therapist not found")
	ErrServiceNotFound   = errors.New("service type not found")
	ErrInvalidHours      = errors.New("start must be before end")
)
