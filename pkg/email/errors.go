package email

import "fmt"

// ErrDisabled is returned by Send when email delivery is switched off.
// Callers treat it as success.
type ErrDisabled struct{}

func (ErrDisabled) Error() string { return "email delivery disabled" }

type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "invalid email: " + e.Reason }

// ErrSend wraps a transport failure from the SMTP relay.
type ErrSend struct {
	Host       string
	Recipients int
	Err        error
}

func (e ErrSend) Error() string {
	return fmt.Sprintf("smtp %s: sending to %d recipient(s): %v", e.Host, e.Recipients, e.Err)
}

func (e ErrSend) Unwrap() error { return e.Err }
