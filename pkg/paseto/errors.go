package pasetotoken

import (
	"errors"
	"fmt"
)

var ErrMissingKey = errors.New("paseto key not configured")

// ErrConfig reports a bad manager or key configuration.
type ErrConfig struct {
	Msg string
	Err error
}

func (e ErrConfig) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("paseto: %s: %v", e.Msg, e.Err)
	}
	return "paseto: " + e.Msg
}

func (e ErrConfig) Unwrap() error { return e.Err }

// ErrInvalidToken wraps every parse or claim failure of Verify.
type ErrInvalidToken struct{ Err error }

func (e ErrInvalidToken) Error() string { return fmt.Sprintf("invalid token: %v", e.Err) }
func (e ErrInvalidToken) Unwrap() error { return e.Err }
