package notification

import "errors"

var ErrNoRecipient = errors.New("confirmation has no email recipient")
