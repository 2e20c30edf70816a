package store

import "errors"

var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreNameRequired = errors.New("store name is required")
	ErrSlugAlreadyExists = errors.New("store slug already taken")
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAdminExists       = errors.New("an admin with this email already exists")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
)
