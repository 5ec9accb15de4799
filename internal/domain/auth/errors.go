package auth

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrTaxIDAlreadyExists = errors.New("tax id already exists")
)
