package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoFile          = errors.New("no file provided")
)
