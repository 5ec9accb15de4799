package repository

import "errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrTaxIDTaken = errors.New("tax id already registered")
	ErrCorrupt    = errors.New("data file is corrupt")
)
