package inquiry

import "errors"

var (
	ErrNotClient       = errors.New("only signed-in clients can request quotes")
	ErrNoSession       = errors.New("sign in as the company to read its quotes")
	ErrNotOwner        = errors.New("session does not own this company")
	ErrCompanyNotFound = errors.New("company not found")
	ErrEmptyMessage    = errors.New("message is required")
)
