package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique index failure and returns
// the constraint (Postgres) or message (SQLite) naming the column.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	// SQLite: "UNIQUE constraint failed: companies.email"
	msg := err.Error()
	return msg, strings.Contains(msg, "UNIQUE constraint failed")
}

// mapUniqueViolation turns a unique index failure that slipped past the
// pre-insert checks (two concurrent registrations) into the domain error.
func mapUniqueViolation(err error) error {
	hint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(hint, "tax_id"):
		return ErrTaxIDTaken
	case strings.Contains(hint, "email"):
		return ErrEmailTaken
	default:
		return err
	}
}

// isPrimaryKeyViolation reports a unique failure on the companies primary
// key, which only happens when two creates computed the same next id.
func isPrimaryKeyViolation(err error) bool {
	hint, ok := uniqueViolation(err)
	if !ok {
		return false
	}
	return strings.Contains(hint, "pkey") || strings.Contains(hint, "companies.id")
}
