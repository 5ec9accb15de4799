package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsPrimaryKeyViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres pkey", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "companies_pkey"}, true},
		{"wrapped postgres pkey", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "companies_pkey"}), true},
		{"postgres email", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_companies_email"}, false},
		{"postgres other code", &pgconn.PgError{Code: "23503", ConstraintName: "companies_pkey"}, false},
		{"sqlite id", errors.New("UNIQUE constraint failed: companies.id"), true},
		{"sqlite tax id", errors.New("UNIQUE constraint failed: companies.tax_id"), false},
		{"other", errors.New("connection reset"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isPrimaryKeyViolation(tc.err))
		})
	}
}

func TestMapUniqueViolation(t *testing.T) {
	assert.ErrorIs(t, mapUniqueViolation(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_companies_email"}), ErrEmailTaken)
	assert.ErrorIs(t, mapUniqueViolation(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_companies_tax_id"}), ErrTaxIDTaken)
	assert.ErrorIs(t, mapUniqueViolation(errors.New("UNIQUE constraint failed: companies.email")), ErrEmailTaken)

	boom := errors.New("boom")
	assert.Equal(t, boom, mapUniqueViolation(boom))
}
