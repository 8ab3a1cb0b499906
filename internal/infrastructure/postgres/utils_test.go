package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_invoices_sequence_number"}
	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("upsert invoice: %w", pgErr)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"})) // foreign key
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))

	s := nullable("valor")
	assert.NotNil(t, s)
	assert.Equal(t, "valor", *s)
}
