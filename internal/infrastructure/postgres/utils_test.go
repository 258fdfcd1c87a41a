package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "tenders_notice_number_key",
	}
	notNull := &pgconn.PgError{Code: "23502"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert tender: %w", unique)),
		"wrapping must not hide the violation")
	assert.False(t, isUniqueViolation(notNull))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
