package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs de violação de restrição que tratamos como conflito de
// horário: unique_violation e exclusion_violation.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsExclusionConflict detecta conflito vindo de constraint do Postgres,
// para ambientes que reforçam o check-and-insert com uma exclusion
// constraint no banco.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
