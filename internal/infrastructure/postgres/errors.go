package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/askstack/askstack-api/internal/domain/repository"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = repository.ErrNotFound

const uniqueViolationCode = "23505"

// uniqueViolation reports whether err is a duplicate-key failure and, if
// so, which constraint was violated. Uniqueness is enforced at write
// time; a conflicting insert fails here rather than overwriting.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}
