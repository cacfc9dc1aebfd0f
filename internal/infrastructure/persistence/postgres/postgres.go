// Package postgres implements the repository ports on pgx. Uniqueness is
// enforced twice: the use-cases run a check-then-act lookup, and the schema
// carries unique constraints that catch the race between two concurrent
// creates. A constraint violation is translated here into the same conflict
// error the lookup path produces.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraint
}
