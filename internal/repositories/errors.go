package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicateNumber reports a unique-constraint violation on a generated
// order or purchase number. Services regenerate the number and retry.
var ErrDuplicateNumber = errors.New("duplicate document number")

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
