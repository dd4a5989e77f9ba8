package postgres

import (
	"database/sql"
	"errors"

	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a postgres unique constraint failure
func IsUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

// IsForeignKeyViolation reports whether err references a missing parent row
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == pqForeignKeyViolation
}

// IsRetryable reports a transaction postgres aborted to break a lock cycle
// or a serialization conflict. Running it again may succeed.
func IsRetryable(err error) bool {
	code := pqCode(err)
	return code == pqDeadlockDetected || code == pqSerializationFailure
}

// ErrorKind is the kind repositories mark unexpected driver errors with
func ErrorKind(err error) error {
	if IsRetryable(err) {
		return ierr.ErrConflict
	}
	return ierr.ErrDatabase
}

// ConstraintName returns the violated constraint, empty for other errors
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
