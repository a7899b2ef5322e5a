package db

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgErrorCode returns the SQLSTATE of a postgres error in err's chain, or "".
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return PgErrorCode(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return PgErrorCode(err) == pgerrcode.ForeignKeyViolation
}

// IsWriteConflict reports errors raised when a concurrent writer won the race:
// exclusion constraint violations, serialization failures and deadlocks.
func IsWriteConflict(err error) bool {
	switch PgErrorCode(err) {
	case pgerrcode.ExclusionViolation, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}
