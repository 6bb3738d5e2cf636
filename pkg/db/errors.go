package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether the error is a unique constraint violation.
// When constraintName is provided, the match is narrowed to that constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	if code, constraint, ok := pgErrorFields(err); ok {
		if code != pgUniqueViolation {
			return false
		}
		if constraintName != "" {
			return constraint == constraintName
		}
		return true
	}
	if err == nil {
		return false
	}
	// sqlite has no coded errors; fall back to message sniffing.
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether the error is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	if code, _, ok := pgErrorFields(err); ok {
		return code == pgForeignKeyViolation
	}
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func pgErrorFields(err error) (code, constraint string, ok bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}
