package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationFromPgError(t *testing.T) {
	err := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err, "users_email_key") {
		t.Fatal("expected constraint match")
	}
	if IsUniqueViolation(err, "other_constraint") {
		t.Fatal("constraint name should narrow the match")
	}
}

func TestIsUniqueViolationFromSQLiteMessage(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: users.email")
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected sqlite unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	if !IsForeignKeyViolation(err) {
		t.Fatal("expected foreign key violation")
	}
	if IsForeignKeyViolation(errors.New("some other failure")) {
		t.Fatal("unexpected match")
	}
	if IsForeignKeyViolation(nil) {
		t.Fatal("nil error must not match")
	}
}
