// Package repository implements data access for the scheduling domain. Each
// entity has its own repo over an injected *sql.DB; writes run the
// validation rules declared for the entity before touching the table, inside
// the same transaction as the write where a check guards it.
package repository

import (
	"errors"
	"strings"

	"github.com/tbraun92/bandroom/internal/validation"
)

// ErrUnknownColumn is returned when a caller requests a column outside the
// entity's column set, either via ListOptions.Columns or GetByField.
var ErrUnknownColumn = errors.New("unknown column")

// isDuplicateKey reports whether err is a single-column unique-constraint
// violation from the store. MySQL reports error 1062 ("Duplicate entry"),
// go-sqlite3 reports "UNIQUE constraint failed".
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// constraintViolation is the generic validation error surfaced when the
// store rejects a duplicate name/uuid/email. No field-specific message: the
// constraint lives in the schema, not in the rule declarations.
func constraintViolation() *validation.Error {
	return &validation.Error{
		Kind:    validation.KindConstraint,
		Message: "unique constraint violation",
	}
}
