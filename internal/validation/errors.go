// Package validation implements the referential-integrity and uniqueness
// checks that run between the repositories and the database. Rules are
// declared per entity field and evaluated by a Runner immediately before a
// write; the first failing rule aborts the write unless the Runner is
// configured to accumulate. Rule failures are *Error values carrying a
// Kind so that callers can distinguish bad input from infrastructure
// failures, which are returned as plain errors and never wrapped.
package validation

import (
	"errors"
	"strings"
)

// Kind classifies a validation failure.
type Kind int

const (
	// KindRequired means a mandatory field was null or absent.
	KindRequired Kind = iota
	// KindReference means a provided foreign key did not resolve to a row.
	KindReference
	// KindDuplicate means a compound-unique pair already exists.
	KindDuplicate
	// KindConstraint means the store rejected a single-column unique
	// constraint (duplicate name, email, uuid).
	KindConstraint
)

// Error is a single rule violation.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errors is returned by an accumulating Runner when more than zero rules fail.
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// IsValidation reports whether err is a rule violation (single or
// accumulated) as opposed to an infrastructure failure.
func IsValidation(err error) bool {
	var ve *Error
	if errors.As(err, &ve) {
		return true
	}
	var ves Errors
	return errors.As(err, &ves)
}
