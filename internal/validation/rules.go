package validation

import (
	"context"
	"errors"
	"fmt"
)

// Rule is a single per-field check. Check returns a *Error on a rule
// violation and a plain error on a query/connectivity failure.
type Rule interface {
	Check(ctx context.Context, q Querier) error
}

// Required fails when a mandatory field is absent. Present is computed by
// the caller from the attribute set, keeping the rule type-agnostic.
type Required struct {
	Entity  string
	Field   string
	Present bool
}

func (r Required) Check(ctx context.Context, q Querier) error {
	if !r.Present {
		return &Error{
			Kind:    KindRequired,
			Field:   r.Field,
			Message: fmt.Sprintf("%s.%s cannot be null", r.Entity, r.Field),
		}
	}
	return nil
}

// MustExist fails when a provided foreign key does not resolve to a row in
// Table. A nil Value passes (optional reference left unset).
type MustExist struct {
	Field string
	Table string
	Value *uint64
}

func (m MustExist) Check(ctx context.Context, q Querier) error {
	ok, err := Exists(ctx, q, m.Table, m.Value)
	if err != nil {
		return err
	}
	if !ok {
		return &Error{
			Kind:    KindReference,
			Field:   m.Field,
			Message: m.Field + " not found",
		}
	}
	return nil
}

// MustBeUniqueWith fails when (OtherField=OtherValue, Field=Value) already
// matches a row in Table. Either side being nil passes; presence is the
// Required rule's job.
type MustBeUniqueWith struct {
	Table      string
	Field      string
	Value      *uint64
	OtherField string
	OtherValue *uint64
}

func (m MustBeUniqueWith) Check(ctx context.Context, q Querier) error {
	if m.Value == nil || m.OtherValue == nil {
		return nil
	}
	dup, err := IsDuplicate(ctx, q, m.Table, m.OtherField, *m.OtherValue, m.Field, m.Value)
	if err != nil {
		return err
	}
	if dup {
		return &Error{
			Kind:    KindDuplicate,
			Field:   m.Field,
			Message: fmt.Sprintf("%s already exists for this %s", m.Field, m.OtherField),
		}
	}
	return nil
}

// Runner evaluates rules in declaration order. The zero value short-circuits
// on the first violation, matching the one-error-per-attempt behaviour the
// API has always had. With Accumulate set, every rule runs and all
// violations come back together as Errors. Infrastructure errors abort
// immediately in both modes.
type Runner struct {
	Accumulate bool
}

// Run applies the rules against q and returns nil when every rule passes.
func (r Runner) Run(ctx context.Context, q Querier, rules ...Rule) error {
	if !r.Accumulate {
		for _, rule := range rules {
			if err := rule.Check(ctx, q); err != nil {
				return err
			}
		}
		return nil
	}

	var violations Errors
	for _, rule := range rules {
		err := rule.Check(ctx, q)
		if err == nil {
			continue
		}
		var ve *Error
		if errors.As(err, &ve) {
			violations = append(violations, ve)
			continue
		}
		return err
	}
	if len(violations) > 0 {
		return violations
	}
	return nil
}
