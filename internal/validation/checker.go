package validation

import (
	"context"
	"database/sql"
	"errors"
)

// Querier is the slice of database/sql needed by the checkers. Both *sql.DB
// and *sql.Tx satisfy it, so rules can run inside the transaction that
// performs the guarded write.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Exists reports whether a row with primary key id exists in table. A nil id
// passes: absence of an optional reference is not a failure. Table names are
// package-internal constants, never caller input.
func Exists(ctx context.Context, q Querier, table string, id *uint64) (bool, error) {
	if id == nil {
		return true, nil
	}
	var found uint64
	err := q.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE id = ? LIMIT 1`, *id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsDuplicate reports whether any row in table matches both key/value pairs
// at once. A nil valueB means no duplicate is possible and returns false.
func IsDuplicate(ctx context.Context, q Querier, table, keyA string, valueA uint64, keyB string, valueB *uint64) (bool, error) {
	if valueB == nil {
		return false, nil
	}
	var found uint64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM `+table+` WHERE `+keyA+` = ? AND `+keyB+` = ? LIMIT 1`,
		valueA, *valueB).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
