package repository

import (
	"fmt"
	"strings"
)

// defaultListLimit caps List results when the caller does not ask for a
// specific page size.
const defaultListLimit = 50

// ListOptions controls pagination, search and column subsetting for the
// List operation of every repo.
type ListOptions struct {
	Limit   int      // page size, defaults to defaultListLimit
	Offset  int      // rows to skip
	Search  string   // case-insensitive substring match on the name-like column
	Columns []string // subset of columns to return; empty selects all
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return defaultListLimit
	}
	return o.Limit
}

func (o ListOptions) offset() int {
	if o.Offset < 0 {
		return 0
	}
	return o.Offset
}

// selectColumns validates requested against the repo's column set and
// returns the columns to select. An empty request selects everything.
func selectColumns(all, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return all, nil
	}
	allowed := make(map[string]bool, len(all))
	for _, c := range all {
		allowed[c] = true
	}
	out := make([]string, 0, len(requested))
	for _, c := range requested {
		if !allowed[c] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
		out = append(out, c)
	}
	return out, nil
}

// searchPattern builds the LIKE argument for a substring match.
func searchPattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

// columnAllowed reports whether field is part of the repo's column set.
func columnAllowed(all []string, field string) bool {
	for _, c := range all {
		if c == field {
			return true
		}
	}
	return false
}
