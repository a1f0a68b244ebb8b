package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

var sessionColumns = []string{"id", "started_at", "showcased_at", "showcase_location", "created_at", "updated_at"}

// SessionAttrs carries the writable attributes of a session.
type SessionAttrs struct {
	StartedAt        *time.Time
	ShowcasedAt      *time.Time
	ShowcaseLocation *string
}

// SessionRepo provides CRUD access to the sessions table.
type SessionRepo struct {
	db     *sql.DB
	runner validation.Runner
}

func NewSessionRepo(db *sql.DB, runner validation.Runner) *SessionRepo {
	return &SessionRepo{db: db, runner: runner}
}

func sessionDest(s *model.Session, col string) any {
	switch col {
	case "id":
		return &s.ID
	case "started_at":
		return &s.StartedAt
	case "showcased_at":
		return &s.ShowcasedAt
	case "showcase_location":
		return &s.ShowcaseLocation
	case "created_at":
		return &s.CreatedAt
	case "updated_at":
		return &s.UpdatedAt
	}
	return new(any)
}

// List returns a page of sessions. Search matches the showcase location,
// the only name-like column on the table.
func (r *SessionRepo) List(ctx context.Context, opts ListOptions) ([]model.Session, int64, error) {
	cols, err := selectColumns(sessionColumns, opts.Columns)
	if err != nil {
		return nil, 0, err
	}

	where := ""
	args := []any{}
	if opts.Search != "" {
		where = " WHERE LOWER(showcase_location) LIKE ?"
		args = append(args, searchPattern(opts.Search))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM sessions` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, opts.limit(), opts.offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Session, 0, opts.limit())
	for rows.Next() {
		var s model.Session
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = sessionDest(&s, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	return r.getWhere(ctx, "id", id)
}

func (r *SessionRepo) GetByField(ctx context.Context, field string, value any) (*model.Session, error) {
	if !columnAllowed(sessionColumns, field) {
		return nil, ErrUnknownColumn
	}
	return r.getWhere(ctx, field, value)
}

func (r *SessionRepo) getWhere(ctx context.Context, field string, value any) (*model.Session, error) {
	var s model.Session
	err := r.db.QueryRowContext(ctx,
		`SELECT id, started_at, showcased_at, showcase_location, created_at, updated_at FROM sessions WHERE `+field+` = ? LIMIT 1`,
		value).Scan(&s.ID, &s.StartedAt, &s.ShowcasedAt, &s.ShowcaseLocation, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a session and returns the stored row. Both dates are
// mandatory; the showcase location may be booked later.
func (r *SessionRepo) Create(ctx context.Context, attrs SessionAttrs) (*model.Session, error) {
	rules := []validation.Rule{
		validation.Required{Entity: "Session", Field: "started_at", Present: attrs.StartedAt != nil},
		validation.Required{Entity: "Session", Field: "showcased_at", Present: attrs.ShowcasedAt != nil},
	}
	if err := r.runner.Run(ctx, r.db, rules...); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, showcased_at, showcase_location) VALUES (?, ?, ?)`,
		*attrs.StartedAt, *attrs.ShowcasedAt, attrs.ShowcaseLocation)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *SessionRepo) Update(ctx context.Context, id uint64, attrs SessionAttrs) (int64, error) {
	sets := []string{}
	args := []any{}
	if attrs.StartedAt != nil {
		sets = append(sets, "started_at = ?")
		args = append(args, *attrs.StartedAt)
	}
	if attrs.ShowcasedAt != nil {
		sets = append(sets, "showcased_at = ?")
		args = append(args, *attrs.ShowcasedAt)
	}
	if attrs.ShowcaseLocation != nil {
		sets = append(sets, "showcase_location = ?")
		args = append(args, *attrs.ShowcaseLocation)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the session. Bands referencing it are left in place; the
// validation layer only checks references at write time.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
