package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

var userColumns = []string{"id", "uuid", "name", "email", "description", "created_at", "updated_at"}

// UserAttrs carries the writable attributes of a user. UUID is generated
// when absent on create.
type UserAttrs struct {
	UUID        *string
	Name        *string
	Email       *string
	Description *string
}

// UserRepo provides CRUD access to the users table.
type UserRepo struct {
	db     *sql.DB
	runner validation.Runner
}

func NewUserRepo(db *sql.DB, runner validation.Runner) *UserRepo {
	return &UserRepo{db: db, runner: runner}
}

func userDest(u *model.User, col string) any {
	switch col {
	case "id":
		return &u.ID
	case "uuid":
		return &u.UUID
	case "name":
		return &u.Name
	case "email":
		return &u.Email
	case "description":
		return &u.Description
	case "created_at":
		return &u.CreatedAt
	case "updated_at":
		return &u.UpdatedAt
	}
	return new(any)
}

func (r *UserRepo) List(ctx context.Context, opts ListOptions) ([]model.User, int64, error) {
	cols, err := selectColumns(userColumns, opts.Columns)
	if err != nil {
		return nil, 0, err
	}

	where := ""
	args := []any{}
	if opts.Search != "" {
		where = " WHERE LOWER(name) LIKE ?"
		args = append(args, searchPattern(opts.Search))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM users` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, opts.limit(), opts.offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.User, 0, opts.limit())
	for rows.Next() {
		var u model.User
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = userDest(&u, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getWhere(ctx, "id", id)
}

func (r *UserRepo) GetByField(ctx context.Context, field string, value any) (*model.User, error) {
	if !columnAllowed(userColumns, field) {
		return nil, ErrUnknownColumn
	}
	return r.getWhere(ctx, field, value)
}

// GetByUUID returns the user with the given public identifier, or nil.
func (r *UserRepo) GetByUUID(ctx context.Context, id string) (*model.User, error) {
	return r.getWhere(ctx, "uuid", id)
}

// GetByEmail returns the user with the given email, or nil. Emails are
// matched exactly as stored; normalization happens at the handler.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getWhere(ctx, "email", email)
}

func (r *UserRepo) getWhere(ctx context.Context, field string, value any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, uuid, name, email, description, created_at, updated_at FROM users WHERE `+field+` = ? LIMIT 1`,
		value).Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Description, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user, minting a UUID when the caller does not provide
// one, and returns the stored row.
func (r *UserRepo) Create(ctx context.Context, attrs UserAttrs) (*model.User, error) {
	rules := []validation.Rule{
		validation.Required{Entity: "User", Field: "name", Present: attrs.Name != nil},
		validation.Required{Entity: "User", Field: "email", Present: attrs.Email != nil},
	}
	if err := r.runner.Run(ctx, r.db, rules...); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if attrs.UUID != nil {
		id = *attrs.UUID
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (uuid, name, email, description) VALUES (?, ?, ?, ?)`,
		id, *attrs.Name, *attrs.Email, attrs.Description)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, constraintViolation()
		}
		return nil, err
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(rowID))
}

func (r *UserRepo) Update(ctx context.Context, id uint64, attrs UserAttrs) (int64, error) {
	sets := []string{}
	args := []any{}
	if attrs.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *attrs.Name)
	}
	if attrs.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *attrs.Email)
	}
	if attrs.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *attrs.Description)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, constraintViolation()
		}
		return 0, err
	}
	return res.RowsAffected()
}

func (r *UserRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
