package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

var genreColumns = []string{"id", "name", "created_at", "updated_at"}

// GenreAttrs carries the writable attributes of a genre.
type GenreAttrs struct {
	Name *string
}

// GenreRepo provides CRUD access to the genres table.
type GenreRepo struct {
	db     *sql.DB
	runner validation.Runner
}

func NewGenreRepo(db *sql.DB, runner validation.Runner) *GenreRepo {
	return &GenreRepo{db: db, runner: runner}
}

func genreDest(g *model.Genre, col string) any {
	switch col {
	case "id":
		return &g.ID
	case "name":
		return &g.Name
	case "created_at":
		return &g.CreatedAt
	case "updated_at":
		return &g.UpdatedAt
	}
	return new(any)
}

func (r *GenreRepo) List(ctx context.Context, opts ListOptions) ([]model.Genre, int64, error) {
	cols, err := selectColumns(genreColumns, opts.Columns)
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genres`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM genres` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, opts.limit(), opts.offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Genre, 0, opts.limit())
	for rows.Next() {
		var g model.Genre
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = genreDest(&g, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*model.Genre, error) {
	return r.getWhere(ctx, "id", id)
}

func (r *GenreRepo) GetByField(ctx context.Context, field string, value any) (*model.Genre, error) {
	if !columnAllowed(genreColumns, field) {
		return nil, ErrUnknownColumn
	}
	return r.getWhere(ctx, field, value)
}

func (r *GenreRepo) GetByName(ctx context.Context, name string) (*model.Genre, error) {
	return r.getWhere(ctx, "name", name)
}

func (r *GenreRepo) getWhere(ctx context.Context, field string, value any) (*model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM genres WHERE `+field+` = ? LIMIT 1`,
		value).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GenreRepo) Create(ctx context.Context, attrs GenreAttrs) (*model.Genre, error) {
	rules := []validation.Rule{
		validation.Required{Entity: "Genre", Field: "name", Present: attrs.Name != nil},
	}
	if err := r.runner.Run(ctx, r.db, rules...); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, *attrs.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, constraintViolation()
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *GenreRepo) Update(ctx context.Context, id uint64, attrs GenreAttrs) (int64, error) {
	if attrs.Name == nil {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE genres SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		*attrs.Name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, constraintViolation()
		}
		return 0, err
	}
	return res.RowsAffected()
}

func (r *GenreRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
