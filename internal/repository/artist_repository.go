package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

// artistColumns is the full selectable column set for artists.
var artistColumns = []string{"id", "name", "created_at", "updated_at"}

// ArtistAttrs carries the writable attributes of an artist. Nil fields are
// absent: left unset on create, untouched on update.
type ArtistAttrs struct {
	Name *string
}

// ArtistRepo provides CRUD access to the artists table.
type ArtistRepo struct {
	db     *sql.DB
	runner validation.Runner
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB, runner validation.Runner) *ArtistRepo {
	return &ArtistRepo{db: db, runner: runner}
}

// List returns a page of artists plus the total count matching the search.
func (r *ArtistRepo) List(ctx context.Context, opts ListOptions) ([]model.Artist, int64, error) {
	cols, err := selectColumns(artistColumns, opts.Columns)
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM artists` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, opts.limit(), opts.offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Artist, 0, opts.limit())
	for rows.Next() {
		var a model.Artist
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = artistDest(&a, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// artistDest maps a column name to its scan destination. Columns outside
// the set are rejected by selectColumns before scanning.
func artistDest(a *model.Artist, col string) any {
	switch col {
	case "id":
		return &a.ID
	case "name":
		return &a.Name
	case "created_at":
		return &a.CreatedAt
	case "updated_at":
		return &a.UpdatedAt
	}
	return new(any)
}

// GetByID returns the artist with the given id, or nil when absent.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return r.getWhere(ctx, "id", id)
}

// GetByField returns the first artist where field = value, or nil. The field
// must be one of the artist columns.
func (r *ArtistRepo) GetByField(ctx context.Context, field string, value any) (*model.Artist, error) {
	if !columnAllowed(artistColumns, field) {
		return nil, ErrUnknownColumn
	}
	return r.getWhere(ctx, field, value)
}

// GetByName is a shorthand for GetByField on the name column.
func (r *ArtistRepo) GetByName(ctx context.Context, name string) (*model.Artist, error) {
	return r.getWhere(ctx, "name", name)
}

func (r *ArtistRepo) getWhere(ctx context.Context, field string, value any) (*model.Artist, error) {
	var a model.Artist
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM artists WHERE `+field+` = ? LIMIT 1`,
		value).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an artist and returns the stored row.
func (r *ArtistRepo) Create(ctx context.Context, attrs ArtistAttrs) (*model.Artist, error) {
	rules := []validation.Rule{
		validation.Required{Entity: "Artist", Field: "name", Present: attrs.Name != nil},
	}
	if err := r.runner.Run(ctx, r.db, rules...); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO artists (name) VALUES (?)`, *attrs.Name)
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

// Update applies the present attributes to the artist and returns the
// affected row count. An empty attribute set is a no-op.
func (r *ArtistRepo) Update(ctx context.Context, id uint64, attrs ArtistAttrs) (int64, error) {
	if attrs.Name == nil {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE artists SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		*attrs.Name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, constraintViolation()
		}
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the artist. Bands referencing it keep their artist_id:
// deletes never re-validate children.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
