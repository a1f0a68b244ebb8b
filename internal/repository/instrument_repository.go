package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

var instrumentColumns = []string{"id", "name", "is_band_default", "created_at", "updated_at"}

// InstrumentAttrs carries the writable attributes of an instrument.
type InstrumentAttrs struct {
	Name          *string
	IsBandDefault *bool
}

// InstrumentRepo provides CRUD access to the instruments table. Instruments
// with is_band_default set drive the provisioning cascade on band creation.
type InstrumentRepo struct {
	db     *sql.DB
	runner validation.Runner
}

func NewInstrumentRepo(db *sql.DB, runner validation.Runner) *InstrumentRepo {
	return &InstrumentRepo{db: db, runner: runner}
}

func instrumentDest(in *model.Instrument, col string) any {
	switch col {
	case "id":
		return &in.ID
	case "name":
		return &in.Name
	case "is_band_default":
		return &in.IsBandDefault
	case "created_at":
		return &in.CreatedAt
	case "updated_at":
		return &in.UpdatedAt
	}
	return new(any)
}

func (r *InstrumentRepo) List(ctx context.Context, opts ListOptions) ([]model.Instrument, int64, error) {
	cols, err := selectColumns(instrumentColumns, opts.Columns)
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM instruments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM instruments` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, opts.limit(), opts.offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Instrument, 0, opts.limit())
	for rows.Next() {
		var in model.Instrument
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = instrumentDest(&in, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListDefaults returns the instruments flagged is_band_default, in id order.
// Band creation provisions one BandInstrument per returned row.
func (r *InstrumentRepo) ListDefaults(ctx context.Context) ([]model.Instrument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, is_band_default, created_at, updated_at FROM instruments WHERE is_band_default = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Instrument
	for rows.Next() {
		var in model.Instrument
		if err := rows.Scan(&in.ID, &in.Name, &in.IsBandDefault, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *InstrumentRepo) GetByID(ctx context.Context, id uint64) (*model.Instrument, error) {
	return r.getWhere(ctx, "id", id)
}

func (r *InstrumentRepo) GetByField(ctx context.Context, field string, value any) (*model.Instrument, error) {
	if !columnAllowed(instrumentColumns, field) {
		return nil, ErrUnknownColumn
	}
	return r.getWhere(ctx, field, value)
}

func (r *InstrumentRepo) GetByName(ctx context.Context, name string) (*model.Instrument, error) {
	return r.getWhere(ctx, "name", name)
}

func (r *InstrumentRepo) getWhere(ctx context.Context, field string, value any) (*model.Instrument, error) {
	var in model.Instrument
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, is_band_default, created_at, updated_at FROM instruments WHERE `+field+` = ? LIMIT 1`,
		value).Scan(&in.ID, &in.Name, &in.IsBandDefault, &in.CreatedAt, &in.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *InstrumentRepo) Create(ctx context.Context, attrs InstrumentAttrs) (*model.Instrument, error) {
	rules := []validation.Rule{
		validation.Required{Entity: "Instrument", Field: "name", Present: attrs.Name != nil},
	}
	if err := r.runner.Run(ctx, r.db, rules...); err != nil {
		return nil, err
	}

	isDefault := false
	if attrs.IsBandDefault != nil {
		isDefault = *attrs.IsBandDefault
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO instruments (name, is_band_default) VALUES (?, ?)`,
		*attrs.Name, isDefault)
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

func (r *InstrumentRepo) Update(ctx context.Context, id uint64, attrs InstrumentAttrs) (int64, error) {
	sets := []string{}
	args := []any{}
	if attrs.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *attrs.Name)
	}
	if attrs.IsBandDefault != nil {
		sets = append(sets, "is_band_default = ?")
		args = append(args, *attrs.IsBandDefault)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE instruments SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, constraintViolation()
		}
		return 0, err
	}
	return res.RowsAffected()
}

func (r *InstrumentRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instruments WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
