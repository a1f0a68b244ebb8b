package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

var bandInstrumentColumns = []string{"id", "band_id", "instrument_id", "user_id", "created_at", "updated_at"}

// BandInstrumentAttrs carries the writable attributes of an assignment.
type BandInstrumentAttrs struct {
	BandID       *uint64
	InstrumentID *uint64
	UserID       *uint64
}

// BandInstrumentRepo provides CRUD access to the band_instruments table.
// The (band_id, instrument_id) pair is unique: the uniqueness rule runs in
// the same transaction as the insert, and the table's unique index backstops
// concurrent writers that pass the check simultaneously.
type BandInstrumentRepo struct {
	db     *sql.DB
	runner validation.Runner
}

func NewBandInstrumentRepo(db *sql.DB, runner validation.Runner) *BandInstrumentRepo {
	return &BandInstrumentRepo{db: db, runner: runner}
}

const bandInstrumentSelect = `SELECT id, band_id, instrument_id, user_id, created_at, updated_at FROM band_instruments`

func scanBandInstrument(row rowScanner) (*model.BandInstrument, error) {
	var bi model.BandInstrument
	err := row.Scan(&bi.ID, &bi.BandID, &bi.InstrumentID, &bi.UserID, &bi.CreatedAt, &bi.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &bi, nil
}

// List returns a page of assignments. The table has no name-like column, so
// Search is rejected rather than silently ignored.
func (r *BandInstrumentRepo) List(ctx context.Context, opts ListOptions) ([]model.BandInstrument, int64, error) {
	if opts.Search != "" {
		return nil, 0, fmt.Errorf("band_instruments has no searchable column")
	}
	cols, err := selectColumns(bandInstrumentColumns, opts.Columns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM band_instruments`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM band_instruments ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, opts.limit(), opts.offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.BandInstrument, 0, opts.limit())
	for rows.Next() {
		var bi model.BandInstrument
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = bandInstrumentDest(&bi, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, bi)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func bandInstrumentDest(bi *model.BandInstrument, col string) any {
	switch col {
	case "id":
		return &bi.ID
	case "band_id":
		return &bi.BandID
	case "instrument_id":
		return &bi.InstrumentID
	case "user_id":
		return &bi.UserID
	case "created_at":
		return &bi.CreatedAt
	case "updated_at":
		return &bi.UpdatedAt
	}
	return new(any)
}

// ListByBand returns every assignment of one band in id order.
func (r *BandInstrumentRepo) ListByBand(ctx context.Context, bandID uint64) ([]model.BandInstrument, error) {
	rows, err := r.db.QueryContext(ctx, bandInstrumentSelect+` WHERE band_id = ? ORDER BY id`, bandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BandInstrument
	for rows.Next() {
		var bi model.BandInstrument
		if err := rows.Scan(&bi.ID, &bi.BandID, &bi.InstrumentID, &bi.UserID, &bi.CreatedAt, &bi.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, bi)
	}
	return out, rows.Err()
}

// GetByID returns the assignment with the given id, or nil when absent.
func (r *BandInstrumentRepo) GetByID(ctx context.Context, id uint64) (*model.BandInstrument, error) {
	bi, err := scanBandInstrument(r.db.QueryRowContext(ctx, bandInstrumentSelect+` WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return bi, err
}

// GetByField returns the first assignment where field = value, or nil.
func (r *BandInstrumentRepo) GetByField(ctx context.Context, field string, value any) (*model.BandInstrument, error) {
	if !columnAllowed(bandInstrumentColumns, field) {
		return nil, ErrUnknownColumn
	}
	bi, err := scanBandInstrument(r.db.QueryRowContext(ctx, bandInstrumentSelect+` WHERE `+field+` = ? LIMIT 1`, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return bi, err
}

// Create validates presence, references and pair uniqueness, then inserts.
// Check and insert share one transaction; a duplicate slipping past the
// check loses to the unique index and surfaces as the same validation error.
func (r *BandInstrumentRepo) Create(ctx context.Context, attrs BandInstrumentAttrs) (*model.BandInstrument, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rules := []validation.Rule{
		validation.Required{Entity: "BandInstrument", Field: "band_id", Present: attrs.BandID != nil},
		validation.Required{Entity: "BandInstrument", Field: "instrument_id", Present: attrs.InstrumentID != nil},
		validation.MustExist{Field: "band_id", Table: "bands", Value: attrs.BandID},
		validation.MustExist{Field: "instrument_id", Table: "instruments", Value: attrs.InstrumentID},
		validation.MustExist{Field: "user_id", Table: "users", Value: attrs.UserID},
		validation.MustBeUniqueWith{
			Table:      "band_instruments",
			Field:      "instrument_id",
			Value:      attrs.InstrumentID,
			OtherField: "band_id",
			OtherValue: attrs.BandID,
		},
	}
	if err := r.runner.Run(ctx, tx, rules...); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO band_instruments (band_id, instrument_id, user_id) VALUES (?, ?, ?)`,
		*attrs.BandID, *attrs.InstrumentID, attrs.UserID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, &validation.Error{
				Kind:    validation.KindDuplicate,
				Field:   "instrument_id",
				Message: "instrument_id already exists for this band_id",
			}
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	bi, err := scanBandInstrument(tx.QueryRowContext(ctx, bandInstrumentSelect+` WHERE id = ? LIMIT 1`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return bi, nil
}

// Update applies the present attributes, re-running the rules for changed
// foreign keys. When only one side of the unique pair changes, the other
// side comes from the stored row so the pair is always checked whole.
func (r *BandInstrumentRepo) Update(ctx context.Context, id uint64, attrs BandInstrumentAttrs) (int64, error) {
	if attrs.BandID == nil && attrs.InstrumentID == nil && attrs.UserID == nil {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	current, err := scanBandInstrument(tx.QueryRowContext(ctx, bandInstrumentSelect+` WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	// Merge the candidate pair from attrs and the stored row.
	bandID := current.BandID
	if attrs.BandID != nil {
		bandID = *attrs.BandID
	}
	instrumentID := current.InstrumentID
	if attrs.InstrumentID != nil {
		instrumentID = *attrs.InstrumentID
	}

	rules := []validation.Rule{}
	sets := []string{}
	args := []any{}
	if attrs.BandID != nil {
		rules = append(rules, validation.MustExist{Field: "band_id", Table: "bands", Value: attrs.BandID})
		sets = append(sets, "band_id = ?")
		args = append(args, *attrs.BandID)
	}
	if attrs.InstrumentID != nil {
		rules = append(rules, validation.MustExist{Field: "instrument_id", Table: "instruments", Value: attrs.InstrumentID})
		sets = append(sets, "instrument_id = ?")
		args = append(args, *attrs.InstrumentID)
	}
	if attrs.UserID != nil {
		rules = append(rules, validation.MustExist{Field: "user_id", Table: "users", Value: attrs.UserID})
		sets = append(sets, "user_id = ?")
		args = append(args, *attrs.UserID)
	}
	if bandID != current.BandID || instrumentID != current.InstrumentID {
		rules = append(rules, validation.MustBeUniqueWith{
			Table:      "band_instruments",
			Field:      "instrument_id",
			Value:      &instrumentID,
			OtherField: "band_id",
			OtherValue: &bandID,
		})
	}
	if err := r.runner.Run(ctx, tx, rules...); err != nil {
		return 0, err
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := tx.ExecContext(ctx,
		`UPDATE band_instruments SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, &validation.Error{
				Kind:    validation.KindDuplicate,
				Field:   "instrument_id",
				Message: "instrument_id already exists for this band_id",
			}
		}
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return affected, nil
}

// Delete removes the assignment.
func (r *BandInstrumentRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM band_instruments WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
