package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/validation"
)

var bandColumns = []string{
	"id", "session_id", "artist_id", "genre_id", "name", "image_url",
	"day_of_week", "starts_at", "ends_at", "price", "duration_weeks",
	"created_at", "updated_at",
}

// BandAttrs carries the writable attributes of a band. Nil fields are
// absent: left unset on create, untouched on update.
type BandAttrs struct {
	SessionID     *uint64
	ArtistID      *uint64
	GenreID       *uint64
	Name          *string
	ImageURL      *string
	DayOfWeek     *string
	StartsAt      *string
	EndsAt        *string
	Price         *float64
	DurationWeeks *int32
}

// BandRepo provides CRUD access to the bands table. Creation validates the
// session/artist/genre references and provisions the default instrument
// slots, all inside one transaction: either the band and every default
// BandInstrument land together, or nothing does.
type BandRepo struct {
	db     *sql.DB
	runner validation.Runner
}

func NewBandRepo(db *sql.DB, runner validation.Runner) *BandRepo {
	return &BandRepo{db: db, runner: runner}
}

func bandDest(b *model.Band, col string) any {
	switch col {
	case "id":
		return &b.ID
	case "session_id":
		return &b.SessionID
	case "artist_id":
		return &b.ArtistID
	case "genre_id":
		return &b.GenreID
	case "name":
		return &b.Name
	case "image_url":
		return &b.ImageURL
	case "day_of_week":
		return &b.DayOfWeek
	case "starts_at":
		return &b.StartsAt
	case "ends_at":
		return &b.EndsAt
	case "price":
		return &b.Price
	case "duration_weeks":
		return &b.DurationWeeks
	case "created_at":
		return &b.CreatedAt
	case "updated_at":
		return &b.UpdatedAt
	}
	return new(any)
}

// rowScanner lets scanBand work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBand(row rowScanner) (*model.Band, error) {
	var b model.Band
	err := row.Scan(
		&b.ID, &b.SessionID, &b.ArtistID, &b.GenreID, &b.Name, &b.ImageURL,
		&b.DayOfWeek, &b.StartsAt, &b.EndsAt, &b.Price, &b.DurationWeeks,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const bandSelect = `SELECT id, session_id, artist_id, genre_id, name, image_url,
	day_of_week, starts_at, ends_at, price, duration_weeks, created_at, updated_at
	FROM bands`

// List returns a page of bands plus the total count matching the search.
func (r *BandRepo) List(ctx context.Context, opts ListOptions) ([]model.Band, int64, error) {
	cols, err := selectColumns(bandColumns, opts.Columns)
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bands`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM bands` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, opts.limit(), opts.offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Band, 0, opts.limit())
	for rows.Next() {
		var b model.Band
		dests := make([]any, len(cols))
		for i, c := range cols {
			dests[i] = bandDest(&b, c)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns the band with the given id, or nil when absent.
func (r *BandRepo) GetByID(ctx context.Context, id uint64) (*model.Band, error) {
	b, err := scanBand(r.db.QueryRowContext(ctx, bandSelect+` WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// GetByField returns the first band where field = value, or nil.
func (r *BandRepo) GetByField(ctx context.Context, field string, value any) (*model.Band, error) {
	if !columnAllowed(bandColumns, field) {
		return nil, ErrUnknownColumn
	}
	b, err := scanBand(r.db.QueryRowContext(ctx, bandSelect+` WHERE `+field+` = ? LIMIT 1`, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// GetByName is a shorthand for GetByField on the name column.
func (r *BandRepo) GetByName(ctx context.Context, name string) (*model.Band, error) {
	return r.GetByField(ctx, "name", name)
}

// Create validates the references, inserts the band and provisions one
// BandInstrument per default-flagged instrument. The whole sequence runs in
// a single transaction and rolls back together on any failure.
func (r *BandRepo) Create(ctx context.Context, attrs BandAttrs) (*model.Band, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rules := []validation.Rule{
		validation.Required{Entity: "Band", Field: "session_id", Present: attrs.SessionID != nil},
		validation.MustExist{Field: "session_id", Table: "sessions", Value: attrs.SessionID},
		validation.MustExist{Field: "artist_id", Table: "artists", Value: attrs.ArtistID},
		validation.MustExist{Field: "genre_id", Table: "genres", Value: attrs.GenreID},
	}
	if err := r.runner.Run(ctx, tx, rules...); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bands (session_id, artist_id, genre_id, name, image_url,
			day_of_week, starts_at, ends_at, price, duration_weeks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attrs.SessionID, attrs.ArtistID, attrs.GenreID, attrs.Name, attrs.ImageURL,
		attrs.DayOfWeek, attrs.StartsAt, attrs.EndsAt, attrs.Price, attrs.DurationWeeks)
	if err != nil {
		return nil, err
	}
	bandID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := r.provisionDefaults(ctx, tx, uint64(bandID)); err != nil {
		return nil, err
	}

	band, err := scanBand(tx.QueryRowContext(ctx, bandSelect+` WHERE id = ? LIMIT 1`, bandID))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return band, nil
}

// provisionDefaults creates one band_instruments row per instrument flagged
// is_band_default, inside the caller's transaction.
func (r *BandRepo) provisionDefaults(ctx context.Context, tx *sql.Tx, bandID uint64) error {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM instruments WHERE is_band_default = 1 ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var instrumentIDs []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		instrumentIDs = append(instrumentIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(instrumentIDs) == 0 {
		return nil
	}

	query := `INSERT INTO band_instruments (band_id, instrument_id) VALUES `
	args := make([]any, 0, len(instrumentIDs)*2)
	for i, instrumentID := range instrumentIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, bandID, instrumentID)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// Update applies the present attributes, re-running the reference rules for
// any foreign key being changed. Returns the affected row count.
func (r *BandRepo) Update(ctx context.Context, id uint64, attrs BandAttrs) (int64, error) {
	sets := []string{}
	args := []any{}
	rules := []validation.Rule{}

	if attrs.SessionID != nil {
		rules = append(rules, validation.MustExist{Field: "session_id", Table: "sessions", Value: attrs.SessionID})
		sets = append(sets, "session_id = ?")
		args = append(args, *attrs.SessionID)
	}
	if attrs.ArtistID != nil {
		rules = append(rules, validation.MustExist{Field: "artist_id", Table: "artists", Value: attrs.ArtistID})
		sets = append(sets, "artist_id = ?")
		args = append(args, *attrs.ArtistID)
	}
	if attrs.GenreID != nil {
		rules = append(rules, validation.MustExist{Field: "genre_id", Table: "genres", Value: attrs.GenreID})
		sets = append(sets, "genre_id = ?")
		args = append(args, *attrs.GenreID)
	}
	if attrs.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *attrs.Name)
	}
	if attrs.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *attrs.ImageURL)
	}
	if attrs.DayOfWeek != nil {
		sets = append(sets, "day_of_week = ?")
		args = append(args, *attrs.DayOfWeek)
	}
	if attrs.StartsAt != nil {
		sets = append(sets, "starts_at = ?")
		args = append(args, *attrs.StartsAt)
	}
	if attrs.EndsAt != nil {
		sets = append(sets, "ends_at = ?")
		args = append(args, *attrs.EndsAt)
	}
	if attrs.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *attrs.Price)
	}
	if attrs.DurationWeeks != nil {
		sets = append(sets, "duration_weeks = ?")
		args = append(args, *attrs.DurationWeeks)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := r.runner.Run(ctx, tx, rules...); err != nil {
		return 0, err
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := tx.ExecContext(ctx, `UPDATE bands SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
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

// Delete removes the band. Its band_instruments rows are left behind; the
// layer does not enforce references on delete.
func (r *BandRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bands WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
