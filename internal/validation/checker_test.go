package validation_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/database"
	"github.com/tbraun92/bandroom/internal/validation"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, database.DriverSQLite))
	return db
}

func insertSession(t *testing.T, db *sql.DB) uint64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO sessions (started_at, showcased_at) VALUES ('2026-01-05', '2026-03-20 19:00:00')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func insertBand(t *testing.T, db *sql.DB, sessionID uint64) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO bands (session_id) VALUES (?)`, sessionID)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func ptr[T any](v T) *T { return &v }

func TestExists(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	t.Run("nil id passes", func(t *testing.T) {
		ok, err := validation.Exists(ctx, db, "sessions", nil)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("existing row", func(t *testing.T) {
		id := insertSession(t, db)
		ok, err := validation.Exists(ctx, db, "sessions", &id)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("absent row", func(t *testing.T) {
		ok, err := validation.Exists(ctx, db, "sessions", ptr(uint64(999999)))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("seeded instrument", func(t *testing.T) {
		ok, err := validation.Exists(ctx, db, "instruments", ptr(uint64(1)))
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestIsDuplicate(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	sessionID := insertSession(t, db)
	bandID := insertBand(t, db, sessionID)
	_, err := db.Exec(`INSERT INTO band_instruments (band_id, instrument_id) VALUES (?, 1)`, bandID)
	require.NoError(t, err)

	t.Run("existing pair", func(t *testing.T) {
		dup, err := validation.IsDuplicate(ctx, db, "band_instruments", "band_id", bandID, "instrument_id", ptr(uint64(1)))
		require.NoError(t, err)
		require.True(t, dup)
	})

	t.Run("same instrument, other band", func(t *testing.T) {
		otherBand := insertBand(t, db, sessionID)
		dup, err := validation.IsDuplicate(ctx, db, "band_instruments", "band_id", otherBand, "instrument_id", ptr(uint64(1)))
		require.NoError(t, err)
		require.False(t, dup)
	})

	t.Run("nil second value passes", func(t *testing.T) {
		dup, err := validation.IsDuplicate(ctx, db, "band_instruments", "band_id", bandID, "instrument_id", nil)
		require.NoError(t, err)
		require.False(t, dup)
	})
}

func TestQuerierAcceptsTx(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	id := insertSession(t, db)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	ok, err := validation.Exists(ctx, tx, "sessions", &id)
	require.NoError(t, err)
	require.True(t, ok)
}
