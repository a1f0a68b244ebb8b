package database_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/database"
)

func TestMigrateAppliesSchemaAndSeed(t *testing.T) {
	db, err := database.OpenLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(db, database.DriverSQLite))

	for _, table := range []string{
		"artists", "genres", "instruments", "users", "sessions", "bands", "band_instruments",
	} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n)
		require.NoError(t, err, "table %s should exist", table)
	}

	var instruments, defaults int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM instruments`).Scan(&instruments))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM instruments WHERE is_band_default = 1`).Scan(&defaults))
	require.Equal(t, 8, instruments)
	require.Equal(t, 4, defaults)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := database.OpenLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(db, database.DriverSQLite))
	require.NoError(t, database.Migrate(db, database.DriverSQLite))

	// The seed must not double up on the second run.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM instruments`).Scan(&n))
	require.Equal(t, 8, n)

	var versions int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	require.Equal(t, 2, versions)
}

func TestBandInstrumentPairIndexBackstop(t *testing.T) {
	db, err := database.OpenLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db, database.DriverSQLite))

	_, err = db.Exec(`INSERT INTO sessions (started_at, showcased_at) VALUES ('2026-01-05', '2026-03-20')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO bands (session_id) VALUES (1)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO band_instruments (band_id, instrument_id) VALUES (1, 1)`)
	require.NoError(t, err)

	// A second identical pair loses to the unique index even without the
	// rule layer in the way.
	_, err = db.Exec(`INSERT INTO band_instruments (band_id, instrument_id) VALUES (1, 1)`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "UNIQUE constraint failed")
}
