package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/database"
	"github.com/tbraun92/bandroom/internal/model"
	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/validation"
)

func ptr[T any](v T) *T { return &v }

// newRepos builds the full repository set over a fresh in-memory database
// with the schema and seed migrations applied.
func newRepos(t *testing.T) (*repository.Repos, *sql.DB) {
	t.Helper()
	db, err := database.OpenLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, database.DriverSQLite))
	return repository.NewRepos(db, validation.Runner{}), db
}

func seedSession(t *testing.T, repos *repository.Repos) *model.Session {
	t.Helper()
	s, err := repos.Sessions.Create(context.Background(), repository.SessionAttrs{
		StartedAt:   ptr(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		ShowcasedAt: ptr(time.Date(2026, 3, 20, 19, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func seedArtist(t *testing.T, repos *repository.Repos, name string) *model.Artist {
	t.Helper()
	a, err := repos.Artists.Create(context.Background(), repository.ArtistAttrs{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func seedGenre(t *testing.T, repos *repository.Repos, name string) *model.Genre {
	t.Helper()
	g, err := repos.Genres.Create(context.Background(), repository.GenreAttrs{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func seedUser(t *testing.T, repos *repository.Repos, name, email string) *model.User {
	t.Helper()
	u, err := repos.Users.Create(context.Background(), repository.UserAttrs{Name: &name, Email: &email})
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func seedBand(t *testing.T, repos *repository.Repos) *model.Band {
	t.Helper()
	session := seedSession(t, repos)
	b, err := repos.Bands.Create(context.Background(), repository.BandAttrs{SessionID: &session.ID})
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

// requireViolation asserts err is a single rule violation with the given
// kind and message.
func requireViolation(t *testing.T, err error, kind validation.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	require.Equal(t, kind, ve.Kind)
	require.Equal(t, message, ve.Message)
}
