package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/validation"
)

func TestArtistCreateRequiresName(t *testing.T) {
	repos, _ := newRepos(t)

	a, err := repos.Artists.Create(context.Background(), repository.ArtistAttrs{})
	require.Nil(t, a)
	requireViolation(t, err, validation.KindRequired, "Artist.name cannot be null")
}

func TestArtistCreateAndGet(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	created := seedArtist(t, repos, "Nina Simone")
	require.NotZero(t, created.ID)
	require.Equal(t, "Nina Simone", created.Name)
	require.False(t, created.CreatedAt.IsZero())

	got, err := repos.Artists.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, created.ID, got.ID)

	byName, err := repos.Artists.GetByName(ctx, "Nina Simone")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, created.ID, byName.ID)
}

func TestArtistGetAbsentReturnsNil(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	// Absence is not an error, and stays that way on repeat lookups.
	for i := 0; i < 2; i++ {
		got, err := repos.Artists.GetByID(ctx, 999999)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}

func TestArtistGetByFieldRejectsUnknownColumn(t *testing.T) {
	repos, _ := newRepos(t)

	_, err := repos.Artists.GetByField(context.Background(), "nickname", "x")
	require.ErrorIs(t, err, repository.ErrUnknownColumn)
}

func TestArtistDuplicateNameIsConstraintViolation(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	seedArtist(t, repos, "Herbie Hancock")
	_, err := repos.Artists.Create(ctx, repository.ArtistAttrs{Name: ptr("Herbie Hancock")})
	requireViolation(t, err, validation.KindConstraint, "unique constraint violation")
}

func TestArtistUpdate(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	a := seedArtist(t, repos, "Miles")

	affected, err := repos.Artists.Update(ctx, a.ID, repository.ArtistAttrs{Name: ptr("Miles Davis")})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	got, err := repos.Artists.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Miles Davis", got.Name)

	// No attributes is a no-op, not an error.
	affected, err = repos.Artists.Update(ctx, a.ID, repository.ArtistAttrs{})
	require.NoError(t, err)
	require.Zero(t, affected)

	affected, err = repos.Artists.Update(ctx, 999999, repository.ArtistAttrs{Name: ptr("x")})
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestArtistDelete(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	a := seedArtist(t, repos, "Ephemeral")

	affected, err := repos.Artists.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	got, err := repos.Artists.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	affected, err = repos.Artists.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestArtistList(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha Band", "Beta Crew", "Alphaville"} {
		seedArtist(t, repos, name)
	}

	rows, total, err := repos.Artists.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 3)

	rows, total, err = repos.Artists.List(ctx, repository.ListOptions{Search: "alpha"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	rows, total, err = repos.Artists.List(ctx, repository.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 1)

	rows, _, err = repos.Artists.List(ctx, repository.ListOptions{Columns: []string{"id", "name"}})
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.True(t, rows[0].CreatedAt.IsZero())

	_, _, err = repos.Artists.List(ctx, repository.ListOptions{Columns: []string{"password"}})
	require.ErrorIs(t, err, repository.ErrUnknownColumn)
}
