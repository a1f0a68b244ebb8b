package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/validation"
)

func TestUserCreateRequiredFields(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	_, err := repos.Users.Create(ctx, repository.UserAttrs{Email: ptr("a@example.com")})
	requireViolation(t, err, validation.KindRequired, "User.name cannot be null")

	_, err = repos.Users.Create(ctx, repository.UserAttrs{Name: ptr("Ana")})
	requireViolation(t, err, validation.KindRequired, "User.email cannot be null")
}

func TestUserCreateMintsUUID(t *testing.T) {
	repos, _ := newRepos(t)

	u := seedUser(t, repos, "Ana", "ana@example.com")
	require.NotEmpty(t, u.UUID)
	_, err := uuid.Parse(u.UUID)
	require.NoError(t, err)
}

func TestUserCreateKeepsProvidedUUID(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	id := uuid.NewString()
	u, err := repos.Users.Create(ctx, repository.UserAttrs{
		UUID:  &id,
		Name:  ptr("Ben"),
		Email: ptr("ben@example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, id, u.UUID)

	got, err := repos.Users.GetByUUID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.ID)
}

func TestUserDuplicateEmail(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	seedUser(t, repos, "First", "taken@example.com")
	_, err := repos.Users.Create(ctx, repository.UserAttrs{Name: ptr("Second"), Email: ptr("taken@example.com")})
	requireViolation(t, err, validation.KindConstraint, "unique constraint violation")
}

func TestUserGetByEmailAndUpdate(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	u := seedUser(t, repos, "Cleo", "cleo@example.com")

	got, err := repos.Users.GetByEmail(ctx, "cleo@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.ID)

	absent, err := repos.Users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, absent)

	affected, err := repos.Users.Update(ctx, u.ID, repository.UserAttrs{Description: ptr("Plays bass and sings")})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	got, err = repos.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Plays bass and sings", *got.Description)
}

func TestUserListAndDelete(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	seedUser(t, repos, "Dev One", "one@example.com")
	seedUser(t, repos, "Dev Two", "two@example.com")

	rows, total, err := repos.Users.List(ctx, repository.ListOptions{Search: "dev"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	affected, err := repos.Users.Delete(ctx, rows[0].ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	_, total, err = repos.Users.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}
