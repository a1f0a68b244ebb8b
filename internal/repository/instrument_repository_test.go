package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/validation"
)

func TestInstrumentSeedDefaults(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	defaults, err := repos.Instruments.ListDefaults(ctx)
	require.NoError(t, err)
	require.Len(t, defaults, 4)

	names := make([]string, len(defaults))
	for i, in := range defaults {
		require.True(t, in.IsBandDefault)
		names[i] = in.Name
	}
	require.Equal(t, []string{"Vocals", "Guitar", "Bass", "Drums"}, names)

	_, total, err := repos.Instruments.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 8, total)
}

func TestInstrumentCreate(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	_, err := repos.Instruments.Create(ctx, repository.InstrumentAttrs{})
	requireViolation(t, err, validation.KindRequired, "Instrument.name cannot be null")

	in, err := repos.Instruments.Create(ctx, repository.InstrumentAttrs{Name: ptr("Cello")})
	require.NoError(t, err)
	require.False(t, in.IsBandDefault, "defaults to non-default")

	_, err = repos.Instruments.Create(ctx, repository.InstrumentAttrs{Name: ptr("Cello")})
	requireViolation(t, err, validation.KindConstraint, "unique constraint violation")
}

func TestInstrumentDefaultFlagChangesProvisioning(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	in, err := repos.Instruments.Create(ctx, repository.InstrumentAttrs{
		Name:          ptr("Harmonica"),
		IsBandDefault: ptr(true),
	})
	require.NoError(t, err)
	require.True(t, in.IsBandDefault)

	// New bands now get the extra slot.
	b := seedBand(t, repos)
	slots, err := repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, slots, 5)

	// Flipping the flag off shrinks the next cascade; existing slots stay.
	affected, err := repos.Instruments.Update(ctx, in.ID, repository.InstrumentAttrs{IsBandDefault: ptr(false)})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	b2 := seedBand(t, repos)
	slots2, err := repos.BandInstruments.ListByBand(ctx, b2.ID)
	require.NoError(t, err)
	require.Len(t, slots2, 4)

	slots, err = repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, slots, 5)
}

func TestInstrumentSearch(t *testing.T) {
	repos, _ := newRepos(t)

	rows, total, err := repos.Instruments.List(context.Background(), repository.ListOptions{Search: "gui"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Guitar", rows[0].Name)
}
