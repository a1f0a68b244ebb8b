package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/validation"
)

// nonDefaultInstrumentID finds a seeded instrument that band creation does
// not auto-provision, so the pair is free for explicit assignment.
func nonDefaultInstrumentID(t *testing.T, repos *repository.Repos) uint64 {
	t.Helper()
	in, err := repos.Instruments.GetByName(context.Background(), "Keyboard")
	require.NoError(t, err)
	require.NotNil(t, in)
	require.False(t, in.IsBandDefault)
	return in.ID
}

func TestBandInstrumentCreateRequiresPair(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	_, err := repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{})
	requireViolation(t, err, validation.KindRequired, "BandInstrument.band_id cannot be null")

	b := seedBand(t, repos)
	_, err = repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{BandID: &b.ID})
	requireViolation(t, err, validation.KindRequired, "BandInstrument.instrument_id cannot be null")
}

func TestBandInstrumentCreateValidatesReferences(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()
	b := seedBand(t, repos)
	instrumentID := nonDefaultInstrumentID(t, repos)

	_, err := repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       ptr(uint64(999999)),
		InstrumentID: &instrumentID,
	})
	requireViolation(t, err, validation.KindReference, "band_id not found")

	_, err = repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &b.ID,
		InstrumentID: ptr(uint64(999999)),
	})
	requireViolation(t, err, validation.KindReference, "instrument_id not found")

	_, err = repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &b.ID,
		InstrumentID: &instrumentID,
		UserID:       ptr(uint64(999999)),
	})
	requireViolation(t, err, validation.KindReference, "user_id not found")
}

func TestBandInstrumentCreate(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	b := seedBand(t, repos)
	instrumentID := nonDefaultInstrumentID(t, repos)
	user := seedUser(t, repos, "Dana", "dana@example.com")

	bi, err := repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &b.ID,
		InstrumentID: &instrumentID,
		UserID:       &user.ID,
	})
	require.NoError(t, err)
	require.Equal(t, b.ID, bi.BandID)
	require.Equal(t, instrumentID, bi.InstrumentID)
	require.Equal(t, user.ID, *bi.UserID)

	got, err := repos.BandInstruments.GetByID(ctx, bi.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, bi.ID, got.ID)
}

func TestBandInstrumentPairMustBeUnique(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	b := seedBand(t, repos)
	instrumentID := nonDefaultInstrumentID(t, repos)

	_, err := repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &b.ID,
		InstrumentID: &instrumentID,
	})
	require.NoError(t, err)

	_, err = repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &b.ID,
		InstrumentID: &instrumentID,
	})
	requireViolation(t, err, validation.KindDuplicate, "instrument_id already exists for this band_id")

	// The same instrument in another band is fine.
	other := seedBand(t, repos)
	_, err = repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &other.ID,
		InstrumentID: &instrumentID,
	})
	require.NoError(t, err)
}

func TestBandInstrumentDuplicateAgainstProvisionedSlot(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	b := seedBand(t, repos)
	slots, err := repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// Band creation already claimed the default instruments.
	_, err = repos.BandInstruments.Create(ctx, repository.BandInstrumentAttrs{
		BandID:       &b.ID,
		InstrumentID: &slots[0].InstrumentID,
	})
	requireViolation(t, err, validation.KindDuplicate, "instrument_id already exists for this band_id")
}

func TestBandInstrumentUpdate(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	b := seedBand(t, repos)
	slots, err := repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.Greater(t, len(slots), 1)

	user := seedUser(t, repos, "Robin", "robin@example.com")

	// Assigning a player does not touch the unique pair.
	affected, err := repos.BandInstruments.Update(ctx, slots[0].ID, repository.BandInstrumentAttrs{UserID: &user.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	got, err := repos.BandInstruments.GetByID(ctx, slots[0].ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, *got.UserID)

	// Moving a slot onto an instrument the band already has is a duplicate.
	_, err = repos.BandInstruments.Update(ctx, slots[0].ID, repository.BandInstrumentAttrs{
		InstrumentID: &slots[1].InstrumentID,
	})
	requireViolation(t, err, validation.KindDuplicate, "instrument_id already exists for this band_id")

	// Moving it to a free instrument works.
	free := nonDefaultInstrumentID(t, repos)
	affected, err = repos.BandInstruments.Update(ctx, slots[0].ID, repository.BandInstrumentAttrs{InstrumentID: &free})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// Updating an absent row affects nothing.
	affected, err = repos.BandInstruments.Update(ctx, 999999, repository.BandInstrumentAttrs{UserID: &user.ID})
	require.NoError(t, err)
	require.Zero(t, affected)

	// No attributes is a no-op.
	affected, err = repos.BandInstruments.Update(ctx, slots[0].ID, repository.BandInstrumentAttrs{})
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestBandInstrumentUpdateRejectsDanglingUser(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	b := seedBand(t, repos)
	slots, err := repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	_, err = repos.BandInstruments.Update(ctx, slots[0].ID, repository.BandInstrumentAttrs{UserID: ptr(uint64(999999))})
	requireViolation(t, err, validation.KindReference, "user_id not found")
}

func TestBandInstrumentListAndDelete(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	b := seedBand(t, repos)
	slots, err := repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	rows, total, err := repos.BandInstruments.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.EqualValues(t, len(slots), total)
	require.Len(t, rows, len(slots))

	_, _, err = repos.BandInstruments.List(ctx, repository.ListOptions{Search: "guitar"})
	require.Error(t, err)

	affected, err := repos.BandInstruments.Delete(ctx, slots[0].ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	remaining, err := repos.BandInstruments.ListByBand(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, remaining, len(slots)-1)
}
