package repository

import (
	"database/sql"

	"github.com/tbraun92/bandroom/internal/validation"
)

// Repos bundles every entity repository over a single DB handle, wired once
// at startup and injected where needed.
type Repos struct {
	Artists         *ArtistRepo
	Genres          *GenreRepo
	Instruments     *InstrumentRepo
	Users           *UserRepo
	Sessions        *SessionRepo
	Bands           *BandRepo
	BandInstruments *BandInstrumentRepo
}

// NewRepos constructs all repositories with a shared validation runner.
func NewRepos(db *sql.DB, runner validation.Runner) *Repos {
	return &Repos{
		Artists:         NewArtistRepo(db, runner),
		Genres:          NewGenreRepo(db, runner),
		Instruments:     NewInstrumentRepo(db, runner),
		Users:           NewUserRepo(db, runner),
		Sessions:        NewSessionRepo(db, runner),
		Bands:           NewBandRepo(db, runner),
		BandInstruments: NewBandInstrumentRepo(db, runner),
	}
}
