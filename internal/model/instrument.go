package model

import "time"

// Instrument is an instrument slot that can be assigned to a band.
// Instruments flagged IsBandDefault are provisioned automatically for
// every newly created band (one BandInstrument row per default).
type Instrument struct {
	ID            uint64    `json:"id"`              // instruments.id
	Name          string    `json:"name"`            // instruments.name (unique)
	IsBandDefault bool      `json:"is_band_default"` // instruments.is_band_default
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
