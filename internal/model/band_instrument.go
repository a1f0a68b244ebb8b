package model

import "time"

// BandInstrument assigns an instrument slot within a band, optionally
// occupied by a user. A band cannot carry the same instrument twice:
// (band_id, instrument_id) is unique across all rows.
type BandInstrument struct {
	ID           uint64    `json:"id"`                // band_instruments.id
	BandID       uint64    `json:"band_id"`           // band_instruments.band_id
	InstrumentID uint64    `json:"instrument_id"`     // band_instruments.instrument_id
	UserID       *uint64   `json:"user_id,omitempty"` // band_instruments.user_id (nullable)
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
