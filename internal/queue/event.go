// Package queue defines the domain events exchanged over the message broker
// and the background consumer that records them.
package queue

// BandCreatedEvent is published after a band is successfully created,
// including its auto-provisioned default instrument slots. Downstream
// consumers can notify staff or feed scheduling dashboards without querying
// the primary database.
type BandCreatedEvent struct {
	BandID               uint64   `json:"band_id"`
	SessionID            uint64   `json:"session_id"`
	Name                 string   `json:"name,omitempty"`
	DefaultInstrumentIDs []uint64 `json:"default_instrument_ids"`
	CreatedAt            string   `json:"created_at"`
}
