package model

import "time"

// Genre is a musical style a band can be tagged with. Names are unique.
type Genre struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
