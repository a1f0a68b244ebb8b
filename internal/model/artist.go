package model

import "time"

// Artist is a performer or act that a band can be built around.
// Artist names are unique at the store level.
type Artist struct {
	ID        uint64    `json:"id"`         // artists.id
	Name      string    `json:"name"`       // artists.name (unique)
	CreatedAt time.Time `json:"created_at"` // artists.created_at
	UpdatedAt time.Time `json:"updated_at"` // artists.updated_at
}
