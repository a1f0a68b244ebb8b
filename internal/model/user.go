package model

import "time"

// User mirrors the 'users' table. UUID and Email are unique at the store level.
type User struct {
	ID          uint64    `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
