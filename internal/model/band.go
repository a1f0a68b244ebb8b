package model

import "time"

// Band is a rehearsal group scheduled within a session. Only SessionID is
// mandatory; the artist, genre and schedule details are filled in as the
// band takes shape.
//
// Fields:
//  ID            – primary key identifier.
//  SessionID     – session the band rehearses in (required reference).
//  ArtistID      – artist the band covers (optional reference).
//  GenreID       – genre tag (optional reference).
//  Name          – display name.
//  ImageURL      – promo image.
//  DayOfWeek     – weekday of the rehearsal slot (Monday..Sunday).
//  StartsAt      – rehearsal start time of day (HH:MM:SS).
//  EndsAt        – rehearsal end time of day.
//  Price         – price for the full program.
//  DurationWeeks – length of the program in weeks.
type Band struct {
	ID            uint64    `json:"id"`                       // bands.id
	SessionID     uint64    `json:"session_id"`               // bands.session_id
	ArtistID      *uint64   `json:"artist_id,omitempty"`      // bands.artist_id (nullable)
	GenreID       *uint64   `json:"genre_id,omitempty"`       // bands.genre_id (nullable)
	Name          *string   `json:"name,omitempty"`           // bands.name (nullable)
	ImageURL      *string   `json:"image_url,omitempty"`      // bands.image_url (nullable)
	DayOfWeek     *string   `json:"day_of_week,omitempty"`    // bands.day_of_week (nullable)
	StartsAt      *string   `json:"starts_at,omitempty"`      // bands.starts_at (nullable TIME)
	EndsAt        *string   `json:"ends_at,omitempty"`        // bands.ends_at (nullable TIME)
	Price         *float64  `json:"price,omitempty"`          // bands.price (nullable DECIMAL)
	DurationWeeks *int32    `json:"duration_weeks,omitempty"` // bands.duration_weeks (nullable)
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Weekdays enumerates the accepted day_of_week values in storage order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
