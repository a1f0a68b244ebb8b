package model

import "time"

// Session is a program term. Bands belong to exactly one session and the
// term ends with a showcase performance.
//
// Fields:
//  ID                – primary key identifier.
//  StartedAt         – first day of the term (date only).
//  ShowcasedAt       – date and time of the end-of-term showcase.
//  ShowcaseLocation  – venue of the showcase, if booked.
type Session struct {
	ID               uint64    `json:"id"`                          // sessions.id
	StartedAt        time.Time `json:"started_at"`                  // sessions.started_at
	ShowcasedAt      time.Time `json:"showcased_at"`                // sessions.showcased_at
	ShowcaseLocation *string   `json:"showcase_location,omitempty"` // sessions.showcase_location (nullable)
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
