package model

import "time"

// Venue is a physical location where events take place.  Venues are
// created once through the directory and are never mutated afterwards.
//
// Fields:
//  ID        – caller-supplied identifier (letters, digits, '.', '-', '_', ':').
//  Name      – display name of the venue.
//  City      – city the venue is located in.
//  State     – state or region abbreviation.
//  Capacity  – maximum headcount across all configurations.
//  CreatedAt – timestamp when the record was created.
//  UpdatedAt – timestamp when the record was last updated.
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
