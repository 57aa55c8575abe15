package model

import (
	"regexp"
	"strings"
	"time"
)

// EventCategory classifies an event for browsing and filtering.
type EventCategory string

const (
	CategoryConcert  EventCategory = "CONCERT"
	CategorySports   EventCategory = "SPORTS"
	CategoryComedy   EventCategory = "COMEDY"
	CategoryTheater  EventCategory = "THEATER"
	CategoryFestival EventCategory = "FESTIVAL"
	CategoryOther    EventCategory = "OTHER"
)

// ParseEventCategory maps a free-form string onto the closed category set.
// Matching is case-insensitive; unknown values return false.
func ParseEventCategory(s string) (EventCategory, bool) {
	switch EventCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryConcert:
		return CategoryConcert, true
	case CategorySports:
		return CategorySports, true
	case CategoryComedy:
		return CategoryComedy, true
	case CategoryTheater:
		return CategoryTheater, true
	case CategoryFestival:
		return CategoryFestival, true
	case CategoryOther:
		return CategoryOther, true
	}
	return "", false
}

// EventStatus describes the sale state of an event.  ON_SALE and CANCELED
// are stored; SOLD_OUT and PAST are derived from inventory and the clock.
type EventStatus string

const (
	EventOnSale   EventStatus = "ON_SALE"
	EventSoldOut  EventStatus = "SOLD_OUT"
	EventCanceled EventStatus = "CANCELED"
	EventPast     EventStatus = "PAST"
)

// Event is a scheduled performance at a venue.  Tiers reference the event
// by id only.
type Event struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    EventCategory `json:"category"`
	VenueID     string        `json:"venue_id"`
	StartsAt    time.Time     `json:"starts_at"`
	Headliner   string        `json:"headliner,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      EventStatus   `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// NormalizeID trims the id and reports whether it matches the allowed
// pattern (letters, digits, '.', '-', '_', ':').  Empty ids are rejected.
func NormalizeID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" || !idPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
