// Package directory owns the venue and event catalog.  It is a collaborator
// of the reservation engine, not part of it: the engine only resolves
// events and venues through it and never mutates catalog state.
package directory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

// Sentinel errors for catalog operations.
var (
	ErrValidation     = errors.New("invalid input")
	ErrUnknownVenue   = errors.New("unknown venue")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrDuplicateVenue = errors.New("venue id already exists")
	ErrDuplicateEvent = errors.New("event id already exists")
)

const (
	maxHeadlinerLen   = 80
	maxDescriptionLen = 280
)

// Directory is an in-memory venue/event catalog behind its own RWMutex.
// Records are immutable once created.
type Directory struct {
	mu     sync.RWMutex
	venues map[string]model.Venue
	events map[string]model.Event
	now    func() time.Time
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{
		venues: make(map[string]model.Venue),
		events: make(map[string]model.Event),
		now:    time.Now,
	}
}

// CreateVenue registers a venue.  Name, city and state are required;
// capacity must be at least 1.
func (d *Directory) CreateVenue(id, name, city, state string, capacity int) (model.Venue, error) {
	id, err := normalizeID("venue", id)
	if err != nil {
		return model.Venue{}, err
	}
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	if name == "" || city == "" || state == "" {
		return model.Venue{}, fmt.Errorf("%w: venue name, city and state are required", ErrValidation)
	}
	if capacity < 1 {
		return model.Venue{}, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.venues[id]; ok {
		return model.Venue{}, fmt.Errorf("%w: %s", ErrDuplicateVenue, id)
	}
	now := d.now()
	v := model.Venue{ID: id, Name: name, City: city, State: state, Capacity: capacity, CreatedAt: now, UpdatedAt: now}
	d.venues[id] = v
	return v, nil
}

// CreateEvent registers an event at an existing venue.  Headliner and
// description are optional and truncated to their maximum lengths.
func (d *Directory) CreateEvent(id, name, category, venueID string, startsAt time.Time, headliner, description string) (model.Event, error) {
	id, err := normalizeID("event", id)
	if err != nil {
		return model.Event{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Event{}, fmt.Errorf("%w: event name cannot be empty", ErrValidation)
	}
	cat, ok := model.ParseEventCategory(category)
	if !ok {
		return model.Event{}, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	venueID, err = normalizeID("venue", venueID)
	if err != nil {
		return model.Event{}, err
	}
	if startsAt.IsZero() {
		return model.Event{}, fmt.Errorf("%w: start time is required", ErrValidation)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.venues[venueID]; !ok {
		return model.Event{}, fmt.Errorf("%w: %s", ErrUnknownVenue, venueID)
	}
	if _, ok := d.events[id]; ok {
		return model.Event{}, fmt.Errorf("%w: %s", ErrDuplicateEvent, id)
	}
	now := d.now()
	ev := model.Event{
		ID:          id,
		Name:        name,
		Category:    cat,
		VenueID:     venueID,
		StartsAt:    startsAt,
		Headliner:   truncate(headliner, maxHeadlinerLen),
		Description: truncate(description, maxDescriptionLen),
		Status:      model.EventOnSale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	d.events[id] = ev
	return ev, nil
}

// GetVenue returns the venue with the given id.  Malformed ids are
// treated as not found.
func (d *Directory) GetVenue(id string) (model.Venue, bool) {
	id, ok := model.NormalizeID(id)
	if !ok {
		return model.Venue{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.venues[id]
	return v, ok
}

// GetEvent returns the event with the given id.
func (d *Directory) GetEvent(id string) (model.Event, bool) {
	id, ok := model.NormalizeID(id)
	if !ok {
		return model.Event{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	ev, ok := d.events[id]
	return ev, ok
}

// ListVenues returns all venues sorted by name.
func (d *Directory) ListVenues() []model.Venue {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Venue, 0, len(d.venues))
	for _, v := range d.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListEvents returns all events sorted by start time.
func (d *Directory) ListEvents() []model.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Event, 0, len(d.events))
	for _, ev := range d.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeriveStatus computes the effective sale status of an event.  CANCELED
// sticks, a started event is PAST, an event whose tiers are all exhausted
// is SOLD_OUT, anything else is ON_SALE.
func DeriveStatus(ev model.Event, tierCount, available int, now time.Time) model.EventStatus {
	if ev.Status == model.EventCanceled {
		return model.EventCanceled
	}
	if ev.StartsAt.Before(now) {
		return model.EventPast
	}
	if tierCount > 0 && available == 0 {
		return model.EventSoldOut
	}
	return model.EventOnSale
}

func normalizeID(field, id string) (string, error) {
	normalized, ok := model.NormalizeID(id)
	if !ok {
		return "", fmt.Errorf("%w: %s id must use letters, numbers, '.', '-', '_' or ':'", ErrValidation, field)
	}
	return normalized, nil
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max]
	}
	return s
}
