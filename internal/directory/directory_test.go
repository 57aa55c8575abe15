package directory

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

var showTime = time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d := New()
	if _, err := d.CreateVenue("venue-1", "Main Hall", "Austin", "TX", 2000); err != nil {
		t.Fatalf("create venue: %v", err)
	}
	return d
}

func TestCreateVenueValidation(t *testing.T) {
	d := New()
	cases := []struct {
		name string
		call func() error
	}{
		{"bad id", func() error { _, err := d.CreateVenue("bad id!", "Hall", "Austin", "TX", 100); return err }},
		{"empty name", func() error { _, err := d.CreateVenue("v1", "  ", "Austin", "TX", 100); return err }},
		{"empty city", func() error { _, err := d.CreateVenue("v1", "Hall", "", "TX", 100); return err }},
		{"empty state", func() error { _, err := d.CreateVenue("v1", "Hall", "Austin", "", 100); return err }},
		{"zero capacity", func() error { _, err := d.CreateVenue("v1", "Hall", "Austin", "TX", 0); return err }},
	}
	for _, tc := range cases {
		if err := tc.call(); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestCreateEventValidation(t *testing.T) {
	d := newTestDirectory(t)
	cases := []struct {
		name string
		call func() error
		want error
	}{
		{"empty name", func() error {
			_, err := d.CreateEvent("e1", " ", "CONCERT", "venue-1", showTime, "", "")
			return err
		}, ErrValidation},
		{"bad category", func() error {
			_, err := d.CreateEvent("e1", "Show", "OPERA", "venue-1", showTime, "", "")
			return err
		}, ErrValidation},
		{"zero start", func() error {
			_, err := d.CreateEvent("e1", "Show", "CONCERT", "venue-1", time.Time{}, "", "")
			return err
		}, ErrValidation},
		{"missing venue", func() error {
			_, err := d.CreateEvent("e1", "Show", "CONCERT", "venue-nope", showTime, "", "")
			return err
		}, ErrUnknownVenue},
	}
	for _, tc := range cases {
		if err := tc.call(); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestDuplicateIDs(t *testing.T) {
	d := newTestDirectory(t)
	if _, err := d.CreateVenue("venue-1", "Other Hall", "Dallas", "TX", 500); !errors.Is(err, ErrDuplicateVenue) {
		t.Fatalf("venue err = %v, want ErrDuplicateVenue", err)
	}
	if _, err := d.CreateEvent("event-1", "Show", "CONCERT", "venue-1", showTime, "", ""); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := d.CreateEvent("event-1", "Show Again", "COMEDY", "venue-1", showTime, "", ""); !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("event err = %v, want ErrDuplicateEvent", err)
	}
}

func TestEventTextTruncation(t *testing.T) {
	d := newTestDirectory(t)
	headliner := strings.Repeat("h", 100)
	description := strings.Repeat("d", 400)
	ev, err := d.CreateEvent("event-1", "Show", "CONCERT", "venue-1", showTime, headliner, description)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if len(ev.Headliner) != maxHeadlinerLen {
		t.Errorf("headliner len = %d, want %d", len(ev.Headliner), maxHeadlinerLen)
	}
	if len(ev.Description) != maxDescriptionLen {
		t.Errorf("description len = %d, want %d", len(ev.Description), maxDescriptionLen)
	}
}

func TestLookupsNormalize(t *testing.T) {
	d := newTestDirectory(t)
	if _, ok := d.GetVenue("  venue-1  "); !ok {
		t.Errorf("padded id should resolve after trimming")
	}
	if _, ok := d.GetVenue("bad id!"); ok {
		t.Errorf("malformed id should read as not found")
	}
	if _, ok := d.GetEvent("event-nope"); ok {
		t.Errorf("unknown event should read as not found")
	}
}

func TestListOrdering(t *testing.T) {
	d := newTestDirectory(t)
	if _, err := d.CreateVenue("venue-2", "Annex", "Austin", "TX", 300); err != nil {
		t.Fatalf("create venue: %v", err)
	}
	if _, err := d.CreateEvent("event-late", "Late Show", "COMEDY", "venue-1", showTime.Add(24*time.Hour), "", ""); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := d.CreateEvent("event-early", "Early Show", "COMEDY", "venue-1", showTime, "", ""); err != nil {
		t.Fatalf("create event: %v", err)
	}

	venues := d.ListVenues()
	if len(venues) != 2 || venues[0].Name != "Annex" {
		t.Fatalf("venues not sorted by name: %+v", venues)
	}
	events := d.ListEvents()
	if len(events) != 2 || events[0].ID != "event-early" {
		t.Fatalf("events not sorted by start: %+v", events)
	}
}

func TestDeriveStatus(t *testing.T) {
	now := showTime
	base := model.Event{StartsAt: now.Add(time.Hour), Status: model.EventOnSale}
	cases := []struct {
		name      string
		ev        model.Event
		tierCount int
		available int
		want      model.EventStatus
	}{
		{"on sale", base, 2, 50, model.EventOnSale},
		{"no tiers yet", base, 0, 0, model.EventOnSale},
		{"sold out", base, 2, 0, model.EventSoldOut},
		{"past", model.Event{StartsAt: now.Add(-time.Hour), Status: model.EventOnSale}, 2, 50, model.EventPast},
		{"canceled sticks", model.Event{StartsAt: now.Add(-time.Hour), Status: model.EventCanceled}, 2, 0, model.EventCanceled},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.ev, tc.tierCount, tc.available, now); got != tc.want {
			t.Errorf("%s: status = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestSeedLoadsCatalog(t *testing.T) {
	d := New()
	if err := d.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := len(d.ListVenues()); got != 3 {
		t.Fatalf("venues = %d, want 3", got)
	}
	events := d.ListEvents()
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	for _, ev := range events {
		if _, ok := d.GetVenue(ev.VenueID); !ok {
			t.Errorf("event %s references unknown venue %s", ev.ID, ev.VenueID)
		}
	}
	if err := d.Seed(); !errors.Is(err, ErrDuplicateVenue) {
		t.Fatalf("reseed err = %v, want ErrDuplicateVenue", err)
	}
}
