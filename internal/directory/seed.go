package directory

import (
	"fmt"
	"time"
)

// Seed loads the demo venues and events used for local development.  The
// matching tier, hold and order seed lives in the inventory package.
func (d *Directory) Seed() error {
	venues := []struct {
		id, name, city, state string
		capacity              int
	}{
		{"venue-msg", "Midtown Arena", "New York", "NY", 18000},
		{"venue-regal", "Regal Theatre", "Chicago", "IL", 4200},
		{"venue-bayfront", "Bayfront Park", "San Francisco", "CA", 15000},
	}
	for _, v := range venues {
		if _, err := d.CreateVenue(v.id, v.name, v.city, v.state, v.capacity); err != nil {
			return fmt.Errorf("seed venue %s: %w", v.id, err)
		}
	}

	now := time.Now()
	at := func(days, hour, minute int) time.Time {
		t := now.AddDate(0, 0, days)
		return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	}
	events := []struct {
		id, name, category, venueID  string
		startsAt                     time.Time
		headliner, description       string
	}{
		{"event-echoes", "Echoes Live Tour", "CONCERT", "venue-msg", at(12, 19, 30),
			"The Echoes", "Stadium show with surprise guests."},
		{"event-city-derby", "City Derby", "SPORTS", "venue-msg", at(20, 18, 0),
			"NYC United vs. Gotham FC", "Rivalry night under the lights."},
		{"event-late-night", "Late Night Laughs", "COMEDY", "venue-regal", at(7, 20, 0),
			"Maya Torres", "Standup showcase with guest comics."},
	}
	for _, ev := range events {
		if _, err := d.CreateEvent(ev.id, ev.name, ev.category, ev.venueID, ev.startsAt, ev.headliner, ev.description); err != nil {
			return fmt.Errorf("seed event %s: %w", ev.id, err)
		}
	}
	return nil
}
