package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-reservation/internal/directory"
	"github.com/iliyamo/ticket-reservation/internal/inventory"
	"github.com/iliyamo/ticket-reservation/internal/model"
)

// BrowseHandler exposes the unauthenticated read endpoints: venues,
// events with availability, tier listings, summaries and catalog stats.
type BrowseHandler struct {
	Directory *directory.Directory
	Engine    *inventory.Engine
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(dir *directory.Directory, eng *inventory.Engine) *BrowseHandler {
	if dir == nil || eng == nil {
		panic("nil dependency passed to NewBrowseHandler")
	}
	return &BrowseHandler{Directory: dir, Engine: eng}
}

// eventListing is an event enriched with its venue, derived status and
// inventory summary for browse responses.
type eventListing struct {
	Event   model.Event            `json:"event"`
	Venue   *model.Venue           `json:"venue,omitempty"`
	Status  model.EventStatus      `json:"status"`
	Summary inventory.EventSummary `json:"summary"`
}

func (h *BrowseHandler) listing(ev model.Event, now time.Time) eventListing {
	summary, err := h.Engine.EventSummary(ev.ID)
	if err != nil {
		summary = inventory.EventSummary{EventID: ev.ID}
	}
	item := eventListing{
		Event:   ev,
		Status:  directory.DeriveStatus(ev, summary.TierCount, summary.Available, now),
		Summary: summary,
	}
	if venue, ok := h.Directory.GetVenue(ev.VenueID); ok {
		item.Venue = &venue
	}
	return item
}

// ListVenues handles GET /v1/venues.
func (h *BrowseHandler) ListVenues(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Directory.ListVenues()})
}

// GetVenue handles GET /v1/venues/:id.
func (h *BrowseHandler) GetVenue(c echo.Context) error {
	venue, ok := h.Directory.GetVenue(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	return c.JSON(http.StatusOK, venue)
}

// ListEvents handles GET /v1/events.  Every event is returned as a full
// listing with venue, status and availability, sorted by start time.
func (h *BrowseHandler) ListEvents(c echo.Context) error {
	now := time.Now()
	events := h.Directory.ListEvents()
	items := make([]eventListing, 0, len(events))
	for _, ev := range events {
		items = append(items, h.listing(ev, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetEvent handles GET /v1/events/:id.
func (h *BrowseHandler) GetEvent(c echo.Context) error {
	ev, ok := h.Directory.GetEvent(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusOK, h.listing(ev, time.Now()))
}

// ListTiers handles GET /v1/events/:id/tiers.
func (h *BrowseHandler) ListTiers(c echo.Context) error {
	tiers, err := h.Engine.ListTiers(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tiers})
}

// EventSummary handles GET /v1/events/:id/summary.
func (h *BrowseHandler) EventSummary(c echo.Context) error {
	summary, err := h.Engine.EventSummary(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Stats handles GET /v1/stats.
func (h *BrowseHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Engine.Stats())
}
