package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-reservation/internal/directory"
	"github.com/iliyamo/ticket-reservation/internal/inventory"
)

// AdminHandler exposes the administrative catalog operations: creating
// venues and events in the directory and defining ticket tiers in the
// engine.
type AdminHandler struct {
	Directory *directory.Directory
	Engine    *inventory.Engine
}

// NewAdminHandler constructs an AdminHandler.  Both dependencies must be
// non-nil.
func NewAdminHandler(dir *directory.Directory, eng *inventory.Engine) *AdminHandler {
	if dir == nil || eng == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Directory: dir, Engine: eng}
}

// CreateVenue handles POST /v1/venues.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var body struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		City     string `json:"city"`
		State    string `json:"state"`
		Capacity int    `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	venue, err := h.Directory.CreateVenue(body.ID, body.Name, body.City, body.State, body.Capacity)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(http.StatusCreated, venue)
}

// CreateEvent handles POST /v1/events.  starts_at must be RFC 3339.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var body struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		VenueID     string `json:"venue_id"`
		StartsAt    string `json:"starts_at"`
		Headliner   string `json:"headliner"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be an RFC 3339 timestamp"})
	}
	event, err := h.Directory.CreateEvent(body.ID, body.Name, body.Category, body.VenueID, startsAt, body.Headliner, body.Description)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// CreateTier handles POST /v1/events/:id/tiers.
func (h *AdminHandler) CreateTier(c echo.Context) error {
	var body struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
		Capacity  int     `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	tier, err := h.Engine.DefineTier(c.Param("id"), body.ID, body.Name, body.UnitPrice, body.Capacity)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, tier)
}
