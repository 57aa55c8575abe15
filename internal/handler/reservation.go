package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-reservation/internal/directory"
	"github.com/iliyamo/ticket-reservation/internal/inventory"
	"github.com/iliyamo/ticket-reservation/internal/model"
	"github.com/iliyamo/ticket-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/ticket-reservation/internal/service"
)

// ReservationHandler exposes the hold and order operations.  When
// PublishEvents is set, a confirmed order additionally emits an
// OrderConfirmedEvent to the broker; publish failures are logged by the
// publisher and never fail the request.
type ReservationHandler struct {
	Directory     *directory.Directory
	Engine        *inventory.Engine
	PublishEvents bool
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(dir *directory.Directory, eng *inventory.Engine, publish bool) *ReservationHandler {
	if dir == nil || eng == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Directory: dir, Engine: eng, PublishEvents: publish}
}

// CreateHold handles POST /v1/events/:id/holds.
func (h *ReservationHandler) CreateHold(c echo.Context) error {
	var body struct {
		TierID   string `json:"tier_id"`
		Customer string `json:"customer"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	hold, err := h.Engine.CreateHold(c.Param("id"), body.TierID, body.Customer, body.Quantity)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, hold)
}

// ReleaseHold handles DELETE /v1/holds/:id.  The hold is not deleted; it
// transitions to RELEASED and stays queryable as an audit record.
func (h *ReservationHandler) ReleaseHold(c echo.Context) error {
	hold, err := h.Engine.ReleaseHold(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, hold)
}

// CreateOrder handles POST /v1/events/:id/orders.  With hold_id set the
// order converts that hold; otherwise it is a direct purchase.
func (h *ReservationHandler) CreateOrder(c echo.Context) error {
	var body struct {
		TierID   string `json:"tier_id"`
		Customer string `json:"customer"`
		Quantity int    `json:"quantity"`
		HoldID   string `json:"hold_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	order, err := h.Engine.CreateOrder(c.Param("id"), body.TierID, body.Customer, body.Quantity, body.HoldID)
	if err != nil {
		return engineError(c, err)
	}
	if h.PublishEvents {
		_ = queue_publisher.PublishOrderConfirmed(c.Request().Context(), h.orderEvent(order, body.HoldID != ""))
	}
	return c.JSON(http.StatusCreated, order)
}

// ListHolds handles GET /v1/events/:id/holds.
func (h *ReservationHandler) ListHolds(c echo.Context) error {
	holds, err := h.Engine.ListHolds(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": holds})
}

// ListOrders handles GET /v1/events/:id/orders.
func (h *ReservationHandler) ListOrders(c echo.Context) error {
	orders, err := h.Engine.ListOrders(c.Param("id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

func (h *ReservationHandler) orderEvent(order model.Order, fromHold bool) queue.OrderConfirmedEvent {
	ev := queue.OrderConfirmedEvent{
		OrderID:     order.ID,
		EventID:     order.EventID,
		TierID:      order.TierID,
		Customer:    order.Customer,
		Quantity:    order.Quantity,
		UnitPrice:   order.UnitPrice,
		Fees:        order.Fees,
		Total:       order.Total,
		FromHold:    fromHold,
		ConfirmedAt: order.CreatedAt.UTC().Format(time.RFC3339),
	}
	if event, ok := h.Directory.GetEvent(order.EventID); ok {
		ev.EventName = event.Name
		if venue, ok := h.Directory.GetVenue(event.VenueID); ok {
			ev.VenueName = venue.Name
		}
	}
	if tiers, err := h.Engine.ListTiers(order.EventID); err == nil {
		for _, t := range tiers {
			if t.ID == order.TierID {
				ev.TierName = t.Name
				break
			}
		}
	}
	return ev
}
