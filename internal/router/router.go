// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-reservation/internal/handler"
)

// RegisterRoutes registers the routes that need no handler state.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAdmin registers the catalog administration endpoints: creating
// venues, events and ticket tiers.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler) {
	g := e.Group("/v1")
	g.POST("/venues", a.CreateVenue)
	g.POST("/events", a.CreateEvent)
	g.POST("/events/:id/tiers", a.CreateTier)
}

// RegisterBrowse registers the read-only browse endpoints.  The optional
// cache middleware is applied to this group only; mutating routes must
// never be cached.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/venues", b.ListVenues)
	g.GET("/venues/:id", b.GetVenue)
	g.GET("/events", b.ListEvents)
	g.GET("/events/:id", b.GetEvent)
	g.GET("/events/:id/tiers", b.ListTiers)
	g.GET("/events/:id/summary", b.EventSummary)
	g.GET("/stats", b.Stats)
}

// RegisterReservations registers the hold and order endpoints.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler) {
	g := e.Group("/v1")
	g.POST("/events/:id/holds", r.CreateHold)
	g.GET("/events/:id/holds", r.ListHolds)
	g.DELETE("/holds/:id", r.ReleaseHold)
	g.POST("/events/:id/orders", r.CreateOrder)
	g.GET("/events/:id/orders", r.ListOrders)
}
