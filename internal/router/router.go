// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kovil/hall-booking/internal/handler"
)

// RegisterRoutes registers routes that carry no middleware.  Currently
// it exposes only a health check, used by load balancers and monitoring
// systems to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the read-only browse endpoints: the hall
// directory and the availability views.  cacheMW is the Redis response
// cache; pass nil to register the routes uncached (e.g. in tests or
// when Redis is down).
func RegisterPublic(e *echo.Echo, halls *handler.HallHandler, avail *handler.AvailabilityHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cacheMW != nil {
		g.Use(cacheMW)
	}
	// Hall directory, read-only; halls are managed externally.
	g.GET("/halls", halls.ListHalls)
	g.GET("/halls/:id", halls.GetHall)
	// Availability views.
	g.GET("/availability", avail.ListAvailability)
	g.GET("/halls/:id/availability", avail.HallAvailability)
	g.GET("/halls/:id/calendar", avail.HallCalendar)
}

// RegisterBooking registers the booking mutations behind the rate
// limiter.  rateMW may be nil to register them unthrottled.
func RegisterBooking(e *echo.Echo, booking *handler.BookingHandler, rateMW echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if rateMW != nil {
		g.Use(rateMW)
	}
	g.POST("/halls/:id/dates/:date/hold", booking.HoldDate)
	g.POST("/halls/:id/dates/:date/confirm", booking.ConfirmDate)
	g.DELETE("/halls/:id/dates/:date/hold", booking.ReleaseHold)
	g.DELETE("/halls/:id/dates/:date/booking", booking.CancelBooking)
}
