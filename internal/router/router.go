package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/gspotbarber/barbershop-booking/internal/handler"
)

// RegisterRoutes registers routes that belong to no feature group.
// Currently that is only the health check used by monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated site API: the service
// catalog, booking creation and slot availability. catalogCache wraps only
// the catalog route; the availability routes must never serve stale data.
func RegisterPublic(e *echo.Echo, s *handler.ServiceHandler, b *handler.BookingHandler, catalogCache echo.MiddlewareFunc) {
	e.GET("/api/services", s.List, catalogCache)
	e.POST("/api/bookings", b.Create)
	e.GET("/api/bookings/times/:date", b.BookedTimes)
	e.GET("/api/bookings/slots/:date", b.Slots)
}

// RegisterAdmin registers the dashboard API under /api/admin. Login and
// logout are reachable anonymously; everything else sits behind the
// session middleware, which rejects unauthenticated requests before any
// handler or storage access.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, b *handler.AdminBookingHandler, requireAdmin echo.MiddlewareFunc) {
	g := e.Group("/api/admin")
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	auth := g.Group("", requireAdmin)
	auth.GET("/check", a.Check)
	auth.POST("/change-password", a.ChangePassword)
	auth.GET("/bookings", b.List)
	auth.PATCH("/bookings/:id", b.UpdateStatus)
	auth.DELETE("/bookings/:id", b.Delete)
}
