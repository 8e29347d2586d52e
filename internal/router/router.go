package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mendoza-apartments/booking-api/internal/handler"    // handlers implementing the endpoints
	"github.com/mendoza-apartments/booking-api/internal/middleware" // JWT + role middleware
	"github.com/mendoza-apartments/booking-api/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and uptime monitors hit this to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the dashboard auth routes and applies the necessary
// middleware.  Unauthenticated operations live under /v1/auth, while
// protected endpoints live under /v1.  There is no register route; the
// admin account is seeded at startup.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT middleware: the handler accepts either a
	// Bearer token (revoke all sessions) or a refresh_token body (revoke one).
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(repository.RoleAdmin))
	auth.GET("/me", a.Me)

	// Top-level alias so clients can call either /v1/auth/logout or
	// /v1/logout with a refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse, search and booking
// endpoints.  These are what the marketing site calls; no JWT or role
// middleware applies.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.BookingHandler) {
	// All published listings, newest first.
	e.GET("/v1/apartments", p.ListApartments)
	// One published listing by id.
	e.GET("/v1/apartments/:id", p.GetApartment)
	// Availability-filtered search: check_in/check_out, guests, amenities.
	e.GET("/v1/search/apartments", p.SearchApartments)
	// The booking form submits here; the booking lands as pending.
	e.POST("/v1/bookings", b.CreateBooking)
}

// RegisterAdmin registers the dashboard endpoints under /v1/admin.  All
// routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleAdmin),
	)

	// ---- Apartments ----
	g.POST("/apartments", a.CreateApartment)
	g.GET("/apartments", a.ListApartments) // includes unpublished listings
	g.GET("/apartments/:id", a.GetApartment)
	g.PUT("/apartments/:id", a.UpdateApartment)
	g.PATCH("/apartments/:id", a.UpdateApartment) // alias for clients that use PATCH
	g.PUT("/apartments/:id/active", a.SetApartmentActive)
	g.DELETE("/apartments/:id", a.DeleteApartment)

	// ---- Images ----
	g.POST("/apartments/:id/images", a.UploadImage)
	g.DELETE("/apartments/:id/images/:index", a.DeleteImage)
	g.PUT("/apartments/:id/principal-image", a.SetPrincipalImage)

	// ---- Availability periods ----
	g.POST("/apartments/:id/availability", a.CreateAvailability)
	g.GET("/apartments/:id/availability", a.ListAvailability)
	g.DELETE("/availability/:id", a.DeleteAvailability)

	// ---- Bookings ----
	g.GET("/bookings", a.ListBookings) // optional ?apartment_id= filter
	g.GET("/bookings/pending-count", a.PendingBookingCount)
	g.GET("/bookings/:id", a.GetBooking)
	g.PUT("/bookings/:id/status", a.UpdateBookingStatus)
	g.DELETE("/bookings/:id", a.DeleteBooking)
}
