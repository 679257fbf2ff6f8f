package router // registers the application's HTTP routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eventhotel/booking-api/internal/handler"
	"github.com/eventhotel/booking-api/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register, login,
// refresh and logout operate without an existing session; /me and
// /auth/logout-all require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	authed := e.Group("")
	authed.Use(middleware.JWTAuth(jwtSecret))
	authed.GET("/me", a.Me)
	authed.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterBooking registers the booking routes behind JWT auth. The
// paths are fixed by the booking API contract: GET and POST on
// /booking, PUT on /booking/:bookingId.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/booking")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("", b.GetBooking)
	g.POST("", b.CreateBooking)
	g.PUT("/:bookingId", b.UpdateBooking)
}

// RegisterHotels registers the hotel browse routes behind JWT auth,
// wrapped in the response cache when one is configured.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/hotels")
	g.Use(middleware.JWTAuth(jwtSecret))
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", h.ListHotels)
	g.GET("/:hotelId", h.GetHotelRooms)
}
