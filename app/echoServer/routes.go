package echoServer

import (
	"log/slog"
	"net/http"

	"agrimarket/app/echoServer/controller/booking"
	"agrimarket/app/echoServer/controller/listing"
	"agrimarket/app/echoServer/controller/profile"
	"agrimarket/app/echoServer/jwtx"
	"agrimarket/util/jwt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type C struct {
	Profile   *profile.Controller
	Listing   *listing.Controller
	Booking   *booking.Controller
	Profiles  ProfileLookup
	JWTSecret string
	Log       *slog.Logger
}

func Register(e *echo.Echo, c C) {
	log := c.Log
	if log == nil {
		log = slog.Default()
	}

	// Public
	pub := e.Group("/v1")
	pub.GET("/labor", c.Listing.ListLabor)
	pub.GET("/labor/:id", c.Listing.LaborDetail)
	pub.GET("/tractors", c.Listing.ListTractors)
	pub.GET("/tractors/:id", c.Listing.TractorDetail)

	// Auth: token only, profile may not exist yet
	auth := e.Group("/v1")
	auth.Use(Bearer(c.JWTSecret, log))
	auth.POST("/profiles", c.Profile.Register)

	// Members: token plus a stored profile
	mem := e.Group("/v1")
	mem.Use(Bearer(c.JWTSecret, log), LoadActor(c.Profiles, log))

	mem.GET("/profiles/me", c.Profile.Me)
	mem.PATCH("/profiles/me", c.Profile.Update)
	mem.GET("/profiles/me/capabilities", c.Profile.Capabilities)

	// Listings
	mem.POST("/labor", c.Listing.CreateLabor)
	mem.PATCH("/labor/:id/availability", c.Listing.SetLaborAvailability)
	mem.DELETE("/labor/:id", c.Listing.DeleteLabor)
	mem.POST("/tractors", c.Listing.CreateTractor)
	mem.PATCH("/tractors/:id/availability", c.Listing.SetTractorAvailability)
	mem.DELETE("/tractors/:id", c.Listing.DeleteTractor)
	mem.GET("/listings/my", c.Listing.Mine)

	// Bookings
	mem.POST("/labor/:id/bookings", c.Booking.CreateLabor)
	mem.POST("/tractors/:id/bookings", c.Booking.CreateTractor)
	mem.POST("/bookings/:kind/:id/status", c.Booking.Transition)
	mem.GET("/bookings/my", c.Booking.Mine)
	mem.GET("/quote/labor/:id", c.Booking.QuoteLabor)
	mem.GET("/quote/tractors/:id", c.Booking.QuoteTractor)
}

// Docs serves the swagger UI.
func Docs(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Bearer verifies the identity provider's token and stores its subject as "user_id".
func Bearer(secret string, log *slog.Logger) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwt.ParseAuth(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Warn("[AUTH] rejected", "err", err, "ip", c.RealIP(),
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID))
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		},
	})
	subject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, ok := c.Get("user").(string)
			if !ok || sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			c.Set(jwtx.UserIDKey, sub)
			return next(c)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(subject(next))
	}
}
