// app/echoServer/middleware.go
package echoServer

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"agrimarket/app/echoServer/jwtx"
	"agrimarket/model"
	"agrimarket/util/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func RegisterMiddlewares(e *echo.Echo, log *slog.Logger, perSecond float64) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(log))

	if perSecond > 0 {
		e.Use(RateLimit(perSecond))
	}
}

func Slog(log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the response so the logged status is the real one
				c.Error(err)
			}
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return nil
		}
	}
}

// RateLimit throttles per client IP.
func RateLimit(perSecond float64) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(perSecond*2) + 1,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "too many requests"})
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		},
	})
}

// ProfileLookup resolves the authenticated subject to a stored profile.
type ProfileLookup func(ctx context.Context, id string) (*model.Profile, error)

// LoadActor puts the caller's profile into the context as "actor".
// Callers without a profile get 404 and must register first.
func LoadActor(lookup ProfileLookup, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := jwtx.UserIDFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			p, err := lookup(c.Request().Context(), uid)
			if err != nil {
				if errs.Code(err) == errs.ErrNotFound {
					return c.JSON(http.StatusNotFound, echo.Map{"message": "profile not found, register first"})
				}
				log.Error("load actor", "err", err, "user_id", uid,
					"req_id", c.Response().Header().Get(echo.HeaderXRequestID))
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			c.Set(jwtx.ActorKey, p)
			return next(c)
		}
	}
}
