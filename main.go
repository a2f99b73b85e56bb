// Package main agrimarket API.
//
// @title           agrimarket API
// @version         1.0
// @description     Farm labor and tractor marketplace: listings, bookings and their lifecycle.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"agrimarket/app/echoServer"
	bookingctrl "agrimarket/app/echoServer/controller/booking"
	listingctrl "agrimarket/app/echoServer/controller/listing"
	profilectrl "agrimarket/app/echoServer/controller/profile"
	"agrimarket/app/echoServer/validation"
	"agrimarket/config"
	bookingrepo "agrimarket/repository/booking"
	listingrepo "agrimarket/repository/listing"
	profilerepo "agrimarket/repository/profile"
	bookingsvc "agrimarket/service/booking"
	listingsvc "agrimarket/service/listing"
	profilesvc "agrimarket/service/profile"
	"agrimarket/util/database"
	"agrimarket/util/notify"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	// DB: pgx pool
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// notifications
	var pub notify.Publisher = notify.Noop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, events will be dropped until it recovers", "addr", cfg.RedisAddr, "err", err)
		}
		pub = notify.NewRedis(rdb, cfg.NotifyChannel)
	}

	// repos
	pr := profilerepo.New(db)
	lr := listingrepo.New(db)
	br := bookingrepo.New(db)

	// services
	ps := profilesvc.New(pr)
	ls := listingsvc.New(lr, pub, log)
	bs := bookingsvc.New(br, lr, pub, log)

	// controllers
	v := validation.NewValidate()
	profileC := &profilectrl.Controller{Svc: ps, V: v, Log: log}
	listingC := &listingctrl.Controller{Svc: ls, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, log, cfg.RateLimit)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		if err := db.Pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]any{"status": "degraded", "message": "database unreachable"})
		}
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	echoServer.Docs(e)

	echoServer.Register(e, echoServer.C{
		Profile:   profileC,
		Listing:   listingC,
		Booking:   bookingC,
		Profiles:  ps.Get,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
