package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the process environment, after merging a local .env file when one exists.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "err", err)
	}

	cfg := App{
		Port:          getenv("APP_PORT", "8080"),
		DatabaseURL:   must("DATABASE_URL"),
		JWTSecret:     getenv("JWT_SECRET", "local_dev_secret"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		NotifyChannel: getenv("NOTIFY_CHANNEL", "agrimarket:events"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		RateLimit:     getfloat("RATE_LIMIT_PER_SECOND", 20),
		Env:           getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid env value, using default", "key", k, "value", v)
		return def
	}
	return f
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
