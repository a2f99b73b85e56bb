package config

import (
	"log/slog"
	"strings"
)

type App struct {
	Port          string  `env:"APP_PORT" default:"8080"`
	DatabaseURL   string  `env:"DATABASE_URL,required"`
	JWTSecret     string  `env:"JWT_SECRET"`
	RedisAddr     string  `env:"REDIS_ADDR"`
	RedisPassword string  `env:"REDIS_PASSWORD"`
	NotifyChannel string  `env:"NOTIFY_CHANNEL" default:"agrimarket:events"`
	LogLevel      string  `env:"LOG_LEVEL" default:"info"`
	RateLimit     float64 `env:"RATE_LIMIT_PER_SECOND" default:"20"`
	Env           string  `env:"APP_ENV" default:"dev"`
}

// SlogLevel maps LOG_LEVEL onto slog; unknown values fall back to info.
func (a App) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
