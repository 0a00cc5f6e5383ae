package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultDatabaseURL   = "serenityspa.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultLoginDelay    = "1s"
	defaultCheckoutDelay = "1500ms"
	defaultSessionTTL    = "168h"
)

// Config is the runtime configuration, loaded from the environment
// with an optional .env file for local development.
type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTTTL        time.Duration
	LoginDelay    time.Duration
	CheckoutDelay time.Duration
	SessionTTL    time.Duration
	// ClosedWeekday is the weekly closing day; bookings on it are
	// rejected by the wizard's date guard.
	ClosedWeekday time.Weekday
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.LoginDelay, err = parseDurationEnv("LOGIN_DELAY", defaultLoginDelay); err != nil {
		return nil, err
	}
	if cfg.CheckoutDelay, err = parseDurationEnv("CHECKOUT_DELAY", defaultCheckoutDelay); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}

	cfg.ClosedWeekday, err = parseWeekdayEnv("CLOSED_WEEKDAY", time.Sunday)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func parseWeekdayEnv(key string, fallback time.Weekday) (time.Weekday, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(raw, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown weekday %q", key, raw)
}
