package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shareit/internal/logger"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultDatabaseURL   = "shareit.db"
	defaultReadTimeout   = "10s"
	defaultWriteTimeout  = "10s"
	defaultAutoMigrate   = "true"
	defaultListPageLimit = "10"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	DatabaseURL   string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AutoMigrate   bool
	ListPageLimit int
}

// LoadEnv reads a local .env file if one exists. Missing files are fine:
// in deployed environments everything comes from real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.InfoLogger.Info("No .env file found, using environment variables")
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	var err error
	cfg.ReadTimeout, err = parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		return nil, err
	}
	cfg.WriteTimeout, err = parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		return nil, err
	}
	cfg.AutoMigrate, err = parseBoolEnv("DB_AUTO_MIGRATE", defaultAutoMigrate)
	if err != nil {
		return nil, err
	}
	cfg.ListPageLimit, err = parseIntEnv("LIST_PAGE_LIMIT", defaultListPageLimit)
	if err != nil {
		return nil, err
	}
	if cfg.ListPageLimit < 1 {
		return nil, fmt.Errorf("LIST_PAGE_LIMIT must be positive, got %d", cfg.ListPageLimit)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func parseBoolEnv(key, fallback string) (bool, error) {
	raw := getEnv(key, fallback)
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return b, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}
