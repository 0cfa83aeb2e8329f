package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	LogLevel      string
	MigrationsDir string

	EventMaxListeners int

	NotifyWorkers int
	NotifyQueue   int
	NotifyTimeout time.Duration
}

func Load() (Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	cfg := Config{
		DatabaseURL:   dbURL,
		HTTPAddr:      getenvDefault("HTTP_ADDR", ":8080"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		MigrationsDir: getenvDefault("MIGRATIONS_DIR", "migrations"),
	}

	var err error
	if cfg.EventMaxListeners, err = getenvInt("EVENTBUS_MAX_LISTENERS", 100); err != nil {
		return Config{}, err
	}
	if cfg.NotifyWorkers, err = getenvInt("NOTIFY_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.NotifyQueue, err = getenvInt("NOTIFY_QUEUE", 64); err != nil {
		return Config{}, err
	}
	if cfg.NotifyTimeout, err = getenvDuration("NOTIFY_TIMEOUT", 2*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
