package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI and the HTTP server.
type Config struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string

	// HTTPTimeout bounds every outbound weather API request.
	HTTPTimeout time.Duration
	// LookupRetries is the number of extra attempts after a failed lookup (0 = none).
	LookupRetries int
	// LookupCacheTTL controls how long a zip lookup is reused (0 = no cache).
	LookupCacheTTL time.Duration

	HistoryFile string

	LogLevel string
	LogFile  string

	Port            string
	ShutdownTimeout time.Duration

	// FetchInterval controls how often watched zip codes are refreshed.
	FetchInterval time.Duration
	WatchZips     []string

	// In-memory store retention.
	StoreMaxHistory int           // max number of observations per zip (0 = unlimited)
	StoreMaxAge     time.Duration // max age of observations (0 = unlimited)
}

// Load reads configuration from an optional .env file and the environment,
// applying defaults where unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		WeatherAPIKey:     os.Getenv("WEATHERAPI_API_KEY"),
		WeatherAPIBaseURL: strings.TrimRight(getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1"), "/"),
		HistoryFile:       getenvDefault("HISTORY_FILE", "temperature-converter-log.txt"),
		LogLevel:          getenvDefault("LOG_LEVEL", "warn"),
		LogFile:           os.Getenv("LOG_FILE"),
		Port:              getenvDefault("PORT", "8080"),
		WatchZips:         splitList(os.Getenv("WATCH_ZIPS")),
	}

	var err error
	if cfg.HTTPTimeout, err = positiveDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = positiveDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = positiveDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.LookupCacheTTL, err = nonNegativeDuration("LOOKUP_CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = nonNegativeDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.LookupRetries, err = nonNegativeInt("LOOKUP_RETRIES", 0); err != nil {
		return nil, err
	}
	// roughly 24h at 15-minute intervals
	if cfg.StoreMaxHistory, err = nonNegativeInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func positiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func nonNegativeDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative duration", key)
	}
	return d, nil
}

func nonNegativeInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative integer", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
