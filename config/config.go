package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the restaurant backend, e.g. "https://api.example.com".
	// All endpoints hang off <APIBaseURL>/api/v1.
	APIBaseURL string

	// StoragePath is the sqlite file holding the per-device session and cart
	// snapshots. ":memory:" gives a non-durable store.
	StoragePath string

	// PollInterval is how often the unpaid-orders view refreshes while a
	// session is authenticated.
	PollInterval time.Duration

	// CountryCode is prefixed to phone-number identifiers.
	CountryCode string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	cfg := &Config{
		APIBaseURL:   getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		StoragePath:  getEnv("STORAGE_PATH", "tableside.db"),
		PollInterval: 10 * time.Second,
		CountryCode:  getEnv("COUNTRY_CODE", "+54"),
	}

	if raw := os.Getenv("POLL_INTERVAL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.PollInterval = time.Duration(secs) * time.Second
		} else {
			log.Printf("Warning: invalid POLL_INTERVAL_SECONDS %q, using default", raw)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
