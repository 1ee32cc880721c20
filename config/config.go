// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config carries the tunables for the client stack.
type Config struct {
	// APIBaseURL is the storefront API root, e.g. http://localhost:8080/api.
	APIBaseURL string
	// RequestTimeout bounds every gateway request.
	RequestTimeout time.Duration
	// PollInterval is the order-tracking refresh cadence.
	PollInterval time.Duration
	// BreakerEnabled guards gateway calls with a circuit breaker.
	BreakerEnabled bool
	// DevServerPort is the port cmd/fakeapi listens on.
	DevServerPort string
}

// Load reads the .env file if present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("Could not read .env file: ", err)
	}

	return Config{
		APIBaseURL:     getEnv("STOREFRONT_API_URL", "http://localhost:8080/api"),
		RequestTimeout: getDuration("STOREFRONT_REQUEST_TIMEOUT", 10*time.Second),
		PollInterval:   getDuration("STOREFRONT_POLL_INTERVAL", 10*time.Second),
		BreakerEnabled: getBool("STOREFRONT_BREAKER_ENABLED", true),
		DevServerPort:  getEnv("FAKEAPI_PORT", "8080"),
	}
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.WithField("key", key).Warn("Invalid duration, using default: ", err)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.WithField("key", key).Warn("Invalid boolean, using default: ", err)
		return fallback
	}
	return v
}
