package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServiceConfig holds all configuration for the rental service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MongoURI      string
	MongoDB       string
	SweepInterval time.Duration
	KafkaBrokers  []string
}

// Load reads configuration from environment variables, with a .env file
// filling in anything unset; every key has a development default.
func Load() (*ServiceConfig, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	sweepInterval, err := getDuration("RENTAL_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:          getEnv("RENTAL_PORT", "8080"),
		AppEnv:        getEnv("RENTAL_APP_ENV", "development"),
		MongoURI:      getEnv("RENTAL_MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("RENTAL_MONGO_DB", "smart_rentals"),
		SweepInterval: sweepInterval,
		KafkaBrokers:  getBrokers("RENTAL_KAFKA_BROKERS"),
	}, nil
}

// Addr returns the listen address for the HTTP server.
func (c *ServiceConfig) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

// getBrokers parses a comma-separated broker list; empty means event
// publishing is disabled.
func getBrokers(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
