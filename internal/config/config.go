package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all simulator configuration
type Config struct {
	Port        string
	JWTSecret   string
	TokenExpiry time.Duration
	RequireAuth bool

	// Policy switches
	AllowPastDeliveryDates bool

	// Optional pinned credentials. When both are set, authenticate only
	// accepts this username with a password matching the bcrypt hash.
	// When unset, any non-empty credentials are accepted (mock behavior).
	SimUsername     string
	SimPasswordHash string
}

// defaultJWTSecret is acceptable here because the simulator never guards real
// resources; it exists so the harness runs with zero configuration.
const defaultJWTSecret = "sapmock-dev-secret"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	expiryMinutes, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_MINUTES", "60"))
	if err != nil || expiryMinutes <= 0 {
		expiryMinutes = 60
	}

	return &Config{
		Port:                   getEnv("PORT", "3002"),
		JWTSecret:              getEnv("JWT_SECRET", defaultJWTSecret),
		TokenExpiry:            time.Duration(expiryMinutes) * time.Minute,
		RequireAuth:            getEnv("REQUIRE_AUTH", "true") == "true",
		AllowPastDeliveryDates: getEnv("ALLOW_PAST_DELIVERY_DATES", "false") == "true",
		SimUsername:            os.Getenv("SIM_USERNAME"),
		SimPasswordHash:        os.Getenv("SIM_PASSWORD_HASH"),
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
