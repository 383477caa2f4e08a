package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
// Collaborators receive the parts they need explicitly; nothing reads
// environment variables after startup.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Google OAuth application credentials for the calendar collaborator.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// TargetCalendarEmail is the calendar owner meetings are booked with.
	TargetCalendarEmail string
	// CalendarTimeZone is attached to created events.
	CalendarTimeZone string
	// CalendarTimeout bounds each remote calendar call.
	CalendarTimeout time.Duration
	// CalendarMaxResults bounds how many upcoming events are fetched.
	CalendarMaxResults int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Google OAuth application credentials are required; calendar access is
	// the whole point of the service.
	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	if cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}
	cfg.GoogleRedirectURL = getEnv("GOOGLE_REDIRECT_URL", "")

	// The fixed calendar owner bookings are made against.
	cfg.TargetCalendarEmail = os.Getenv("TARGET_CALENDAR_EMAIL")
	if cfg.TargetCalendarEmail == "" {
		return nil, fmt.Errorf("TARGET_CALENDAR_EMAIL is required")
	}

	cfg.CalendarTimeZone = getEnv("CALENDAR_TIME_ZONE", "Europe/Warsaw")

	// Per-call timeout for the remote calendar (default: 10s)
	timeoutStr := getEnv("CALENDAR_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_TIMEOUT: %w", err)
	}
	cfg.CalendarTimeout = timeout

	// How many upcoming events to fetch per calendar (default: 10)
	cfg.CalendarMaxResults, err = getEnvAsInt("CALENDAR_MAX_RESULTS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_MAX_RESULTS: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
