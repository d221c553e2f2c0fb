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
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Task queue (reminders and manager notifications). Empty AMQPURL
	// disables the queue; bookings are still created without reminders.
	AMQPURL      string
	TaskExchange string

	// Media uploads
	MediaDir           string
	MaxUploadSizeBytes int64

	// Booking policy
	BookingMinLead      time.Duration
	BookingMaxAdvance   time.Duration
	ReminderLead        time.Duration
	BookingTimezone     *time.Location
	BookingSweepPeriod  time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
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

	var err error

	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Task queue is optional
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.TaskExchange = getEnv("TASK_EXCHANGE", "booking.tasks")

	cfg.MediaDir = getEnv("MEDIA_DIR", "media")
	maxUploadMB, err := getEnvAsInt("MAX_UPLOAD_SIZE_MB", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %w", err)
	}
	cfg.MaxUploadSizeBytes = int64(maxUploadMB) * 1024 * 1024

	// Booking policy: lead time before slot start, horizon, reminder offset.
	cfg.BookingMinLead, err = getEnvAsDuration("BOOKING_MIN_LEAD", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	maxDays, err := getEnvAsInt("BOOKING_MAX_ADVANCE_DAYS", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_MAX_ADVANCE_DAYS: %w", err)
	}
	cfg.BookingMaxAdvance = time.Duration(maxDays) * 24 * time.Hour

	cfg.ReminderLead, err = getEnvAsDuration("BOOKING_REMINDER_LEAD", 60*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.BookingSweepPeriod, err = getEnvAsDuration("BOOKING_SWEEP_PERIOD", time.Hour)
	if err != nil {
		return nil, err
	}

	tzName := getEnv("BOOKING_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", tzName, err)
	}
	cfg.BookingTimezone = loc

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
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "30m", "1h"). It returns the default value if the variable is not set.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
