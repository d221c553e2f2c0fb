package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "booking.tasks", cfg.TaskExchange)
	assert.Equal(t, 30*time.Minute, cfg.BookingMinLead)
	assert.Equal(t, 90*24*time.Hour, cfg.BookingMaxAdvance)
	assert.Equal(t, 60*time.Minute, cfg.ReminderLead)
	assert.Equal(t, time.UTC, cfg.BookingTimezone)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSizeBytes)
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "s")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("BOOKING_MIN_LEAD", "1h")
	t.Setenv("BOOKING_MAX_ADVANCE_DAYS", "30")
	t.Setenv("BOOKING_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, time.Hour, cfg.BookingMinLead)
	assert.Equal(t, 30*24*time.Hour, cfg.BookingMaxAdvance)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("BOOKING_MIN_LEAD", "soon")
	_, err := Load()
	assert.Error(t, err)
}
