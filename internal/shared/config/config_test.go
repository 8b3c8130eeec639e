package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, 5, cfg.Booking.MaxSeatSelect)
	assert.Equal(t, "redis", cfg.Wizard.Store)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Kafka.Enabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "tickets")
	t.Setenv("JWT_EXPIRES_IN", "600")
	t.Setenv("REDIS_WIZARD_TTL", "45m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("WIZARD_STORE", "BADGER")
	t.Setenv("BOOKING_MAX_SEAT_SELECT", "not-a-number")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.True(t, cfg.IsProduction())
	assert.Contains(t, cfg.Database.DSN, "host=db.internal")
	assert.Contains(t, cfg.Database.DSN, "dbname=tickets")
	assert.Equal(t, 10*time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, 45*time.Minute, cfg.Redis.WizardTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "badger", cfg.Wizard.Store)
	assert.Equal(t, 5, cfg.Booking.MaxSeatSelect)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg.GinMode = "release"
	cfg.Wizard.Store = "memcached"
	cfg.Booking.MaxSeatSelect = 9
	cfg.Kafka.Enabled = true
	cfg.Kafka.Brokers = nil

	err := cfg.Validate()
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "memcached")
	assert.ErrorContains(t, err, "BOOKING_MAX_SEAT_SELECT")
	assert.ErrorContains(t, err, "KAFKA_BROKERS")
}

func TestValidateBadgerNeedsPath(t *testing.T) {
	cfg := Load()
	cfg.Wizard.Store = "badger"
	cfg.Wizard.BadgerPath = ""
	assert.ErrorContains(t, cfg.Validate(), "WIZARD_BADGER_PATH")
}
