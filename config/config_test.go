package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.Equal(t, 10*time.Second, cfg.Integrations.Timeout)
	assert.Equal(t, "eu", cfg.Integrations.ZohoRegion)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Redis.Enabled())

	v, ok := cfg.Integrations.Values.Lookup(KeyStripeSecretKey)
	assert.True(t, ok)
	assert.Equal(t, "sk_test_123", v)

	_, ok = cfg.Integrations.Values.Lookup(KeyPayPalClientID)
	assert.False(t, ok)
}

func TestMapSource(t *testing.T) {
	src := MapSource{KeyResendAPIKey: "re_123"}

	v, ok := src.Lookup(KeyResendAPIKey)
	assert.True(t, ok)
	assert.Equal(t, "re_123", v)
	assert.Equal(t, "", src.Get(KeySendGridAPIKey))
}
