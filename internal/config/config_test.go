package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, 168, cfg.CartTTL)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage driver")
}

func TestLoad_LocalDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("DATA_DIR", "/var/lib/storefront")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverLocal, cfg.StorageDriver)
	assert.Equal(t, "/var/lib/storefront", cfg.DataDir)
}

func TestLoad_KafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestConfig_Durations(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "24")
	t.Setenv("ADMIN_SESSION_TTL_HOURS", "2")
	t.Setenv("PAYMENT_DELAY_MS", "250")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.CartTTLDuration())
	assert.Equal(t, 2*time.Hour, cfg.AdminSessionTTLDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentDelay())
}
