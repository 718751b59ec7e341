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
	assert.Equal(t, "0.0.0.0:8085", cfg.Server.Address())
	assert.Equal(t, StateBackendMemory, cfg.State.Backend)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "@every 1m", cfg.Reconcile.Schedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("API_BASE_URL", "https://books.example.com/")
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StateBackendRedis, cfg.State.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Address())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STATE_BACKEND", "mongo")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load()

	assert.ErrorContains(t, err, "invalid API_TIMEOUT")
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "not a url")

	_, err := Load()

	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
