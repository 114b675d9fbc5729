package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SETTLEMENTS", "Siófok")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.met.hu", cfg.BaseURL)
	assert.Equal(t, []string{"Siófok"}, cfg.Settlements)
	assert.Equal(t, 60*time.Minute, cfg.ScanInterval)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "methu-forecasts", cfg.KafkaTopic)
	assert.Equal(t, 1000, cfg.ResolverCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("METHU_BASE_URL", "https://met.example.test/")
	t.Setenv("SETTLEMENTS", "Siófok, Eger ,Pécs")
	t.Setenv("SCAN_INTERVAL", "2h")
	t.Setenv("METHU_TIMEOUT", "10s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-forecasts")
	t.Setenv("RESOLVER_CACHE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://met.example.test", cfg.BaseURL)
	assert.Equal(t, []string{"Siófok", "Eger", "Pécs"}, cfg.Settlements)
	assert.Equal(t, 2*time.Hour, cfg.ScanInterval)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-forecasts", cfg.KafkaTopic)
	assert.Equal(t, 50, cfg.ResolverCacheSize)
}

func TestLoad_MissingSettlements(t *testing.T) {
	t.Setenv("SETTLEMENTS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SETTLEMENTS")
}

func TestLoad_ScanIntervalTooShort(t *testing.T) {
	t.Setenv("SETTLEMENTS", "Siófok")
	t.Setenv("SCAN_INTERVAL", "5m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCAN_INTERVAL")
}

func TestLoad_InvalidScanInterval(t *testing.T) {
	t.Setenv("SETTLEMENTS", "Siófok")
	t.Setenv("SCAN_INTERVAL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCAN_INTERVAL")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SETTLEMENTS", "Siófok")
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("SETTLEMENTS", "Siófok")
	t.Setenv("METHU_TIMEOUT", "bad")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "METHU_TIMEOUT")
}

func TestLoad_InvalidCacheSizeFallsBack(t *testing.T) {
	t.Setenv("SETTLEMENTS", "Siófok")
	t.Setenv("RESOLVER_CACHE_SIZE", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.ResolverCacheSize)
}
