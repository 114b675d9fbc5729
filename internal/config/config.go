package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinScanInterval is the lowest allowed refresh cadence. met.hu updates its
// settlement forecasts a few times a day; polling faster only burns goodwill.
const MinScanInterval = 30 * time.Minute

// Config holds all service settings, populated from environment variables.
type Config struct {
	BaseURL      string
	Settlements  []string
	ScanInterval time.Duration
	FetchTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing is optional: enabled when brokers are configured.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool

	ResolverCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	scanInterval, err := parseDuration("SCAN_INTERVAL", "60m")
	if err != nil {
		return nil, err
	}
	if scanInterval < MinScanInterval {
		return nil, fmt.Errorf("SCAN_INTERVAL must be at least %s", MinScanInterval)
	}

	fetchTimeout, err := parseDuration("METHU_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		BaseURL:      strings.TrimRight(envOrDefault("METHU_BASE_URL", "https://www.met.hu"), "/"),
		Settlements:  splitList(os.Getenv("SETTLEMENTS")),
		ScanInterval: scanInterval,
		FetchTimeout: fetchTimeout,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "methu-forecasts"),
		KafkaEnabled: len(brokers) > 0,

		ResolverCacheSize: parseResolverCacheSize(),
	}

	if len(cfg.Settlements) == 0 {
		return nil, errors.New("SETTLEMENTS is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// splitList splits a comma-separated value, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseResolverCacheSize() int {
	if s := os.Getenv("RESOLVER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
