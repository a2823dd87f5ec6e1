// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Directory with optional seed CSVs (despesas.csv, fundos.csv,
	// saldos.csv). May point at a missing directory.
	DataDir string

	// Derived-view cache
	CacheMaxEntries int
	CacheTTL        time.Duration

	// Upload limit per request body
	MaxUploadBytes int64
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8082"),
		DataDir:         getEnv("DATA_DIR", "data"),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 64),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 4<<20)),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.CacheMaxEntries < 1 {
		problems = append(problems, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheMaxEntries))
	}
	if c.CacheTTL < time.Second {
		problems = append(problems, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}
	if c.MaxUploadBytes < 1024 {
		problems = append(problems, fmt.Sprintf("invalid upload limit %d: must be at least 1KiB", c.MaxUploadBytes))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
