package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_DIR", "CACHE_MAX_ENTRIES", "CACHE_TTL", "MAX_UPLOAD_BYTES"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("expected default port 8082, got %q", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("expected default data dir, got %q", cfg.DataDir)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("expected default TTL 10m, got %v", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_MAX_ENTRIES", "5")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("expected TTL 30s, got %v", cfg.CacheTTL)
	}
	if cfg.CacheMaxEntries != 5 {
		t.Fatalf("expected 5 entries, got %d", cfg.CacheMaxEntries)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Port:            "not-a-port",
		CacheMaxEntries: 0,
		CacheTTL:        time.Millisecond,
		MaxUploadBytes:  10,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"invalid port", "cache size", "cache TTL", "upload limit"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error, got: %s", want, msg)
		}
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := Load()
	cfg.Port = "70000"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected out-of-range port to fail")
	}
}
