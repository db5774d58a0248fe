package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOCALFIX_API_URL", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("default base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeoutSeconds != 0 {
		t.Errorf("default timeout = %d, want 0 (no timeout)", cfg.API.RequestTimeoutSeconds)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logger.Level)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOCALFIX_API_URL", "http://api.internal:9000")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://api.internal:9000" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout() != 30*time.Second {
		t.Errorf("timeout = %v", cfg.API.RequestTimeout())
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logger.Level)
	}
}

func TestRequestTimeoutZeroMeansNone(t *testing.T) {
	if d := (APIConfig{RequestTimeoutSeconds: 0}).RequestTimeout(); d != 0 {
		t.Errorf("got %v", d)
	}
	if d := (APIConfig{RequestTimeoutSeconds: -5}).RequestTimeout(); d != 0 {
		t.Errorf("negative seconds should mean none, got %v", d)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.RequestTimeoutSeconds != 0 {
		t.Errorf("garbage timeout parsed to %d", cfg.API.RequestTimeoutSeconds)
	}
}
