package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.API.BaseURL != "http://localhost:8080/api/v1" {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected memory cache backend, got %q", cfg.Cache.Backend)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected info log level, got %q", cfg.Log.Level)
	}
	if cfg.UI.Theme != "system" {
		t.Errorf("expected system theme, got %q", cfg.UI.Theme)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SWIFTCAB_API_URL", "https://api.swiftcab.example/api/v1")
	t.Setenv("SWIFTCAB_API_TIMEOUT", "30s")
	t.Setenv("SWIFTCAB_CACHE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SWIFTCAB_THEME", "dark")

	cfg := Load()

	if cfg.API.BaseURL != "https://api.swiftcab.example/api/v1" {
		t.Errorf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("unexpected cache backend %q", cfg.Cache.Backend)
	}
	if cfg.Cache.DB != 3 {
		t.Errorf("unexpected redis db %d", cfg.Cache.DB)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("unexpected theme %q", cfg.UI.Theme)
	}
}

func TestInvalidNumericFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SWIFTCAB_API_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Cache.DB != 0 {
		t.Errorf("expected fallback redis db 0, got %d", cfg.Cache.DB)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("expected fallback timeout, got %v", cfg.API.Timeout)
	}
}
