package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash-image-preview" {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if cfg.HistoryLimit != 50 {
		t.Fatalf("history limit = %d, want 50", cfg.HistoryLimit)
	}
	if cfg.MaxImageBytes != 8<<20 {
		t.Fatalf("max image bytes = %d", cfg.MaxImageBytes)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("write timeout = %s", cfg.HTTPWriteTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when GEMINI_API_KEY is unset")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "7")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.HistoryLimit != 5 || cfg.RateLimitPerMin != 7 {
		t.Fatalf("limits = %d/%d", cfg.HistoryLimit, cfg.RateLimitPerMin)
	}
}
