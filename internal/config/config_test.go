package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.DatabaseURL != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.CullBuffer != 200 || cfg.ZOrderBase != 1000 {
		t.Errorf("engine defaults = %v, %v", cfg.CullBuffer, cfg.ZOrderBase)
	}
	if cfg.MinPanelWidth != 300 || cfg.MinPanelHeight != 200 {
		t.Errorf("min size = %vx%v", cfg.MinPanelWidth, cfg.MinPanelHeight)
	}
	if cfg.AutosaveDelay != 500*time.Millisecond {
		t.Errorf("autosave = %v", cfg.AutosaveDelay)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CULL_BUFFER", "50")
	t.Setenv("AUTOSAVE_DELAY", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.CullBuffer != 50 || cfg.AutosaveDelay != 2*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.SlogLevel())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CULL_BUFFER", "wide")
	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric buffer")
	}
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: " http://a.test, ,http://b.test"}
	got := cfg.Origins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("Origins() = %v", got)
	}
	if (&Config{LogLevel: "loud"}).SlogLevel() != slog.LevelInfo {
		t.Error("unknown level not mapped to info")
	}
}
