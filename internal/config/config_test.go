package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Providers.Mode != ProviderModeMock {
		t.Errorf("expected default mode mock, got %s", cfg.Providers.Mode)
	}
	if cfg.Collector.CollectInterval != time.Minute {
		t.Errorf("expected default collect interval 1m, got %s", cfg.Collector.CollectInterval)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "99999")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestLoad_RealModeRequiresKey(t *testing.T) {
	t.Setenv("PROVIDERS_MODE", "real")
	t.Setenv("OPENWEATHER_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when real mode has no API key")
	}

	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed with API key set: %v", err)
	}
	if cfg.Providers.Mode != ProviderModeReal {
		t.Errorf("expected mode real, got %s", cfg.Providers.Mode)
	}
}

func TestLoad_CollectIntervalTooShort(t *testing.T) {
	t.Setenv("COLLECT_INTERVAL", "1s")
	if _, err := Load(); err == nil {
		t.Error("expected error for too-short collect interval")
	}
}
