package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:8090" {
		t.Errorf("Addr = %q", cfg.App.Addr())
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("storage backend = %q", cfg.Storage.Backend)
	}
	if cfg.Console.PerPage != 8 {
		t.Errorf("per page = %d", cfg.Console.PerPage)
	}
	if cfg.Console.Debounce() != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Console.Debounce())
	}
	if cfg.Session.TokenTTL() != 480*time.Minute {
		t.Errorf("token ttl = %v", cfg.Session.TokenTTL())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("SESSION_STORAGE_BACKEND", "sqlite")
	t.Setenv("CONSOLE_SEARCH_DEBOUNCE_MS", "100")
	t.Setenv("REMOTE_API_URL", "http://staff.internal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9999" {
		t.Errorf("port = %q", cfg.App.Port)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("storage backend = %q", cfg.Storage.Backend)
	}
	if cfg.Console.Debounce() != 100*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Console.Debounce())
	}
	if cfg.Remote.BaseURL != "http://staff.internal" {
		t.Errorf("remote url = %q", cfg.Remote.BaseURL)
	}
}

func TestIntParsingFallsBack(t *testing.T) {
	t.Setenv("CONSOLE_PER_PAGE", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Console.PerPage != 8 {
		t.Errorf("per page = %d, want default on parse failure", cfg.Console.PerPage)
	}
}
