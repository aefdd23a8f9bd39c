package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "3001" || cfg.Strategy != "best_day" || cfg.ScanHorizonDays != 14 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if !strings.Contains(cfg.DSN(), "dbname=equipment") {
		t.Errorf("Expected DSN built from DB_* settings, got %s", cfg.DSN())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
port: "8080"
availability_strategy: every_day
scan_cron: "0 6 * * *"
scan_horizon_days: 30
throttle_window: 30s
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_SECONDS", "60")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/eq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected env to override file port, got %s", cfg.Port)
	}
	if cfg.Strategy != "every_day" || cfg.ScanCron != "0 6 * * *" || cfg.ScanHorizonDays != 30 {
		t.Errorf("Expected file values, got %+v", cfg)
	}
	if cfg.ThrottleWindow != 30*time.Second {
		t.Errorf("Expected 30s throttle window, got %v", cfg.ThrottleWindow)
	}
	if cfg.TokenTTL != time.Minute {
		t.Errorf("Expected 1m token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.DSN() != "postgres://u:p@db:5432/eq" {
		t.Errorf("Expected DATABASE_URL to win, got %s", cfg.DSN())
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"bad integer", map[string]string{"THROTTLE_LIMIT": "many"}},
		{"zero horizon", map[string]string{"SCAN_HORIZON_DAYS": "0"}},
		{"missing file", map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("Expected error for %s", tc.name)
			}
		})
	}
}
