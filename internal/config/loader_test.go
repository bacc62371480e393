package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearHubEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HUB_CONFIG_FILE",
		"HUB_HTTP_PORT",
		"HUB_SQLITE_DSN",
		"HUB_TICK_INTERVAL",
		"HUB_SNAPSHOT_INTERVAL",
		"HUB_LOG_LEVEL",
	} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearHubEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("HTTPPort = %d, want 8080", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:hub.db" {
			t.Fatalf("SQLiteDSN = %q", cfg.SQLiteDSN)
		}
		if cfg.TickInterval != time.Second {
			t.Fatalf("TickInterval = %v, want 1s", cfg.TickInterval)
		}
		if cfg.LogLevel != "info" {
			t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
		}
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		clearHubEnv(t)
		t.Setenv("HUB_HTTP_PORT", "9090")
		t.Setenv("HUB_TICK_INTERVAL", "2s")
		t.Setenv("HUB_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 9090 || cfg.TickInterval != 2*time.Second || cfg.LogLevel != "debug" {
			t.Fatalf("cfg = %+v", cfg)
		}
	})

	t.Run("accumulates invalid values", func(t *testing.T) {
		clearHubEnv(t)
		t.Setenv("HUB_HTTP_PORT", "not-a-port")
		t.Setenv("HUB_TICK_INTERVAL", "500ms")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for invalid values")
		}
		for _, key := range []string{"HUB_HTTP_PORT", "HUB_TICK_INTERVAL"} {
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("error %q does not mention %s", err, key)
			}
		}
	})

	t.Run("reads the YAML file with environment winning", func(t *testing.T) {
		clearHubEnv(t)
		path := filepath.Join(t.TempDir(), "hub.yaml")
		payload := "http_port: 7070\nsqlite_dsn: file:custom.db\nsnapshot_interval: 1m\n"
		if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
			t.Fatalf("write config file: %v", err)
		}
		t.Setenv("HUB_CONFIG_FILE", path)
		t.Setenv("HUB_HTTP_PORT", "6060")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 6060 {
			t.Fatalf("HTTPPort = %d, environment must win", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:custom.db" {
			t.Fatalf("SQLiteDSN = %q", cfg.SQLiteDSN)
		}
		if cfg.SnapshotInterval != time.Minute {
			t.Fatalf("SnapshotInterval = %v", cfg.SnapshotInterval)
		}
	})
}
