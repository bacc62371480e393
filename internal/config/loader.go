package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration of the hub service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	TickInterval     time.Duration
	SnapshotInterval time.Duration
	LogLevel         string
}

// fileConfig mirrors Config for the optional YAML file. Environment
// variables win over file values.
type fileConfig struct {
	HTTPPort         int    `yaml:"http_port"`
	SQLiteDSN        string `yaml:"sqlite_dsn"`
	TickInterval     string `yaml:"tick_interval"`
	SnapshotInterval string `yaml:"snapshot_interval"`
	LogLevel         string `yaml:"log_level"`
}

// Load builds the configuration from defaults, the optional YAML file named
// by HUB_CONFIG_FILE, then HUB_* environment variables, in that order.
//
// Missing required values and unparsable values are accumulated and reported
// together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:hub.db",
		TickInterval:     time.Second,
		SnapshotInterval: 30 * time.Second,
		LogLevel:         "info",
	}

	invalid := make([]string, 0, 2)

	if path := strings.TrimSpace(os.Getenv("HUB_CONFIG_FILE")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if portValue := strings.TrimSpace(os.Getenv("HUB_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "HUB_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("HUB_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if tickValue := strings.TrimSpace(os.Getenv("HUB_TICK_INTERVAL")); tickValue != "" {
		tick, err := time.ParseDuration(tickValue)
		if err != nil || tick < time.Second {
			invalid = append(invalid, "HUB_TICK_INTERVAL")
		} else {
			cfg.TickInterval = tick
		}
	}

	if snapshotValue := strings.TrimSpace(os.Getenv("HUB_SNAPSHOT_INTERVAL")); snapshotValue != "" {
		interval, err := time.ParseDuration(snapshotValue)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "HUB_SNAPSHOT_INTERVAL")
		} else {
			cfg.SnapshotInterval = interval
		}
	}

	if level := strings.TrimSpace(os.Getenv("HUB_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "HUB_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if file.HTTPPort > 0 {
		cfg.HTTPPort = file.HTTPPort
	}
	if file.SQLiteDSN != "" {
		cfg.SQLiteDSN = file.SQLiteDSN
	}
	if file.TickInterval != "" {
		tick, err := time.ParseDuration(file.TickInterval)
		if err != nil || tick < time.Second {
			return fmt.Errorf("config: %s: invalid tick_interval %q", path, file.TickInterval)
		}
		cfg.TickInterval = tick
	}
	if file.SnapshotInterval != "" {
		interval, err := time.ParseDuration(file.SnapshotInterval)
		if err != nil || interval <= 0 {
			return fmt.Errorf("config: %s: invalid snapshot_interval %q", path, file.SnapshotInterval)
		}
		cfg.SnapshotInterval = interval
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	return nil
}
