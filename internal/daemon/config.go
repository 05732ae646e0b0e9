// Package daemon manages the screenlog daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Library   LibraryConfig   `toml:"library"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// LibraryConfig controls where the watch library lives.
type LibraryConfig struct {
	Dir string `toml:"dir"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := screenlogHome()
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8710,
			CORSOrigins: []string{"*"},
		},
		Library: LibraryConfig{
			Dir: home,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "screenlog.log"),
		},
	}
}

// LoadConfig reads config from ~/.screenlog/config.toml, falling back
// to defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(screenlogHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Library.Dir == "" {
		cfg.Library.Dir = screenlogHome()
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.screenlog/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(screenlogHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// screenlogHome returns the screenlog data directory.
func screenlogHome() string {
	if env := os.Getenv("SCREENLOG_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".screenlog")
}
