// Package config handles configuration management for statusbus.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Monitor MonitorConfig `mapstructure:"monitor" yaml:"monitor"`
	Watcher WatcherConfig `mapstructure:"watcher" yaml:"watcher"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MonitorConfig holds the simulated network monitor configuration.
type MonitorConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// ScenarioFile is an optional YAML scenario; empty means the
	// built-in flap cycle.
	ScenarioFile string `mapstructure:"scenario_file" yaml:"scenario_file"`

	// HoldMS is the default hold between scenario steps.
	HoldMS int `mapstructure:"hold_ms" yaml:"hold_ms"`
}

// WatcherConfig holds file watcher configuration.
type WatcherConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default search paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.statusbus")
		v.AddConfigPath("/etc/statusbus")
	}

	// Environment variable prefix
	v.SetEnvPrefix("STATUSBUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - not an error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Post-process configuration
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Monitor defaults
	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.scenario_file", "")
	v.SetDefault("monitor.hold_ms", 1000)

	// Watcher defaults
	v.SetDefault("watcher.enabled", false)
	v.SetDefault("watcher.path", "")
}

// postProcess applies post-processing to configuration.
func postProcess(cfg *Config) error {
	// An enabled watcher with no path watches the current directory
	if cfg.Watcher.Enabled && cfg.Watcher.Path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.Watcher.Path = cwd
	}

	if cfg.Watcher.Path != "" {
		absPath, err := filepath.Abs(cfg.Watcher.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve watcher path: %w", err)
		}
		cfg.Watcher.Path = absPath
	}

	return nil
}
