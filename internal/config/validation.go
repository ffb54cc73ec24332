package config

import (
	"os"

	"statusbus/internal/domain"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}
	if err := validateMonitor(&cfg.Monitor); err != nil {
		return err
	}
	if err := validateWatcher(&cfg.Watcher); err != nil {
		return err
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	if !validLogLevels[cfg.Level] {
		return domain.NewValidationError("logging.level", "must be one of trace, debug, info, warn, error")
	}
	if !validLogFormats[cfg.Format] {
		return domain.NewValidationError("logging.format", "must be console or json")
	}
	return nil
}

func validateMonitor(cfg *MonitorConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.HoldMS <= 0 {
		return domain.NewValidationError("monitor.hold_ms", "must be positive")
	}
	if cfg.ScenarioFile != "" {
		if _, err := os.Stat(cfg.ScenarioFile); err != nil {
			return domain.NewValidationError("monitor.scenario_file", "file does not exist")
		}
	}
	return nil
}

func validateWatcher(cfg *WatcherConfig) error {
	if !cfg.Enabled {
		return nil
	}
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return domain.NewValidationError("watcher.path", "directory does not exist")
	}
	if !info.IsDir() {
		return domain.NewValidationError("watcher.path", "must be a directory")
	}
	return nil
}
