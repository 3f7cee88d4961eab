package config

import "fmt"

// Validator validates configuration values.
type Validator struct{}

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the whole configuration.
func (v *Validator) Validate(cfg *Config) error {
	if cfg.Gateway.Port <= 0 || cfg.Gateway.Port > 65535 {
		return fmt.Errorf("gateway port must be in 1..65535, got %d", cfg.Gateway.Port)
	}
	if err := v.ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if cfg.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Cache.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("cache refresh interval must be positive, got %d", cfg.Cache.RefreshIntervalSeconds)
	}
	if cfg.Dispatch.TimeoutSeconds <= 0 {
		return fmt.Errorf("dispatch timeout must be positive, got %d", cfg.Dispatch.TimeoutSeconds)
	}
	return nil
}

// ValidateLogLevel checks a log level name.
func (v *Validator) ValidateLogLevel(level string) error {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level: %q", level)
}
