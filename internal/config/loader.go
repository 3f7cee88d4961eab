package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading.
type Loader struct {
	configPath string
}

// NewLoader creates a loader for an optional config file path.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load reads configuration from file and environment. Environment variables
// use the PORTICO_ prefix with underscores, e.g. PORTICO_GATEWAY_PORT.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("gateway.host", cfg.Gateway.Host)
	v.SetDefault("gateway.port", cfg.Gateway.Port)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.pretty", cfg.Logging.Pretty)
	v.SetDefault("logging.redaction", cfg.Logging.Redaction)
	v.SetDefault("cache.ttl_seconds", cfg.Cache.TTLSeconds)
	v.SetDefault("cache.refresh_interval_seconds", cfg.Cache.RefreshIntervalSeconds)
	v.SetDefault("cache.activity_window_minutes", cfg.Cache.ActivityWindowMinutes)
	v.SetDefault("cache.providers", cfg.Cache.Providers)
	v.SetDefault("dispatch.timeout_seconds", cfg.Dispatch.TimeoutSeconds)

	v.SetEnvPrefix("PORTICO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	out := &Config{}
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := NewValidator().Validate(out); err != nil {
		return nil, err
	}

	return out, nil
}
