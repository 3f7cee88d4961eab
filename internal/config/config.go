package config

// Config is the main porticod configuration.
type Config struct {
	// Gateway server
	Gateway GatewayConfig `json:"gateway" mapstructure:"gateway"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Provider status cache
	Cache CacheConfig `json:"cache" mapstructure:"cache"`

	// Dispatch behavior
	Dispatch DispatchConfig `json:"dispatch" mapstructure:"dispatch"`
}

// GatewayConfig holds gateway server configuration.
type GatewayConfig struct {
	Host         string `json:"host" mapstructure:"host"`
	Port         int    `json:"port" mapstructure:"port"`
	SharedSecret string `json:"shared_secret" mapstructure:"shared_secret"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Console   bool   `json:"console" mapstructure:"console"`
	Pretty    bool   `json:"pretty" mapstructure:"pretty"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// CacheConfig holds provider status cache configuration.
type CacheConfig struct {
	TTLSeconds             int      `json:"ttl_seconds" mapstructure:"ttl_seconds"`
	RefreshIntervalSeconds int      `json:"refresh_interval_seconds" mapstructure:"refresh_interval_seconds"`
	ActivityWindowMinutes  int      `json:"activity_window_minutes" mapstructure:"activity_window_minutes"`
	Providers              []string `json:"providers" mapstructure:"providers"`
}

// DispatchConfig holds dispatcher behavior configuration.
type DispatchConfig struct {
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			Host: "127.0.0.1",
			Port: 8420,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Console:   true,
			Pretty:    true,
			Redaction: true,
		},
		Cache: CacheConfig{
			TTLSeconds:             300,
			RefreshIntervalSeconds: 60,
			ActivityWindowMinutes:  30,
			Providers:              []string{"openai", "elevenlabs"},
		},
		Dispatch: DispatchConfig{
			TimeoutSeconds: 30,
		},
	}
}
