package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. OUTSIDEIN_API_KEY
const EnvPrefix = "OUTSIDEIN"

// Load loads the configuration from file and environment. An explicit
// path must exist; without one, a missing config file leaves the defaults
// and environment in effect.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".outsidein"))
		}
		v.AddConfigPath("/etc/outsidein/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.host", "hyperlocal-api.outside.in")
	v.SetDefault("api.version", "1.1")
	// registered so AutomaticEnv can supply them
	v.SetDefault("api.key", "")
	v.SetDefault("api.secret", "")

	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.concurrency", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Host == "" {
		return fmt.Errorf("api.host is required")
	}
	if strings.ContainsAny(cfg.API.Host, "/?#") {
		return fmt.Errorf("api.host must be a bare host name: %s", cfg.API.Host)
	}
	if cfg.API.Version == "" {
		return fmt.Errorf("api.version is required")
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive: %s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.Concurrency <= 0 {
		return fmt.Errorf("http.concurrency must be positive: %d", cfg.HTTP.Concurrency)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
