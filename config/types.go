package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the hyperlocal API endpoint and developer credentials
type APIConfig struct {
	Host    string `mapstructure:"host"`
	Version string `mapstructure:"version"`
	Key     string `mapstructure:"key"`
	Secret  string `mapstructure:"secret"`
}

// HTTPConfig controls how the CLI issues requests
type HTTPConfig struct {
	// Timeout bounds each command's requests
	Timeout time.Duration `mapstructure:"timeout"`
	// Concurrency bounds parallel requests for batch commands
	Concurrency int `mapstructure:"concurrency"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
