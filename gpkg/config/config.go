// Package config holds the geobox configuration file format and the logger
// construction that goes with it.
package config

import (
	"os"

	"github.com/geoboxdev/geobox/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Package-specific error codes for configuration handling
var (
	ErrConfigFileReadFailed  = errors.MustNewCode("config.file_read_failed")
	ErrConfigParseFailed     = errors.MustNewCode("config.parse_failed")
	ErrConfigInvalidLogLevel = errors.MustNewCode("config.invalid_log_level")
)

// Config represents the geobox configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`    // "json" or "console"
	FilePath string `yaml:"file_path"` // optional log file, stderr when empty
}

// StorageConfig represents container storage configuration
type StorageConfig struct {
	// Path is the default GeoPackage file operated on when a command does
	// not name one explicitly.
	Path string `yaml:"path"`
}

// LoadDefaultConfig returns a default configuration
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Path: "geobox.gpkg",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(ErrConfigFileReadFailed, err, "failed to read config file").
			AddContext("path", filename)
	}

	cfg := LoadDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(ErrConfigParseFailed, err, "failed to parse config file").
			AddContext("path", filename)
	}

	return cfg, nil
}
