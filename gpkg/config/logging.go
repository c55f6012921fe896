package config

import (
	"io"
	"os"
	"time"

	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/rs/zerolog"
)

var ErrLogFileOpenFailed = errors.MustNewCode("config.log_file_open_failed")

// SetupLogger creates a configured zerolog logger based on the configuration.
func SetupLogger(cfg *Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Logger{}, errors.Wrapf(ErrConfigInvalidLogLevel, err, "invalid log level %q", cfg.Log.Level)
	}

	var out io.Writer = os.Stderr
	if cfg.Log.FilePath != "" {
		f, err := os.OpenFile(cfg.Log.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Logger{}, errors.Wrap(ErrLogFileOpenFailed, err, "failed to open log file").
				AddContext("path", cfg.Log.FilePath)
		}
		out = f
	}

	if cfg.Log.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("component", "geobox").
		Logger()

	return logger, nil
}
