package config

import (
	"time"

	"github.com/rs/zerolog"
)

// LogLevel maps a verbosity to a log level.
func LogLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// NewLogger returns a logger writing to LogFile. From verbosity 2 up the
// output is human-readable rather than JSON.
func (c *Config) NewLogger() zerolog.Logger {
	w := c.LogFile
	if c.Verbosity >= 2 {
		w = zerolog.ConsoleWriter{Out: c.LogFile, NoColor: !c.Output.Color, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(LogLevel(c.Verbosity)).With().Timestamp().Logger()
}
