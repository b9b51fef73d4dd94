// Package config provides configuration for the chessrules command and the
// engine client it drives.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvEngine = "CHESSRULES_ENGINE"
	EnvDepth  = "CHESSRULES_DEPTH"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=warnings, 1=progress, 2=debug, 3=protocol trace
	Workers   int // Parallelism for perft divide and batch analysis

	Engine *EngineConfig
	Output *OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Workers:    1,
		Engine:     NewEngineConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer reports are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	return c.Engine.Validate()
}

// ApplyEnv overrides the engine path and depth from the environment. lookup
// has the signature of os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if path, ok := lookup(EnvEngine); ok && path != "" {
		c.Engine.Path = path
	}
	if v, ok := lookup(EnvDepth); ok && v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvDepth, v, errors.ErrInvalidConfig)
		}
		c.Engine.Depth = depth
	}
	return nil
}
