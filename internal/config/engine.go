package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

// DefaultEnginePath is where the engine is looked for when none is configured.
const DefaultEnginePath = "/usr/local/bin/stockfish"

// EngineConfig holds settings for the UCI engine subprocess.
type EngineConfig struct {
	// Path is the engine executable
	Path string

	// Depth is the search depth used when a request sets no limit
	Depth int

	// MoveTime, when set, searches for a fixed time instead of to a depth
	MoveTime time.Duration

	// Threads and Hash are sent as UCI options when positive
	Threads int
	Hash    int

	// Options are further setoption name/value pairs
	Options map[string]string

	HandshakeTimeout time.Duration
	QuitTimeout      time.Duration

	// MateScore is the centipawn value a forced mate is shown as
	MateScore int
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Path:             DefaultEnginePath,
		Depth:            uci.DefaultDepth,
		HandshakeTimeout: uci.DefaultHandshakeTimeout,
		QuitTimeout:      uci.DefaultQuitTimeout,
		MateScore:        uci.DefaultMateScore,
	}
}

// Validate checks that the engine configuration is usable.
func (e *EngineConfig) Validate() error {
	if e.Path == "" {
		return fmt.Errorf("engine path is empty: %w", errors.ErrInvalidConfig)
	}
	if e.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d: %w", e.Depth, errors.ErrInvalidConfig)
	}
	if e.MoveTime < 0 {
		return fmt.Errorf("move time must not be negative, got %v: %w", e.MoveTime, errors.ErrInvalidConfig)
	}
	if e.Threads < 0 || e.Hash < 0 {
		return fmt.Errorf("threads (%d) and hash (%d) must not be negative: %w",
			e.Threads, e.Hash, errors.ErrInvalidConfig)
	}
	if e.MateScore <= 0 {
		return fmt.Errorf("mate score must be positive, got %d: %w", e.MateScore, errors.ErrInvalidConfig)
	}
	return nil
}

// Limit returns the search limit requests should use.
func (e *EngineConfig) Limit() uci.Limit {
	if e.MoveTime > 0 {
		return uci.Limit{MoveTime: e.MoveTime}
	}
	return uci.Limit{Depth: e.Depth}
}

// EngineOptions returns the client options for this configuration, logging to
// logger.
func (c *Config) EngineOptions(logger zerolog.Logger) uci.Options {
	extra := make(map[string]string, len(c.Engine.Options))
	for name, value := range c.Engine.Options {
		extra[name] = value
	}
	return uci.Options{
		Depth:            c.Engine.Depth,
		Threads:          c.Engine.Threads,
		Hash:             c.Engine.Hash,
		Extra:            extra,
		HandshakeTimeout: c.Engine.HandshakeTimeout,
		QuitTimeout:      c.Engine.QuitTimeout,
		Logger:           &logger,
	}
}
