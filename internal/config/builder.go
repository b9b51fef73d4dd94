package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithEnginePath sets the engine executable.
func (b *ConfigBuilder) WithEnginePath(path string) *ConfigBuilder {
	b.cfg.Engine.Path = path
	return b
}

// WithDepth sets the default search depth.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Engine.Depth = depth
	return b
}

// WithMoveTime searches for a fixed time per position instead of to a depth.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTime = d
	return b
}

// WithThreads sets the engine's Threads option.
func (b *ConfigBuilder) WithThreads(n int) *ConfigBuilder {
	b.cfg.Engine.Threads = n
	return b
}

// WithHash sets the engine's Hash option in megabytes.
func (b *ConfigBuilder) WithHash(mb int) *ConfigBuilder {
	b.cfg.Engine.Hash = mb
	return b
}

// WithEngineOption adds a setoption name/value pair.
func (b *ConfigBuilder) WithEngineOption(name, value string) *ConfigBuilder {
	if b.cfg.Engine.Options == nil {
		b.cfg.Engine.Options = make(map[string]string)
	}
	b.cfg.Engine.Options[name] = value
	return b
}

// WithHandshakeTimeout bounds the engine's startup handshake.
func (b *ConfigBuilder) WithHandshakeTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.HandshakeTimeout = d
	return b
}

// WithQuitTimeout bounds the wait for the engine to exit.
func (b *ConfigBuilder) WithQuitTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.QuitTimeout = d
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithColor enables coloured board output.
func (b *ConfigBuilder) WithColor(enabled bool) *ConfigBuilder {
	b.cfg.Output.Color = enabled
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithWorkers sets the parallelism for divide and batch analysis.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}
