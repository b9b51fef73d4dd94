package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

// TestOutputConfig_Defaults verifies OutputConfig has sensible defaults
func TestOutputConfig_Defaults(t *testing.T) {
	cfg := NewOutputConfig()

	if cfg.JSONFormat {
		t.Error("JSONFormat should be false by default")
	}
	if cfg.Color {
		t.Error("Color should be false by default")
	}
	if !cfg.ShowBoard {
		t.Error("ShowBoard should be true by default")
	}
	if !cfg.Coordinates {
		t.Error("Coordinates should be true by default")
	}
}

// TestEngineConfig_Defaults verifies EngineConfig has sensible defaults
func TestEngineConfig_Defaults(t *testing.T) {
	cfg := NewEngineConfig()

	if cfg.Path != "/usr/local/bin/stockfish" {
		t.Errorf("Path = %q, want /usr/local/bin/stockfish", cfg.Path)
	}
	if cfg.Depth != 15 {
		t.Errorf("Depth = %d, want 15", cfg.Depth)
	}
	if cfg.MateScore != 10000 {
		t.Errorf("MateScore = %d, want 10000", cfg.MateScore)
	}
	if cfg.MoveTime != 0 {
		t.Errorf("MoveTime = %v, want 0", cfg.MoveTime)
	}
}

// TestEngineConfig_Validate verifies engine config validation
func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*EngineConfig)
		wantErr bool
	}{
		{"defaults are valid", func(*EngineConfig) {}, false},
		{"empty path", func(c *EngineConfig) { c.Path = "" }, true},
		{"zero depth", func(c *EngineConfig) { c.Depth = 0 }, true},
		{"negative move time", func(c *EngineConfig) { c.MoveTime = -time.Second }, true},
		{"negative threads", func(c *EngineConfig) { c.Threads = -1 }, true},
		{"negative hash", func(c *EngineConfig) { c.Hash = -16 }, true},
		{"zero mate score", func(c *EngineConfig) { c.MateScore = 0 }, true},
		{"move time with depth", func(c *EngineConfig) { c.MoveTime = time.Second }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewEngineConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEngineConfig_Limit(t *testing.T) {
	cfg := NewEngineConfig()
	testutil.AssertEqual(t, cfg.Limit(), uci.Limit{Depth: 15})

	cfg.MoveTime = 250 * time.Millisecond
	testutil.AssertEqual(t, cfg.Limit(), uci.Limit{MoveTime: 250 * time.Millisecond})
}

func TestConfig_Validate(t *testing.T) {
	testutil.AssertNoError(t, NewConfig().Validate())

	cfg := NewConfig()
	cfg.Workers = 0
	testutil.AssertErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)

	cfg = NewConfig()
	cfg.Verbosity = -1
	testutil.AssertErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)

	cfg = NewConfig()
	cfg.Engine.Depth = -3
	testutil.AssertErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig, "engine errors propagate")
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantPath  string
		wantDepth int
		wantErr   bool
	}{
		{"nothing set", nil, DefaultEnginePath, 15, false},
		{"engine path", map[string]string{EnvEngine: "/opt/sf"}, "/opt/sf", 15, false},
		{"depth", map[string]string{EnvDepth: "22"}, DefaultEnginePath, 22, false},
		{"empty values ignored", map[string]string{EnvEngine: "", EnvDepth: ""}, DefaultEnginePath, 15, false},
		{"bad depth", map[string]string{EnvDepth: "deep"}, DefaultEnginePath, 15, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			err := cfg.ApplyEnv(func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			})
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			} else {
				testutil.AssertNoError(t, err)
			}
			testutil.AssertEqual(t, cfg.Engine.Path, tt.wantPath)
			testutil.AssertEqual(t, cfg.Engine.Depth, tt.wantDepth)
		})
	}
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := NewConfigBuilder().
		WithDepth(12).
		WithThreads(4).
		WithHash(128).
		WithEngineOption("UCI_ShowWDL", "true").
		WithHandshakeTimeout(3 * time.Second).
		WithQuitTimeout(time.Second).
		Build()

	opts := cfg.EngineOptions(zerolog.Nop())

	testutil.AssertEqual(t, opts.Depth, 12)
	testutil.AssertEqual(t, opts.Threads, 4)
	testutil.AssertEqual(t, opts.Hash, 128)
	testutil.AssertEqual(t, opts.Extra, map[string]string{"UCI_ShowWDL": "true"})
	testutil.AssertEqual(t, opts.HandshakeTimeout, 3*time.Second)
	testutil.AssertEqual(t, opts.QuitTimeout, time.Second)
	testutil.AssertNotNil(t, opts.Logger)

	opts.Extra["Ponder"] = "false"
	testutil.AssertEqual(t, len(cfg.Engine.Options), 1, "options are copied")
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	var out, log bytes.Buffer
	cfg := NewConfigBuilder().
		WithEnginePath("/usr/games/stockfish").
		WithMoveTime(500 * time.Millisecond).
		WithColor(true).
		WithJSONOutput(true).
		WithVerbosity(2).
		WithWorkers(8).
		WithOutput(&out).
		WithLogFile(&log).
		Build()

	if cfg.Engine.Path != "/usr/games/stockfish" {
		t.Errorf("Path = %q, want /usr/games/stockfish", cfg.Engine.Path)
	}
	if cfg.Engine.MoveTime != 500*time.Millisecond {
		t.Errorf("MoveTime = %v, want 500ms", cfg.Engine.MoveTime)
	}
	if !cfg.Output.Color || !cfg.Output.JSONFormat {
		t.Error("Color and JSONFormat should be true")
	}
	if cfg.Verbosity != 2 || cfg.Workers != 8 {
		t.Errorf("Verbosity = %d, Workers = %d, want 2 and 8", cfg.Verbosity, cfg.Workers)
	}
	if cfg.OutputFile != &out || cfg.LogFile != &log {
		t.Error("writers not set")
	}
}

func TestLogLevel(t *testing.T) {
	testutil.AssertEqual(t, LogLevel(0), zerolog.WarnLevel)
	testutil.AssertEqual(t, LogLevel(1), zerolog.InfoLevel)
	testutil.AssertEqual(t, LogLevel(2), zerolog.DebugLevel)
	testutil.AssertEqual(t, LogLevel(5), zerolog.TraceLevel)
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfigBuilder().WithLogFile(&buf).WithVerbosity(1).Build()

	logger := cfg.NewLogger()
	logger.Debug().Msg("hidden")
	logger.Info().Str("fen", "startpos").Msg("shown")

	out := buf.String()
	testutil.AssertNotContains(t, out, "hidden")
	testutil.AssertContains(t, out, `"message":"shown"`)
	testutil.AssertContains(t, out, `"fen":"startpos"`)
}

func TestConfig_NewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfigBuilder().WithLogFile(&buf).WithVerbosity(2).Build()

	logger := cfg.NewLogger()
	logger.Debug().Int("depth", 3).Msg("console line")

	out := buf.String()
	testutil.AssertContains(t, out, "console line")
	testutil.AssertContains(t, out, "depth=3")
	testutil.AssertFalse(t, strings.HasPrefix(out, "{"), "console output is not JSON")
}
