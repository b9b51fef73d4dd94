// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// globalFlags are accepted before the subcommand name.
type globalFlags struct {
	fs *flag.FlagSet

	// Output options
	jsonOutput *bool
	colorMode  *string
	noBoard    *bool
	outputFile *string

	// Logging
	logFile   *string
	verbosity *int

	// Engine options
	enginePath *string
	depth      *int
	moveTime   *time.Duration
	threads    *int
	hash       *int
	options    engineOptions

	workers *int

	version *bool
	help    *bool
}

func newGlobalFlags(stderr io.Writer) *globalFlags {
	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)
	fs.SetOutput(stderr)

	g := &globalFlags{
		fs: fs,

		jsonOutput: fs.Bool("json", false, "Write reports as JSON"),
		colorMode:  fs.String("color", "auto", "Colour the board: auto, always, never"),
		noBoard:    fs.Bool("noboard", false, "Don't draw the board in text reports"),
		outputFile: fs.String("o", "", "Output file (default: stdout)"),

		logFile:   fs.String("log", "", "Log file (default: stderr)"),
		verbosity: fs.Int("v", 0, "Verbosity: 0=warnings, 1=progress, 2=debug, 3=engine traffic"),

		enginePath: fs.String("engine", "", "UCI engine executable (default: $"+config.EnvEngine+" or "+config.DefaultEnginePath+")"),
		depth:      fs.Int("depth", 0, "Engine search depth (default: $"+config.EnvDepth+" or 15)"),
		moveTime:   fs.Duration("movetime", 0, "Search each position for this long instead of to a depth"),
		threads:    fs.Int("threads", 0, "Engine Threads option"),
		hash:       fs.Int("hash", 0, "Engine Hash option in MB"),

		workers: fs.Int("workers", 1, "Parallel workers for perft -divide"),

		version: fs.Bool("version", false, "Print version and exit"),
		help:    fs.Bool("help", false, "Show help"),
	}
	fs.Var(&g.options, "option", "Engine option as name=value (repeatable)")
	return g
}

// buildConfig turns parsed flags into a validated Config. Flags override the
// environment, which overrides the defaults.
func (g *globalFlags) buildConfig(stdout, stderr io.Writer) (*config.Config, error) {
	b := config.NewConfigBuilder().
		WithOutput(stdout).
		WithLogFile(stderr).
		WithVerbosity(*g.verbosity).
		WithJSONOutput(*g.jsonOutput).
		WithWorkers(*g.workers).
		WithThreads(*g.threads).
		WithHash(*g.hash).
		WithMoveTime(*g.moveTime)
	for _, opt := range g.options {
		b.WithEngineOption(opt.name, opt.value)
	}
	cfg := b.Build()

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if *g.enginePath != "" {
		cfg.Engine.Path = *g.enginePath
	}
	if *g.depth != 0 {
		cfg.Engine.Depth = *g.depth
	}
	cfg.Output.ShowBoard = !*g.noBoard

	color, err := colorEnabled(*g.colorMode, stdout)
	if err != nil {
		return nil, err
	}
	cfg.Output.Color = color

	return cfg, cfg.Validate()
}

// colorEnabled resolves a -color mode. "auto" colours only a terminal.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("-color %q: want auto, always or never: %w", mode, errors.ErrInvalidConfig)
	}
}

type engineOption struct {
	name, value string
}

// engineOptions collects repeated -option name=value flags.
type engineOptions []engineOption

func (o *engineOptions) String() string {
	parts := make([]string, 0, len(*o))
	for _, opt := range *o {
		parts = append(parts, opt.name+"="+opt.value)
	}
	return strings.Join(parts, ",")
}

func (o *engineOptions) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("want name=value, got %q", s)
	}
	*o = append(*o, engineOption{name: name, value: strings.TrimSpace(value)})
	return nil
}
