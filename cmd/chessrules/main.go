// chessrules validates chess positions and moves and drives a UCI engine
// from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/config"
)

const programVersion = "0.1.0"

// command is one subcommand. run receives the arguments after its name.
type command struct {
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

// environment is what every subcommand works with.
type environment struct {
	cfg    *config.Config
	logger zerolog.Logger
	stderr io.Writer
}

var commands = map[string]command{
	"perft":   {"Count leaf nodes of the move tree", runPerft},
	"legal":   {"List legal moves in a position", runLegal},
	"status":  {"Replay moves and report the game status", runStatus},
	"play":    {"Replay moves with an engine evaluation after each ply", runPlay},
	"analyse": {"Evaluate every FEN in a file with a pool of engines", runAnalyse},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	g := newGlobalFlags(stderr)
	g.fs.Usage = func() { usage(stderr, g.fs) }
	if err := g.fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *g.help {
		usage(stdout, g.fs)
		return 0
	}
	if *g.version {
		fmt.Fprintf(stdout, "chessrules version %s\n", programVersion)
		return 0
	}

	rest := g.fs.Args()
	if len(rest) == 0 {
		usage(stderr, g.fs)
		return 2
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command %q\n\n", rest[0])
		usage(stderr, g.fs)
		return 2
	}

	out, closeOut, err := openOutput(*g.outputFile, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating output file %s: %v\n", *g.outputFile, err)
		return 1
	}
	defer closeOut()
	logOut, closeLog, err := openLog(*g.logFile, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening log file %s: %v\n", *g.logFile, err)
		return 1
	}
	defer closeLog()

	cfg, err := g.buildConfig(out, logOut)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	env := &environment{
		cfg:    cfg,
		logger: cfg.NewLogger().With().Str("command", rest[0]).Logger(),
		stderr: stderr,
	}
	env.logger.Debug().Strs("args", rest[1:]).Msg("starting")

	if err := cmd.run(ctx, env, rest[1:]); err != nil {
		env.logger.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openOutput opens the report destination.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	file, err := os.Create(path) //nolint:gosec // G304: CLI tool writes user-specified files
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// openLog opens the log destination, appending to an existing file.
func openLog(path string, stderr io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stderr, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: chessrules [options] <command> [command options]\n\n")
	fmt.Fprintf(w, "Checks chess positions and moves, and evaluates them with a UCI engine.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nOptions:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nRun 'chessrules <command> -help' for command options.\n")
}
