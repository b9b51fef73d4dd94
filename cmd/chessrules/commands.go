package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/rules"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

// subcommandFlags returns a flag set for a subcommand that reports parse
// errors to stderr.
func subcommandFlags(name string, env *environment) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

// parseArgs parses subcommand flags; -h and -help are not failures.
func parseArgs(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return false, nil
		}
		return false, err
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return true, nil
}

// runPerft counts the leaf nodes below a position, optionally per root move.
func runPerft(ctx context.Context, env *environment, args []string) error {
	fs := subcommandFlags("perft", env)
	fen := fs.String("fen", rules.InitialFEN, "Position to count from")
	depth := fs.Int("depth", 3, "Depth in plies")
	divide := fs.Bool("divide", false, "Show the count below each root move")
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if *depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d: %w", *depth, errors.ErrInvalidConfig)
	}

	board, err := rules.ParseFEN(*fen)
	if err != nil {
		return err
	}

	start := time.Now()
	report := output.NewReport(board, nil)
	if *depth == 0 {
		report.Perft = &output.PerftReport{Nodes: rules.Perft(board, 0)}
	} else {
		results, err := rules.DivideContext(ctx, board, *depth, env.cfg.Workers)
		if err != nil {
			return err
		}
		report.Perft = output.NewPerftReport(*depth, results)
	}
	if !*divide {
		report.Perft.Divide = nil
	}

	elapsed := time.Since(start)
	env.logger.Info().
		Int("depth", *depth).
		Uint64("nodes", report.Perft.Nodes).
		Dur("elapsed", elapsed).
		Int("workers", env.cfg.Workers).
		Msg("perft complete")

	return writeReports(env, report)
}

// runLegal lists the legal moves of a position, or of one piece.
func runLegal(_ context.Context, env *environment, args []string) error {
	fs := subcommandFlags("legal", env)
	fen := fs.String("fen", rules.InitialFEN, "Position")
	from := fs.String("from", "", "Only moves of the piece on this square, e.g. e2")
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	board, err := rules.ParseFEN(*fen)
	if err != nil {
		return err
	}
	report := output.NewReport(board, nil)

	if *from != "" {
		sq, err := chess.ParseSquare(*from)
		if err != nil {
			return fmt.Errorf("-from: %w", err)
		}
		moves := rules.MovesFrom(board, sq)
		report.LegalMoves = report.LegalMoves[:0]
		for _, m := range moves {
			report.LegalMoves = append(report.LegalMoves, m.String())
			report.Highlight = append(report.Highlight, m.To)
		}
	}
	return writeReports(env, report)
}

// runStatus replays moves through a session and reports where they lead.
func runStatus(_ context.Context, env *environment, args []string) error {
	fs := subcommandFlags("status", env)
	fen := fs.String("fen", rules.InitialFEN, "Starting position")
	moves := fs.String("moves", "", "Moves in UCI notation, space separated")
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	session, err := game.NewSessionFromFEN(*fen, game.WithLogger(env.logger))
	if err != nil {
		return err
	}
	if err := replay(session, strings.Fields(*moves)); err != nil {
		return err
	}

	env.logger.Info().Str("session", session.Name()).Int("ply", session.Ply()).Msg("replayed")
	return writeReports(env, sessionReport(session))
}

// runPlay replays moves and evaluates the position after every ply. With
// -autoplay the engine then plays on by itself.
func runPlay(ctx context.Context, env *environment, args []string) error {
	fs := subcommandFlags("play", env)
	fen := fs.String("fen", rules.InitialFEN, "Starting position")
	moves := fs.String("moves", "", "Moves in UCI notation, space separated")
	autoplay := fs.Int("autoplay", 0, "Let the engine play this many further plies")
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	session, err := game.NewSessionFromFEN(*fen, game.WithLogger(env.logger))
	if err != nil {
		return err
	}
	played := strings.Fields(*moves)
	// Reject bad input before paying for an engine.
	if err := replay(session, played); err != nil {
		return err
	}
	session.Reset()

	engine, err := uci.Start(ctx, env.cfg.Engine.Path, env.cfg.EngineOptions(env.logger))
	if err != nil {
		return err
	}
	defer engine.Shutdown(context.Background()) //nolint:errcheck // best effort on exit

	w := output.NewReportWriter(env.cfg.OutputFile, env.cfg)
	defer w.Close() //nolint:errcheck // flushed explicitly below

	evaluate := func() (*output.Report, uci.Evaluation, error) {
		report := sessionReport(session)
		if session.Status().IsOver() {
			return report, uci.Evaluation{}, nil
		}
		pos := uci.Position{FEN: session.StartFEN(), Moves: session.UCIMoves()}
		req, err := engine.RequestEvaluation(ctx, pos, env.cfg.Engine.Limit())
		if err != nil {
			return nil, uci.Evaluation{}, err
		}
		eval, err := req.Wait(ctx)
		if err != nil {
			return nil, uci.Evaluation{}, err
		}
		report.SetEvaluation(eval, env.cfg.Engine.MateScore)
		return report, eval, nil
	}

	for ply := 0; ; ply++ {
		report, eval, err := evaluate()
		if err != nil {
			return err
		}
		if err := w.WriteReport(report); err != nil {
			return err
		}
		if session.Status().IsOver() {
			break
		}

		var next string
		switch {
		case ply < len(played):
			next = played[ply]
		case ply < len(played)+*autoplay:
			if eval.BestMove == "" {
				return fmt.Errorf("engine gave no move at ply %d", ply+1)
			}
			next = eval.BestMove
		default:
			return w.Flush()
		}
		if err := session.PushUCI(next); err != nil {
			return fmt.Errorf("ply %d: %w", ply+1, err)
		}
	}
	return w.Flush()
}

// replay pushes moves onto session, naming the first one that fails.
func replay(session *game.Session, moves []string) error {
	for i, m := range moves {
		if err := session.PushUCI(m); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return nil
}

// sessionReport describes the session's current position.
func sessionReport(session *game.Session) *output.Report {
	report := output.NewReport(session.Board(), session.History())
	report.Session = session.Name()
	report.Moves = session.UCIMoves()
	if played := session.Moves(); len(played) > 0 {
		last := played[len(played)-1]
		report.LastMove = &last
	}
	return report
}

// writeReports writes reports in the configured format.
func writeReports(env *environment, reports ...*output.Report) error {
	w := output.NewReportWriter(env.cfg.OutputFile, env.cfg)
	for _, r := range reports {
		if err := w.WriteReport(r); err != nil {
			return err
		}
	}
	return w.Close()
}
