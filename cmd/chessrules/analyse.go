package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/rules"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

// analysisJob is one line of the input file.
type analysisJob struct {
	index int
	fen   string
}

// runAnalyse evaluates every FEN in a file. Each worker owns one engine
// process; reports come out in input order. A bad FEN is reported in place
// and does not stop the run.
func runAnalyse(ctx context.Context, env *environment, args []string) error {
	fs := subcommandFlags("analyse", env)
	fensFile := fs.String("fens", "-", "File with one FEN per line, - for stdin")
	concurrency := fs.Int("concurrency", 1, "Engine processes to run in parallel")
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if *concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d: %w", *concurrency, errors.ErrInvalidConfig)
	}

	fens, err := readFENs(*fensFile)
	if err != nil {
		return err
	}
	env.logger.Info().Int("positions", len(fens)).Int("concurrency", *concurrency).Msg("analysis started")

	reports := make([]*output.Report, len(fens))
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan analysisJob)
	g.Go(func() error {
		defer close(jobs)
		for i, fen := range fens {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- analysisJob{index: i, fen: fen}:
			}
		}
		return nil
	})

	workers := *concurrency
	if workers > len(fens) {
		workers = len(fens)
	}
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return analyseWorker(ctx, env, jobs, reports)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	env.logger.Info().Int("positions", len(fens)).Msg("analysis finished")
	return writeReports(env, reports...)
}

// analyseWorker evaluates jobs until the channel closes. Each job writes only
// its own slot of reports.
func analyseWorker(ctx context.Context, env *environment, jobs <-chan analysisJob, reports []*output.Report) error {
	engine, err := uci.Start(ctx, env.cfg.Engine.Path, env.cfg.EngineOptions(env.logger))
	if err != nil {
		return err
	}
	defer engine.Shutdown(context.Background()) //nolint:errcheck // best effort on exit

	for job := range jobs {
		board, err := rules.ParseFEN(job.fen)
		if err != nil {
			env.logger.Warn().Err(err).Int("line", job.index+1).Msg("skipping position")
			reports[job.index] = &output.Report{FEN: job.fen, Error: err.Error()}
			continue
		}

		report := output.NewReport(board, nil)
		if !rules.GameStatus(board, nil).IsOver() {
			req, err := engine.RequestEvaluation(ctx, uci.PositionFromBoard(board), env.cfg.Engine.Limit())
			if err != nil {
				return err
			}
			eval, err := req.Wait(ctx)
			if err != nil {
				return err
			}
			report.SetEvaluation(eval, env.cfg.Engine.MateScore)
		}
		reports[job.index] = report
		env.logger.Debug().Int("line", job.index+1).Str("fen", job.fen).Msg("position analysed")
	}
	return nil
}

// readFENs reads non-empty, non-comment lines from path or stdin.
func readFENs(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}

	var fens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens, scanner.Err()
}
