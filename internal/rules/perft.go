package rules

import (
	"context"
	"runtime"
	"sort"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Perft counts the leaf positions reachable from board in exactly depth plies.
func Perft(board *chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(board)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := *board
		MakeMove(&next, m)
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// DivideResult is the perft count below one root move.
type DivideResult struct {
	Move  chess.Move
	Nodes uint64
}

// Divide runs perft separately below every root move, spreading the root moves
// over a worker pool. workers < 1 uses one worker per CPU. Results are sorted
// by move text.
func Divide(board *chess.Board, depth, workers int) []DivideResult {
	results, _ := DivideContext(context.Background(), board, depth, workers)
	return results
}

// DivideContext is Divide that gives up when ctx is done. Root moves already
// being searched finish first; the error is then ctx.Err().
func DivideContext(ctx context.Context, board *chess.Board, depth, workers int) ([]DivideResult, error) {
	if depth < 1 {
		return nil, nil
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	moves := LegalMoves(board)
	pool := worker.NewPool(func(task worker.Task) worker.Result {
		next := task.Board
		MakeMove(&next, task.Move)
		return worker.Result{
			Index: task.Index,
			Move:  task.Move,
			Nodes: Perft(&next, task.Depth-1),
		}
	}, worker.WithWorkers(workers), worker.WithBufferSize(len(moves)+1))
	pool.Start()

	stop := context.AfterFunc(ctx, pool.Cancel)
	defer stop()

	go func() {
		for i, m := range moves {
			pool.Submit(worker.Task{Board: *board, Move: m, Depth: depth, Index: i})
		}
		pool.Close()
	}()

	results := make([]DivideResult, len(moves))
	for r := range pool.Results() {
		results[r.Index] = DivideResult{Move: r.Move, Nodes: r.Nodes}
	}
	if pool.Cancelled() {
		return nil, ctx.Err()
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Move.String() < results[j].Move.String()
	})
	return results, nil
}

// TotalNodes sums the node counts of a divide.
func TotalNodes(results []DivideResult) uint64 {
	var total uint64
	for _, r := range results {
		total += r.Nodes
	}
	return total
}
