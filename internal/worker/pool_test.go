package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// echo returns a search that reports Index+1 nodes for every task.
func echo(calls *int32) SearchFunc {
	return func(task Task) Result {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		return Result{Index: task.Index, Move: task.Move, Nodes: uint64(task.Index + 1)}
	}
}

// runTasks submits n tasks, closes the pool and returns the results by index.
func runTasks(t *testing.T, p *Pool, n int) []Result {
	t.Helper()
	p.Start()
	go func() {
		for i := 0; i < n; i++ {
			p.Submit(Task{
				Board: *chess.NewBoard(),
				Move:  chess.Move{From: chess.E1, To: chess.F1},
				Depth: 1,
				Index: i,
			})
		}
		p.Close()
	}()

	results := make([]Result, n)
	seen := 0
	for r := range p.Results() {
		results[r.Index] = r
		seen++
	}
	testutil.AssertEqual(t, seen, n, "result count")
	return results
}

func TestPool_EveryTaskAnswered(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		workers int
		buffer  int
		tasks   int
	}{
		{"single worker", 1, 1, 5},
		{"more workers than tasks", 8, 2, 3},
		{"small buffer", 4, 1, 50},
		{"no tasks", 2, 10, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls int32
			p := NewPool(echo(&calls), WithWorkers(tt.workers), WithBufferSize(tt.buffer))
			results := runTasks(t, p, tt.tasks)

			testutil.AssertEqual(t, int(atomic.LoadInt32(&calls)), tt.tasks)
			for i, r := range results {
				testutil.AssertEqual(t, r.Index, i)
				testutil.AssertEqual(t, r.Nodes, uint64(i+1))
				testutil.AssertFalse(t, r.Skipped)
			}
		})
	}
}

func TestNewPool_Options(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		opts        []Option
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"workers", []Option{WithWorkers(6)}, 6, 10},
		{"buffer", []Option{WithBufferSize(3)}, 1, 3},
		{"invalid values ignored", []Option{WithWorkers(0), WithBufferSize(-1)}, 1, 10},
		{"last option wins", []Option{WithWorkers(2), WithWorkers(5)}, 5, 10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewPool(echo(nil), tt.opts...)
			testutil.AssertEqual(t, p.Workers(), tt.wantWorkers)
			testutil.AssertEqual(t, cap(p.tasks), tt.wantBuffer)
			testutil.AssertEqual(t, cap(p.results), tt.wantBuffer)
		})
	}
}

func TestPool_Cancel(t *testing.T) {
	t.Parallel()
	var calls int32
	slow := func(task Task) Result {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return Result{Index: task.Index, Nodes: 1}
	}
	p := NewPool(slow, WithWorkers(1), WithBufferSize(100))
	testutil.AssertFalse(t, p.Cancelled())
	p.Cancel()
	testutil.AssertTrue(t, p.Cancelled())

	results := runTasks(t, p, 20)
	testutil.AssertEqual(t, int(atomic.LoadInt32(&calls)), 0)
	for _, r := range results {
		testutil.AssertTrue(t, r.Skipped, "task %d ran after Cancel", r.Index)
		testutil.AssertEqual(t, r.Nodes, uint64(0))
	}
}

func TestPool_CancelMidway(t *testing.T) {
	t.Parallel()
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	search := func(task Task) Result {
		if task.Index == 0 {
			started <- struct{}{}
			<-release
		}
		return Result{Index: task.Index, Nodes: 1}
	}
	p := NewPool(search, WithWorkers(1), WithBufferSize(10))
	p.Start()
	for i := 0; i < 5; i++ {
		p.Submit(Task{Index: i})
	}
	<-started
	p.Cancel()
	close(release)
	go p.Close()

	var ran, skipped int
	for r := range p.Results() {
		if r.Skipped {
			skipped++
		} else {
			ran++
		}
	}
	// The running task finishes; the queued ones are skipped.
	testutil.AssertEqual(t, ran, 1)
	testutil.AssertEqual(t, skipped, 4)
}

func TestPool_SumsNodes(t *testing.T) {
	t.Parallel()
	p := NewPool(echo(nil), WithWorkers(4), WithBufferSize(4))
	var total uint64
	for _, r := range runTasks(t, p, 10) {
		total += r.Nodes
	}
	testutil.AssertEqual(t, total, uint64(55))
}

func TestPool_NoRace(t *testing.T) {
	t.Parallel()
	var calls int32
	p := NewPool(echo(&calls), WithWorkers(16), WithBufferSize(1))
	runTasks(t, p, 1000)
	testutil.AssertEqual(t, int(atomic.LoadInt32(&calls)), 1000)
}
