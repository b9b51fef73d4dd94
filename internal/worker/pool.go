// Package worker spreads move-tree searches over a fixed set of goroutines.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Task asks for the subtree below Move, played from Board, to be searched.
type Task struct {
	Board chess.Board
	Move  chess.Move
	Depth int // Plies counted from Board, including Move
	Index int // Position of the task in submission order
}

// Result is the outcome of one Task.
type Result struct {
	Index   int
	Move    chess.Move
	Nodes   uint64
	Skipped bool // Set when the pool was cancelled before the task ran
}

// SearchFunc searches one task. It is called concurrently.
type SearchFunc func(task Task) Result

// Pool runs a SearchFunc over submitted tasks.
type Pool struct {
	workers    int
	bufferSize int
	tasks      chan Task
	results    chan Result
	search     SearchFunc
	wg         sync.WaitGroup
	cancelled  atomic.Bool
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of goroutines. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the capacity of the task and result channels.
func WithBufferSize(size int) Option {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool returns a stopped pool with one worker and a buffer of 10 unless
// options say otherwise.
func NewPool(search SearchFunc, opts ...Option) *Pool {
	p := &Pool{
		workers:    1,
		bufferSize: 10,
		search:     search,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tasks = make(chan Task, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		if p.cancelled.Load() {
			p.results <- Result{Index: task.Index, Move: task.Move, Skipped: true}
			continue
		}
		p.results <- p.search(task)
	}
}

// Submit queues a task, blocking while the buffer is full.
func (p *Pool) Submit(task Task) {
	p.tasks <- task
}

// Cancel makes workers skip every task they have not started. Tasks already
// running finish normally.
func (p *Pool) Cancel() {
	p.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (p *Pool) Cancelled() bool {
	return p.cancelled.Load()
}

// Close stops accepting tasks, waits for the workers and closes Results.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
	close(p.results)
}

// Results delivers one Result per submitted task, in completion order.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Workers returns the number of goroutines the pool runs.
func (p *Pool) Workers() int {
	return p.workers
}
