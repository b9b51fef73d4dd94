package uci

import (
	"context"
	"sync"
)

// Request is a pending evaluation. It resolves exactly once: with the final
// evaluation, with errors.ErrSuperseded when a newer request replaced it, with
// context.Canceled when cancelled, or with an *errors.EngineUnavailableError
// when the engine dies.
type Request struct {
	seq    uint64
	depth  int // resolve once an info line reaches this depth; 0 waits for bestmove
	engine *UCIEngine

	mu       sync.Mutex
	progress Evaluation
	stopWait func() bool // guarded by mu
	settled  bool        // guarded by mu

	once sync.Once
	done chan struct{}
	eval Evaluation
	err  error
}

func newRequest(e *UCIEngine, seq uint64, depth int) *Request {
	return &Request{
		seq:      seq,
		depth:    depth,
		engine:   e,
		progress: Evaluation{Seq: seq},
		done:     make(chan struct{}),
	}
}

// Seq returns the request's sequence number. Later requests have larger numbers.
func (r *Request) Seq() uint64 {
	return r.seq
}

// Done returns a channel that is closed when the request resolves.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Progress returns the most recent partial evaluation.
func (r *Request) Progress() Evaluation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Result blocks until the request resolves and returns its outcome.
func (r *Request) Result() (Evaluation, error) {
	<-r.done
	return r.eval, r.err
}

// Wait blocks until the request resolves or ctx ends. When ctx ends first the
// request is cancelled and ctx's error returned.
func (r *Request) Wait(ctx context.Context) (Evaluation, error) {
	select {
	case <-r.done:
		return r.eval, r.err
	case <-ctx.Done():
		r.Cancel()
		return Evaluation{}, ctx.Err()
	}
}

// Cancel abandons the request. The engine is told to stop, and anything it
// still reports for this search is discarded.
func (r *Request) Cancel() {
	r.engine.cancel(r)
}

// update folds a progress line into the partial evaluation and reports whether
// the target depth has been reached. Only a complete line, one with an exact
// score, can reach it.
func (r *Request) update(fn func(*Evaluation), complete bool) (Evaluation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.progress)
	return r.progress, complete && r.depth > 0 && r.progress.Depth >= r.depth
}

// setStopWait records the function that detaches the request from its
// context. If the request has already resolved, stop is called at once.
func (r *Request) setStopWait(stop func() bool) {
	r.mu.Lock()
	if !r.settled {
		r.stopWait = stop
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	stop()
}

// resolve settles the request. Only the first call has any effect.
func (r *Request) resolve(eval Evaluation, err error) bool {
	resolved := false
	r.once.Do(func() {
		eval.Seq = r.seq
		r.eval, r.err = eval, err
		r.mu.Lock()
		stop := r.stopWait
		r.stopWait, r.settled = nil, true
		r.mu.Unlock()
		if stop != nil {
			stop()
		}
		close(r.done)
		resolved = true
	})
	return resolved
}

func (r *Request) isDone() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
