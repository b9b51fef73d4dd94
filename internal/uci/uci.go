// Package uci drives an external chess engine over the UCI protocol.
//
// The engine runs as a subprocess. A dedicated goroutine reads its output so
// callers never block on it. At most one evaluation is live per engine: a new
// request stops and supersedes the previous one, and output that arrives late
// for a superseded search is discarded by sequence number.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDepth            = 15
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultQuitTimeout      = 2 * time.Second
	DefaultStopTimeout      = 5 * time.Second
)

// Options configures an engine process.
type Options struct {
	Args []string // Extra command-line arguments
	Env  []string // Extra environment variables, "KEY=value"

	Depth   int               // Default search depth for requests without a limit
	Threads int               // Sent as the Threads option when > 0
	Hash    int               // Sent as the Hash option (MB) when > 0
	Extra   map[string]string // Further setoption name/value pairs

	HandshakeTimeout time.Duration // Bound on uci/uciok and isready/readyok
	QuitTimeout      time.Duration // Wait for exit after quit before killing
	StopTimeout      time.Duration // Wait for a stopped search's bestmove

	Logger *zerolog.Logger // nil disables logging
}

// UCIEngine is a client for one engine subprocess.
type UCIEngine struct {
	path   string
	depth  int
	opts   Options
	logger zerolog.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	name   string
	dead   chan struct{} // closed when the engine becomes unusable
	exited chan struct{} // closed after the process has been reaped

	reqMu   sync.Mutex // serialises RequestEvaluation
	writeMu sync.Mutex

	mu       sync.Mutex
	seq      uint64
	live     *Request
	searches []uint64 // sequence numbers of searches still owed a bestmove, oldest first
	idle     chan struct{}
	waiters  map[string]chan struct{}
	deadErr  error

	deadOnce     sync.Once
	shutdownOnce sync.Once
	shutdownErr  error
}

// NewEngine returns a client for the engine at path without starting it.
func NewEngine(path string, opts Options) *UCIEngine {
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if opts.QuitTimeout <= 0 {
		opts.QuitTimeout = DefaultQuitTimeout
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &UCIEngine{
		path:    path,
		depth:   opts.Depth,
		opts:    opts,
		logger:  logger.With().Str("engine", path).Logger(),
		dead:    make(chan struct{}),
		exited:  make(chan struct{}),
		waiters: make(map[string]chan struct{}),
	}
}

// Start launches the engine at path and completes the UCI handshake.
func Start(ctx context.Context, path string, opts Options) (*UCIEngine, error) {
	e := NewEngine(path, opts)
	if err := e.Start(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Start launches the process and performs the handshake: uci/uciok, the
// configured setoption commands, then isready/readyok. Any failure returns an
// *errors.EngineLaunchError and leaves no process running.
func (e *UCIEngine) Start(ctx context.Context) error {
	cmd := exec.Command(e.path, e.opts.Args...)
	if len(e.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), e.opts.Env...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &errors.EngineLaunchError{Path: e.path, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &errors.EngineLaunchError{Path: e.path, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &errors.EngineLaunchError{Path: e.path, Err: err}
	}
	e.cmd = cmd
	e.stdin = stdin
	go e.readLoop(stdout)

	e.logger.Debug().Int("pid", cmd.Process.Pid).Msg("engine started")

	ctx, cancel := context.WithTimeout(ctx, e.opts.HandshakeTimeout)
	defer cancel()

	if err := e.handshake(ctx); err != nil {
		e.kill()
		return &errors.EngineLaunchError{Path: e.path, Err: err}
	}
	e.logger.Info().Str("name", e.Name()).Msg("engine ready")
	return nil
}

func (e *UCIEngine) handshake(ctx context.Context) error {
	if err := e.roundTrip(ctx, "uci", "uciok"); err != nil {
		return err
	}
	for _, line := range e.optionCommands() {
		if err := e.send(line); err != nil {
			return err
		}
	}
	return e.roundTrip(ctx, "isready", "readyok")
}

// optionCommands returns the setoption lines for the configured options, in a
// stable order.
func (e *UCIEngine) optionCommands() []string {
	var lines []string
	if e.opts.Threads > 0 {
		lines = append(lines, fmt.Sprintf("setoption name Threads value %d", e.opts.Threads))
	}
	if e.opts.Hash > 0 {
		lines = append(lines, fmt.Sprintf("setoption name Hash value %d", e.opts.Hash))
	}
	names := make([]string, 0, len(e.opts.Extra))
	for name := range e.opts.Extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("setoption name %s value %s", name, e.opts.Extra[name]))
	}
	return lines
}

// roundTrip sends cmd and waits for a line starting with reply.
func (e *UCIEngine) roundTrip(ctx context.Context, cmd, reply string) error {
	ch := make(chan struct{})
	e.mu.Lock()
	e.waiters[reply] = ch
	e.mu.Unlock()

	if err := e.send(cmd); err != nil {
		return err
	}
	select {
	case <-ch:
		return nil
	case <-e.dead:
		return e.deadError()
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s: %w", reply, ctx.Err())
	}
}

// Name returns the engine's self-reported name, once the handshake has run.
func (e *UCIEngine) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// Depth returns the default search depth.
func (e *UCIEngine) Depth() int {
	return e.depth
}

// RequestEvaluation starts evaluating pos and returns without waiting for the
// result. Any request still live is superseded: it resolves with
// errors.ErrSuperseded and the engine is told to stop. The stopped search's
// bestmove is consumed before the new search starts. Cancelling ctx cancels
// the returned request.
func (e *UCIEngine) RequestEvaluation(ctx context.Context, pos Position, limit Limit) (*Request, error) {
	e.reqMu.Lock()
	defer e.reqMu.Unlock()

	if err := e.unavailable(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.stopCurrent(ctx); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.seq++
	r := newRequest(e, e.seq, limit.targetDepth(e.depth))
	e.mu.Unlock()
	r.setStopWait(context.AfterFunc(ctx, r.Cancel))

	if err := e.send(pos.Command()); err != nil {
		r.resolve(Evaluation{}, err)
		return nil, err
	}

	e.mu.Lock()
	if e.deadErr != nil {
		err := e.deadErr
		e.mu.Unlock()
		r.resolve(Evaluation{}, err)
		return nil, err
	}
	if r.isDone() {
		// Cancelled before the search started.
		e.mu.Unlock()
		return r, nil
	}
	e.live = r
	e.searches = append(e.searches, r.seq)
	e.mu.Unlock()

	if err := e.send(limit.Command(e.depth)); err != nil {
		return nil, err
	}

	e.logger.Debug().Uint64("seq", r.seq).Str("position", pos.Command()).Msg("evaluation requested")
	return r, nil
}

// stopCurrent supersedes the live request and waits until the engine has
// answered every outstanding search with bestmove.
func (e *UCIEngine) stopCurrent(ctx context.Context) error {
	e.mu.Lock()
	prev := e.live
	e.live = nil
	pending := len(e.searches) > 0
	var idle chan struct{}
	if pending {
		if e.idle == nil {
			e.idle = make(chan struct{})
		}
		idle = e.idle
	}
	e.mu.Unlock()

	if prev != nil && prev.resolve(prev.Progress(), errors.ErrSuperseded) {
		e.logger.Debug().Uint64("seq", prev.seq).Msg("evaluation superseded")
	}
	if !pending {
		return nil
	}
	if err := e.send("stop"); err != nil {
		return err
	}

	timer := time.NewTimer(e.opts.StopTimeout)
	defer timer.Stop()
	select {
	case <-idle:
		return nil
	case <-e.dead:
		return e.deadError()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		// Late output is still matched to its search by the queue, so
		// carrying on is safe.
		e.logger.Warn().Dur("timeout", e.opts.StopTimeout).Msg("engine did not answer stop")
		return nil
	}
}

// cancel abandons r if it is still live.
func (e *UCIEngine) cancel(r *Request) {
	e.mu.Lock()
	wasLive := e.live == r
	if wasLive {
		e.live = nil
	}
	e.mu.Unlock()

	if !r.resolve(r.Progress(), context.Canceled) {
		return
	}
	e.logger.Debug().Uint64("seq", r.seq).Msg("evaluation cancelled")
	if wasLive {
		_ = e.send("stop")
	}
}

// readLoop reads engine output until the pipe closes, then reaps the process.
func (e *UCIEngine) readLoop(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		e.handleLine(scanner.Text())
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	e.markDead(&errors.EngineUnavailableError{Op: "read", Err: err})
	if e.cmd != nil {
		_ = e.cmd.Wait()
	}
	close(e.exited)
}

// handleLine routes one line of engine output.
func (e *UCIEngine) handleLine(line string) {
	e.logger.Trace().Str("line", line).Msg("recv")

	keyword := line
	if i := strings.IndexByte(line, ' '); i >= 0 {
		keyword = line[:i]
	}

	switch keyword {
	case "info":
		e.handleInfo(line)
	case "bestmove":
		e.handleBestMove(line)
	case "id":
		if rest, ok := strings.CutPrefix(line, "id name "); ok {
			e.mu.Lock()
			e.name = rest
			e.mu.Unlock()
		}
	case "uciok", "readyok":
		e.mu.Lock()
		ch, ok := e.waiters[keyword]
		delete(e.waiters, keyword)
		e.mu.Unlock()
		if ok {
			close(ch)
		}
	case "option", "copyprotection", "registration", "":
	default:
		e.logger.Debug().
			Err(&errors.ProtocolParseError{Line: line, Reason: "unknown command"}).
			Msg("ignoring engine output")
	}
}

// current returns the live request if it owns the search the engine is
// running now, which is the oldest one still owed a bestmove.
func (e *UCIEngine) current() *Request {
	if e.live == nil || len(e.searches) == 0 || e.searches[0] != e.live.seq {
		return nil
	}
	return e.live
}

func (e *UCIEngine) handleInfo(line string) {
	e.mu.Lock()
	r := e.current()
	e.mu.Unlock()
	if r == nil {
		return
	}

	var parseErr error
	eval, reached := r.update(func(eval *Evaluation) {
		parseErr = e.parseInfo(line, eval)
	}, exactScore(line))
	if parseErr != nil {
		e.logger.Debug().Err(parseErr).Msg("ignoring malformed info line")
		return
	}
	if reached {
		e.finish(r, eval)
	}
}

func (e *UCIEngine) handleBestMove(line string) {
	e.mu.Lock()
	if len(e.searches) == 0 {
		e.mu.Unlock()
		e.logger.Debug().Str("line", line).Msg("bestmove with no search running")
		return
	}
	r := e.current()
	e.searches = e.searches[1:]
	if len(e.searches) == 0 && e.idle != nil {
		close(e.idle)
		e.idle = nil
	}
	e.mu.Unlock()

	if r == nil {
		e.logger.Debug().Str("line", line).Msg("discarding stale bestmove")
		return
	}

	var parseErr error
	eval, _ := r.update(func(eval *Evaluation) {
		parseErr = parseBestMove(line, eval)
	}, false)
	if parseErr != nil {
		e.logger.Debug().Err(parseErr).Msg("malformed bestmove line")
	}
	e.finish(r, eval)
}

// finish resolves r with eval and clears it as the live request.
func (e *UCIEngine) finish(r *Request, eval Evaluation) {
	e.mu.Lock()
	if e.live == r {
		e.live = nil
	}
	e.mu.Unlock()
	if r.resolve(eval, nil) {
		e.logger.Debug().
			Uint64("seq", r.seq).
			Int("depth", eval.Depth).
			Str("score", FormatEvaluation(&eval)).
			Str("bestmove", eval.BestMove).
			Msg("evaluation complete")
	}
}

// send writes one command line to the engine.
func (e *UCIEngine) send(cmd string) error {
	if e.stdin == nil {
		return &errors.EngineUnavailableError{Op: "write", Err: errors.ErrEngineLaunch}
	}
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.logger.Trace().Str("line", cmd).Msg("send")
	if _, err := io.WriteString(e.stdin, cmd+"\n"); err != nil {
		unavailable := &errors.EngineUnavailableError{Op: "write", Err: err}
		e.markDead(unavailable)
		return unavailable
	}
	return nil
}

// markDead records the first fatal error and fails the live request with it.
func (e *UCIEngine) markDead(err error) {
	e.deadOnce.Do(func() {
		e.mu.Lock()
		e.deadErr = err
		r := e.live
		e.live = nil
		e.searches = nil
		if e.idle != nil {
			close(e.idle)
			e.idle = nil
		}
		e.mu.Unlock()

		close(e.dead)
		if r != nil {
			r.resolve(r.Progress(), err)
		}
		e.logger.Debug().Err(err).Msg("engine unavailable")
	})
}

func (e *UCIEngine) deadError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deadErr
}

// unavailable returns the recorded error if the engine can no longer be used.
func (e *UCIEngine) unavailable() error {
	if e.cmd == nil {
		return &errors.EngineUnavailableError{Op: "request", Err: errors.ErrEngineLaunch}
	}
	select {
	case <-e.dead:
		return e.deadError()
	default:
		return nil
	}
}

// Shutdown sends quit and waits for the process to exit, killing it when the
// wait exceeds QuitTimeout or ctx ends. It is safe to call more than once and
// on an engine that never started.
func (e *UCIEngine) Shutdown(ctx context.Context) error {
	e.shutdownOnce.Do(func() {
		if e.cmd == nil {
			return
		}
		e.reqMu.Lock()
		defer e.reqMu.Unlock()

		e.mu.Lock()
		r := e.live
		e.live = nil
		e.mu.Unlock()
		if r != nil {
			r.resolve(r.Progress(), &errors.EngineUnavailableError{Op: "shutdown"})
		}

		_ = e.send("stop")
		_ = e.send("quit")
		if e.stdin != nil {
			_ = e.stdin.Close()
		}

		timer := time.NewTimer(e.opts.QuitTimeout)
		defer timer.Stop()
		select {
		case <-e.exited:
			e.logger.Debug().Msg("engine exited")
			return
		case <-timer.C:
		case <-ctx.Done():
		}
		e.logger.Warn().Msg("engine did not quit, killing it")
		e.shutdownErr = e.kill()
	})
	return e.shutdownErr
}

// Stop shuts the engine down with no deadline beyond QuitTimeout.
func (e *UCIEngine) Stop() error {
	return e.Shutdown(context.Background())
}

// kill terminates the process and waits for the reader to finish.
func (e *UCIEngine) kill() error {
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	err := e.cmd.Process.Kill()
	<-e.exited
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
