// Package game holds a played game: the current board, every earlier position
// and the moves between them. All board changes go through the rules package.
package game

import (
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/rules"
)

// Session owns one game. The board only changes through Push and its variants,
// Undo and Reset. A Session is not safe for concurrent use; callers must
// serialise access.
type Session struct {
	name   string
	logger zerolog.Logger

	start   chess.Board
	board   chess.Board
	history []chess.Board // history[i] is the position before moves[i]
	moves   []chess.Move
}

// Option configures a Session.
type Option func(*Session)

// WithName sets the session name instead of a generated one.
func WithName(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger used for move and undo events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession starts a game from the standard initial position.
func NewSession(opts ...Option) *Session {
	return newSession(*rules.NewInitialBoard(), opts)
}

// NewSessionFromFEN starts a game from the position described by fen.
func NewSessionFromFEN(fen string, opts ...Option) (*Session, error) {
	board, err := rules.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newSession(*board, opts), nil
}

func newSession(start chess.Board, opts []Option) *Session {
	s := &Session{
		name:   petname.Generate(2, "-"),
		logger: zerolog.Nop(),
		start:  start,
		board:  start,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("session", s.name).Logger()
	return s
}

// Name returns the session name.
func (s *Session) Name() string {
	return s.name
}

// Board returns a copy of the current position.
func (s *Session) Board() *chess.Board {
	return s.board.Copy()
}

// FEN returns the current position in FEN.
func (s *Session) FEN() string {
	return rules.BoardToFEN(&s.board)
}

// StartFEN returns the position the game started from.
func (s *Session) StartFEN() string {
	return rules.BoardToFEN(&s.start)
}

// Ply returns the number of moves played.
func (s *Session) Ply() int {
	return len(s.moves)
}

// LegalMoves returns the legal moves in the current position.
func (s *Session) LegalMoves() []chess.Move {
	return rules.LegalMoves(&s.board)
}

// MovesFrom returns the legal moves of the piece on sq.
func (s *Session) MovesFrom(sq chess.Square) []chess.Move {
	return rules.MovesFrom(&s.board, sq)
}

// InCheck reports whether the side to move is in check.
func (s *Session) InCheck() bool {
	return rules.IsInCheck(&s.board, s.board.ToMove)
}

// Push plays move. An illegal move returns *errors.IllegalMoveError and leaves
// the session unchanged.
func (s *Session) Push(move chess.Move) error {
	played, next, err := rules.PlayMove(&s.board, move)
	if err != nil {
		s.logger.Debug().Err(err).Str("move", move.String()).Msg("move rejected")
		return err
	}

	s.history = append(s.history, s.board)
	s.moves = append(s.moves, played)
	s.board = *next

	s.logger.Debug().
		Str("move", played.String()).
		Int("ply", len(s.moves)).
		Str("fen", s.FEN()).
		Msg("move played")
	return nil
}

// PushUCI parses and plays a move in UCI notation.
func (s *Session) PushUCI(text string) error {
	move, err := chess.ParseUCIMove(text)
	if err != nil {
		return &errors.ParseError{Err: errors.ErrInvalidMove, Input: text, Field: "move"}
	}
	return s.Push(move)
}

// PushSquares plays the move from one square to another, as chosen by clicking
// two squares. A promotion with promo NoPieceType promotes to a queen.
func (s *Session) PushSquares(from, to chess.Square, promo chess.PieceType) (chess.Move, error) {
	move, err := rules.FindMove(&s.board, from, to, promo)
	if err != nil {
		return chess.NullMove, err
	}
	if err := s.Push(move); err != nil {
		return chess.NullMove, err
	}
	return move, nil
}

// Undo takes back the last move and returns it.
func (s *Session) Undo() (chess.Move, error) {
	n := len(s.moves)
	if n == 0 {
		return chess.NullMove, errors.ErrNothingToUndo
	}
	last := s.moves[n-1]
	s.board = s.history[n-1]
	s.history = s.history[:n-1]
	s.moves = s.moves[:n-1]

	s.logger.Debug().Str("move", last.String()).Int("ply", n-1).Msg("move undone")
	return last, nil
}

// Reset returns to the starting position and clears the move list.
func (s *Session) Reset() {
	s.board = s.start
	s.history = nil
	s.moves = nil
	s.logger.Debug().Msg("session reset")
}

// Status classifies the current position against the game's history.
func (s *Session) Status() rules.Status {
	return rules.GameStatus(&s.board, s.history)
}

// History returns a copy of every position before the current one, oldest first.
func (s *Session) History() []chess.Board {
	out := make([]chess.Board, len(s.history))
	copy(out, s.history)
	return out
}

// Moves returns a copy of the moves played.
func (s *Session) Moves() []chess.Move {
	out := make([]chess.Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// UCIMoves returns the moves played in UCI notation.
func (s *Session) UCIMoves() []string {
	out := make([]string, len(s.moves))
	for i, m := range s.moves {
		out[i] = m.String()
	}
	return out
}
