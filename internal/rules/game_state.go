package rules

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// Status is the result of a game-status query. Terminal states are never
// stored; they are recomputed from the board and history on demand.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveDraw
	ThreefoldRepetition
)

// FiftyMoveLimit is the half-move clock value at which a draw applies.
const FiftyMoveLimit = 100

// String returns the lower-case name of a status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient-material"
	case FiftyMoveDraw:
		return "fifty-move-draw"
	case ThreefoldRepetition:
		return "threefold-repetition"
	default:
		return "unknown"
	}
}

// IsOver reports whether the game has ended.
func (s Status) IsOver() bool {
	return s != Ongoing
}

// IsDraw reports whether the status is a drawn result.
func (s Status) IsDraw() bool {
	return s.IsOver() && s != Checkmate
}

// Result returns the PGN-style result for the side that was to move in a
// position with this status: "1-0", "0-1", "1/2-1/2" or "*".
func (s Status) Result(toMove chess.Colour) string {
	switch {
	case s == Checkmate && toMove == chess.White:
		return "0-1"
	case s == Checkmate:
		return "1-0"
	case s.IsDraw():
		return "1/2-1/2"
	default:
		return "*"
	}
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	return IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	return !IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// GameStatus classifies the position. history holds the earlier positions of
// the game in order, not including board itself. Checks run in order:
// checkmate, stalemate, insufficient material, fifty-move rule, threefold
// repetition.
func GameStatus(board *chess.Board, history []chess.Board) Status {
	if !HasLegalMoves(board) {
		if IsInCheck(board, board.ToMove) {
			return Checkmate
		}
		return Stalemate
	}
	if HasInsufficientMaterial(board) {
		return InsufficientMaterial
	}
	if board.HalfmoveClock >= FiftyMoveLimit {
		return FiftyMoveDraw
	}
	if RepetitionCount(board, history) >= 3 {
		return ThreefoldRepetition
	}
	return Ongoing
}

// RepetitionCount returns how many times board's position occurs in history
// plus board itself.
func RepetitionCount(board *chess.Board, history []chess.Board) int {
	tracker := hashing.NewRepetitionTracker()
	for i := range history {
		tracker.Add(&history[i])
	}
	return tracker.Add(board)
}
