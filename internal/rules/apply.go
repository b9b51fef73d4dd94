package rules

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// ApplyMove plays move on a copy of board and returns the new position. The
// move is matched by from, to and promotion against LegalMoves, so callers may
// pass a bare move without flags. board itself is never modified.
//
// A move that is not legal fails with *errors.IllegalMoveError.
func ApplyMove(board *chess.Board, move chess.Move) (*chess.Board, error) {
	_, next, err := PlayMove(board, move)
	return next, err
}

// PlayMove is ApplyMove that also returns the generated move it matched, with
// its capture, castling and en-passant flags set.
func PlayMove(board *chess.Board, move chess.Move) (chess.Move, *chess.Board, error) {
	legal, ok := matchLegal(board, move)
	if !ok {
		return chess.NullMove, nil, illegalMove(board, move)
	}
	next := *board
	MakeMove(&next, legal)
	return legal, &next, nil
}

// ApplyUCI parses a move in UCI notation and applies it.
func ApplyUCI(board *chess.Board, text string) (*chess.Board, error) {
	move, err := chess.ParseUCIMove(text)
	if err != nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidMove, Input: text, Field: "move"}
	}
	return ApplyMove(board, move)
}

// FindMove resolves a move from a source and destination square, as picked by
// a user clicking two squares. When promo is NoPieceType and the move is a
// promotion, the queen is chosen.
func FindMove(board *chess.Board, from, to chess.Square, promo chess.PieceType) (chess.Move, error) {
	want := chess.Move{From: from, To: to, Promotion: promo}
	if legal, ok := matchLegal(board, want); ok {
		return legal, nil
	}
	if promo == chess.NoPieceType {
		want.Promotion = chess.Queen
		if legal, ok := matchLegal(board, want); ok {
			return legal, nil
		}
		want.Promotion = chess.NoPieceType
	}
	return chess.NullMove, illegalMove(board, want)
}

// illegalMove builds the error for a rejected move, naming the most likely reason.
func illegalMove(board *chess.Board, move chess.Move) error {
	err := &errors.IllegalMoveError{Move: move.String(), FEN: BoardToFEN(board)}
	piece := board.Get(move.From)
	switch {
	case piece.IsEmpty():
		err.Reason = fmt.Sprintf("no piece on %s", move.From)
	case piece.Colour != board.ToMove:
		err.Reason = fmt.Sprintf("%s is not to move", piece.Colour)
	case move.Promotion == chess.NoPieceType && needsPromotion(board, move):
		err.Reason = "promotion piece required"
	}
	return err
}

// needsPromotion reports whether from/to name a legal promotion.
func needsPromotion(board *chess.Board, move chess.Move) bool {
	for _, m := range MovesFrom(board, move.From) {
		if m.To == move.To && m.IsPromotion() {
			return true
		}
	}
	return false
}

// MakeMove plays a generated move on board in place, without checking legality.
// The move must come from this board's move generator so its flags are right.
// It updates side to move, castling rights, en-passant target and both clocks.
func MakeMove(board *chess.Board, m chess.Move) {
	colour := board.ToMove
	moved := board.Squares[m.From]
	captured := board.Squares[m.To]

	board.Squares[m.From] = chess.NoPiece

	switch {
	case m.Has(chess.FlagEnPassant):
		board.Squares[chess.NewSquare(m.To.File(), m.From.Rank())] = chess.NoPiece
	case m.IsCastle():
		rookFrom, rookTo := castlingRook(m)
		board.Squares[rookTo] = board.Squares[rookFrom]
		board.Squares[rookFrom] = chess.NoPiece
	}

	if m.Promotion != chess.NoPieceType {
		board.Squares[m.To] = chess.NewPiece(colour, m.Promotion)
	} else {
		board.Squares[m.To] = moved
	}

	// Moving a king or rook off its home square, or capturing a rook on its
	// home square, revokes the matching rights.
	board.Castling &^= rightsLostAt(m.From) | rightsLostAt(m.To)

	board.EnPassant = chess.NoSquare
	if m.Has(chess.FlagDoublePush) {
		board.EnPassant = chess.NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if moved.Type == chess.Pawn || !captured.IsEmpty() || m.Has(chess.FlagEnPassant) {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}
