// Package rules provides chess move generation, validation and game-status detection.
//
// Every function takes the board explicitly and none of them keeps state between
// calls. Boards passed in are never modified.
package rules

import "github.com/lgbarn/chessrules-go/internal/chess"

// LegalMoves returns every legal move for the side to move. A candidate is legal
// when, after playing it on a copy of the board, the mover's own king is not in
// check. The same test covers pins, discovered checks, king walks into attacked
// squares and en-passant captures that expose the king along a rank.
func LegalMoves(board *chess.Board) []chess.Move {
	pseudo := pseudoLegalMoves(board, make([]chess.Move, 0, 64))
	legal := pseudo[:0]
	for _, m := range pseudo {
		if leavesKingSafe(board, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	for _, m := range pseudoLegalMoves(board, make([]chess.Move, 0, 64)) {
		if leavesKingSafe(board, m) {
			return true
		}
	}
	return false
}

// MovesFrom returns the legal moves of the piece standing on sq. It is empty
// when sq is empty or holds a piece of the side not to move.
func MovesFrom(board *chess.Board, sq chess.Square) []chess.Move {
	piece := board.Get(sq)
	if piece.IsEmpty() || piece.Colour != board.ToMove {
		return nil
	}
	var moves []chess.Move
	for _, m := range pieceMoves(board, sq, piece, nil) {
		if leavesKingSafe(board, m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// IsLegal reports whether a move with m's from, to and promotion is legal.
func IsLegal(board *chess.Board, m chess.Move) bool {
	_, ok := matchLegal(board, m)
	return ok
}

// leavesKingSafe plays m on a copy of board and checks the mover's king.
func leavesKingSafe(board *chess.Board, m chess.Move) bool {
	next := *board
	MakeMove(&next, m)
	return !IsInCheck(&next, board.ToMove)
}

// matchLegal finds the generated legal move with the same from, to and promotion as m.
func matchLegal(board *chess.Board, m chess.Move) (chess.Move, bool) {
	for _, legal := range MovesFrom(board, m.From) {
		if legal.SameAs(m) {
			return legal, true
		}
	}
	return chess.NullMove, false
}

// pseudoLegalMoves appends every move of the side to move that obeys piece
// movement rules, without checking whether the mover's king is left in check.
func pseudoLegalMoves(board *chess.Board, moves []chess.Move) []chess.Move {
	colour := board.ToMove
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := board.Squares[sq]
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		moves = pieceMoves(board, sq, piece, moves)
	}
	return moves
}

// pieceMoves appends the pseudo-legal moves of the piece on sq.
func pieceMoves(board *chess.Board, sq chess.Square, piece chess.Piece, moves []chess.Move) []chess.Move {
	switch piece.Type {
	case chess.Pawn:
		return pawnMoves(board, sq, piece.Colour, moves)
	case chess.Knight:
		return stepMoves(board, sq, piece.Colour, knightOffsets[:], moves)
	case chess.Bishop:
		return slideMoves(board, sq, piece.Colour, diagonalDirs[:], moves)
	case chess.Rook:
		return slideMoves(board, sq, piece.Colour, straightDirs[:], moves)
	case chess.Queen:
		moves = slideMoves(board, sq, piece.Colour, diagonalDirs[:], moves)
		return slideMoves(board, sq, piece.Colour, straightDirs[:], moves)
	case chess.King:
		moves = stepMoves(board, sq, piece.Colour, kingOffsets[:], moves)
		return castlingMoves(board, sq, piece.Colour, moves)
	case chess.NoPieceType:
		return moves
	}
	return moves
}

// stepMoves generates single-step moves for knights and kings.
func stepMoves(board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int, moves []chess.Move) []chess.Move {
	for _, o := range offsets {
		to := offset(from, o[0], o[1])
		if to == chess.NoSquare {
			continue
		}
		target := board.Squares[to]
		if target.IsEmpty() {
			moves = append(moves, chess.Move{From: from, To: to})
		} else if target.Colour != colour {
			moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagCapture})
		}
	}
	return moves
}

// slideMoves generates ray moves for bishops, rooks and queens.
func slideMoves(board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int, moves []chess.Move) []chess.Move {
	for _, dir := range dirs {
		for to := offset(from, dir[0], dir[1]); to != chess.NoSquare; to = offset(to, dir[0], dir[1]) {
			target := board.Squares[to]
			if target.IsEmpty() {
				moves = append(moves, chess.Move{From: from, To: to})
				continue
			}
			if target.Colour != colour {
				moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagCapture})
			}
			break // Blocked
		}
	}
	return moves
}
