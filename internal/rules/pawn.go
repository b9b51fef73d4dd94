package rules

import "github.com/lgbarn/chessrules-go/internal/chess"

// pawnMoves generates pawn pushes, double pushes, captures, en-passant captures
// and promotions. A pawn reaching the last rank yields one move per promotion type.
func pawnMoves(board *chess.Board, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	dir := colour.PawnDirection()
	startRank := 1
	if colour == chess.Black {
		startRank = 6
	}

	// Forward moves never capture.
	if one := offset(from, 0, dir); one != chess.NoSquare && board.Squares[one].IsEmpty() {
		moves = appendPawnMove(moves, from, one, 0)
		if from.Rank() == startRank {
			if two := offset(from, 0, 2*dir); board.Squares[two].IsEmpty() {
				moves = append(moves, chess.Move{From: from, To: two, Flags: chess.FlagDoublePush})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := offset(from, df, dir)
		if to == chess.NoSquare {
			continue
		}
		target := board.Squares[to]
		switch {
		case !target.IsEmpty() && target.Colour != colour:
			moves = appendPawnMove(moves, from, to, chess.FlagCapture)
		case target.IsEmpty() && to == board.EnPassant && enPassantVictim(board, from, to, colour):
			moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagEnPassant})
		}
	}
	return moves
}

// appendPawnMove appends a pawn move, expanding it into the four promotion
// choices when it reaches the last rank.
func appendPawnMove(moves []chess.Move, from, to chess.Square, flags chess.MoveFlag) []chess.Move {
	if to.Rank() != 0 && to.Rank() != chess.BoardSize-1 {
		return append(moves, chess.Move{From: from, To: to, Flags: flags})
	}
	for _, promo := range chess.PromotionTypes {
		moves = append(moves, chess.Move{From: from, To: to, Promotion: promo, Flags: flags})
	}
	return moves
}

// enPassantVictim checks that an enemy pawn stands beside the capturing pawn on
// the file of the en-passant target.
func enPassantVictim(board *chess.Board, from, to chess.Square, colour chess.Colour) bool {
	victim := chess.NewSquare(to.File(), from.Rank())
	return board.Squares[victim] == chess.NewPiece(colour.Opposite(), chess.Pawn)
}
