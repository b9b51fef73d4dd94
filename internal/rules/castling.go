package rules

import "github.com/lgbarn/chessrules-go/internal/chess"

// castlingMoves appends the castling moves available to the king on kingSq.
// Castling needs the right, the king and rook on their home squares, empty
// squares between them, and the king neither in check nor passing through or
// landing on an attacked square.
func castlingMoves(board *chess.Board, kingSq chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	home := colour.HomeRank()
	if kingSq != chess.NewSquare(4, home) {
		return moves
	}
	rights := board.Castling
	if !rights.Has(chess.KingsideRight(colour)) && !rights.Has(chess.QueensideRight(colour)) {
		return moves
	}
	them := colour.Opposite()
	if IsSquareAttacked(board, kingSq, them) {
		return moves
	}
	rook := chess.NewPiece(colour, chess.Rook)
	sq := func(file int) chess.Square { return chess.NewSquare(file, home) }

	if rights.Has(chess.KingsideRight(colour)) &&
		board.Squares[sq(7)] == rook &&
		board.Squares[sq(5)].IsEmpty() && board.Squares[sq(6)].IsEmpty() &&
		!IsSquareAttacked(board, sq(5), them) && !IsSquareAttacked(board, sq(6), them) {
		moves = append(moves, chess.Move{From: kingSq, To: sq(6), Flags: chess.FlagKingsideCastle})
	}

	if rights.Has(chess.QueensideRight(colour)) &&
		board.Squares[sq(0)] == rook &&
		board.Squares[sq(1)].IsEmpty() && board.Squares[sq(2)].IsEmpty() && board.Squares[sq(3)].IsEmpty() &&
		!IsSquareAttacked(board, sq(3), them) && !IsSquareAttacked(board, sq(2), them) {
		moves = append(moves, chess.Move{From: kingSq, To: sq(2), Flags: chess.FlagQueensideCastle})
	}

	return moves
}

// castlingRook returns the rook's from and to squares for a castling move.
func castlingRook(m chess.Move) (from, to chess.Square) {
	rank := m.From.Rank()
	if m.Has(chess.FlagKingsideCastle) {
		return chess.NewSquare(7, rank), chess.NewSquare(5, rank)
	}
	return chess.NewSquare(0, rank), chess.NewSquare(3, rank)
}

// rightsLostAt returns the castling rights revoked when a piece leaves or is
// captured on sq: king home squares revoke both rights, rook corners one.
func rightsLostAt(sq chess.Square) chess.CastlingRights {
	switch sq {
	case chess.E1:
		return chess.WhiteKingside | chess.WhiteQueenside
	case chess.H1:
		return chess.WhiteKingside
	case chess.A1:
		return chess.WhiteQueenside
	case chess.E8:
		return chess.BlackKingside | chess.BlackQueenside
	case chess.H8:
		return chess.BlackKingside
	case chess.A8:
		return chess.BlackQueenside
	default:
		return chess.NoCastling
	}
}
