package rules

import "github.com/lgbarn/chessrules-go/internal/chess"

// HasInsufficientMaterial returns true if neither side can possibly mate.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - any number of bishops, all on squares of one colour, and nothing else
func HasInsufficientMaterial(board *chess.Board) bool {
	var knights, bishops int
	var lightBishops, darkBishops int

	for sq, piece := range board.Squares {
		switch piece.Type {
		case chess.Pawn, chess.Rook, chess.Queen:
			// Any pawn, rook, or queen means sufficient material
			return false
		case chess.Knight:
			knights++
		case chess.Bishop:
			bishops++
			if chess.Square(sq).IsLight() {
				lightBishops++
			} else {
				darkBishops++
			}
		case chess.King, chess.NoPieceType:
			// Kings don't count for material
		}
	}

	minors := knights + bishops
	if minors <= 1 {
		return true
	}
	return knights == 0 && (lightBishops == 0 || darkBishops == 0)
}
