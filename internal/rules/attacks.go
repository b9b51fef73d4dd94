package rules

import "github.com/lgbarn/chessrules-go/internal/chess"

// Step and ray offsets as (file, rank) deltas.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// offset returns the square df files and dr ranks away from sq, or NoSquare.
func offset(sq chess.Square, df, dr int) chess.Square {
	return chess.NewSquare(sq.File()+df, sq.Rank()+dr)
}

// IsInCheck returns true if the given colour's king is attacked by any piece of
// the other colour. A colour without a king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.KingSquare(colour)
	if king == chess.NoSquare {
		return false
	}
	return IsSquareAttacked(board, king, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
// Pawns attack only diagonally forward; their straight pushes never attack.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// A pawn attacking sq stands one rank behind it from the attacker's point of view.
	pawn := chess.NewPiece(byColour, chess.Pawn)
	for _, df := range [2]int{-1, 1} {
		if from := offset(sq, df, -byColour.PawnDirection()); from != chess.NoSquare && board.Squares[from] == pawn {
			return true
		}
	}

	knight := chess.NewPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if from := offset(sq, o[0], o[1]); from != chess.NoSquare && board.Squares[from] == knight {
			return true
		}
	}

	king := chess.NewPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if from := offset(sq, o[0], o[1]); from != chess.NoSquare && board.Squares[from] == king {
			return true
		}
	}

	queen := chess.NewPiece(byColour, chess.Queen)
	if rayAttacked(board, sq, diagonalDirs[:], chess.NewPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return rayAttacked(board, sq, straightDirs[:], chess.NewPiece(byColour, chess.Rook), queen)
}

// rayAttacked walks each direction from sq and reports whether the first piece
// met is one of the two given sliders.
func rayAttacked(board *chess.Board, sq chess.Square, dirs [][2]int, slider, queen chess.Piece) bool {
	for _, dir := range dirs {
		for to := offset(sq, dir[0], dir[1]); to != chess.NoSquare; to = offset(to, dir[0], dir[1]) {
			piece := board.Squares[to]
			if piece.IsEmpty() {
				continue
			}
			if piece == slider || piece == queen {
				return true
			}
			break // Blocked
		}
	}
	return false
}

// Checkers returns the squares of every enemy piece giving check to the side to move.
func Checkers(board *chess.Board) []chess.Square {
	colour := board.ToMove
	king := board.KingSquare(colour)
	if king == chess.NoSquare {
		return nil
	}
	var checkers []chess.Square
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := board.Squares[sq]
		if piece.IsEmpty() || piece.Colour == colour {
			continue
		}
		if attacksSquare(board, sq, piece, king) {
			checkers = append(checkers, sq)
		}
	}
	return checkers
}

// attacksSquare reports whether piece standing on from attacks target.
func attacksSquare(board *chess.Board, from chess.Square, piece chess.Piece, target chess.Square) bool {
	df := target.File() - from.File()
	dr := target.Rank() - from.Rank()

	switch piece.Type {
	case chess.Pawn:
		return dr == piece.Colour.PawnDirection() && abs(df) == 1
	case chess.Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case chess.King:
		return abs(df) <= 1 && abs(dr) <= 1 && (df != 0 || dr != 0)
	case chess.Bishop:
		return abs(df) == abs(dr) && df != 0 && isPathClear(board, from, target)
	case chess.Rook:
		return (df == 0) != (dr == 0) && isPathClear(board, from, target)
	case chess.Queen:
		return ((abs(df) == abs(dr) && df != 0) || (df == 0) != (dr == 0)) && isPathClear(board, from, target)
	case chess.NoPieceType:
		return false
	}
	return false
}

// isPathClear checks that every square strictly between from and to is empty.
// from and to must share a rank, file or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	fileDir := sign(to.File() - from.File())
	rankDir := sign(to.Rank() - from.Rank())

	for sq := offset(from, fileDir, rankDir); sq != to && sq != chess.NoSquare; sq = offset(sq, fileDir, rankDir) {
		if !board.Squares[sq].IsEmpty() {
			return false
		}
	}
	return true
}
