package hashing

import "github.com/lgbarn/chessrules-go/internal/chess"

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed uint64 = 0x9E3779B97F4A7C15

var (
	pieceKeys    [2][7][chess.NumSquares]uint64
	sideKey      uint64
	castlingKeys [16]uint64
	epFileKeys   [chess.BoardSize]uint64
)

func init() {
	state := zobristSeed
	next := func() uint64 {
		// splitmix64
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}
	for colour := range pieceKeys {
		for pt := range pieceKeys[colour] {
			for sq := range pieceKeys[colour][pt] {
				pieceKeys[colour][pt][sq] = next()
			}
		}
	}
	sideKey = next()
	for i := range castlingKeys {
		castlingKeys[i] = next()
	}
	for i := range epFileKeys {
		epFileKeys[i] = next()
	}
}

// GenerateZobristHash hashes the repetition-relevant parts of a position:
// placement, side to move, castling rights and a capturable en-passant file.
// Move counters do not contribute.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64
	for sq, piece := range board.Squares {
		if piece.IsEmpty() {
			continue
		}
		hash ^= pieceKeys[piece.Colour][piece.Type][sq]
	}
	if board.ToMove == chess.Black {
		hash ^= sideKey
	}
	hash ^= castlingKeys[board.Castling&chess.AllCastling]
	if ep := board.EnPassantCapturable(); ep != chess.NoSquare {
		hash ^= epFileKeys[ep.File()]
	}
	return hash
}
