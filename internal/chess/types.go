// Package chess provides core chess types and operations.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int8

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PawnDirection returns +1 for White, -1 for Black (the rank step of a pawn push).
func (c Colour) PawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index (0 or 7) of the colour.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// PieceType represents a chess piece type. The set is closed: every switch over
// PieceType in this module handles all six real types.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypes lists the real piece types in ascending value order.
var PieceTypes = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// PromotionTypes lists the piece types a pawn may promote to, strongest first.
var PromotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the single uppercase letter for a piece type, or 0 for NoPieceType.
func (p PieceType) Letter() byte {
	switch p {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return 0
	}
}

// IsPromotionTarget reports whether a pawn may promote to p.
func (p PieceType) IsPromotionTarget() bool {
	switch p {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// PieceTypeFromLetter converts a piece letter (either case) to a piece type.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPieceType
	}
}

// Piece is a piece type together with its colour. The zero value is NoPiece.
type Piece struct {
	Type   PieceType
	Colour Colour
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// NewPiece creates a coloured piece.
func NewPiece(colour Colour, pieceType PieceType) Piece {
	return Piece{Type: pieceType, Colour: colour}
}

// W creates a white piece.
func W(pieceType PieceType) Piece {
	return NewPiece(White, pieceType)
}

// B creates a black piece.
func B(pieceType PieceType) Piece {
	return NewPiece(Black, pieceType)
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Letter returns the FEN letter of a piece: uppercase for White, lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if l == 0 {
		return '.'
	}
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns the FEN letter of the piece.
func (p Piece) String() string {
	return string(p.Letter())
}

// PieceFromLetter converts a FEN letter to a piece. ok is false for unknown letters.
func PieceFromLetter(c byte) (Piece, bool) {
	t := PieceTypeFromLetter(c)
	if t == NoPieceType {
		return NoPiece, false
	}
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
	}
	return NewPiece(colour, t), true
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// Square is a board index 0-63: file = sq % 8, rank = sq / 8, so a1 = 0 and h8 = 63.
type Square int8

// NoSquare marks an absent square (for example, no en-passant target).
const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from 0-based file and rank. It returns NoSquare when
// either coordinate is off the board.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// File returns the 0-based file (a = 0).
func (sq Square) File() int {
	return int(sq) % BoardSize
}

// Rank returns the 0-based rank (1st rank = 0).
func (sq Square) Rank() int {
	return int(sq) / BoardSize
}

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool {
	return sq >= 0 && sq < NumSquares
}

// IsLight reports whether sq is a light square (h1 is light, a1 is dark).
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

// String returns the algebraic name of the square, e.g. "e4", or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// CastlingRights is a set of the four castling permissions.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r && r != 0
}

// KingsideRight returns the kingside right of the given colour.
func KingsideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queenside right of the given colour.
func QueensideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// String returns the FEN castling field ("KQkq", "-" when empty).
func (c CastlingRights) String() string {
	var b []byte
	if c&WhiteKingside != 0 {
		b = append(b, 'K')
	}
	if c&WhiteQueenside != 0 {
		b = append(b, 'Q')
	}
	if c&BlackKingside != 0 {
		b = append(b, 'k')
	}
	if c&BlackQueenside != 0 {
		b = append(b, 'q')
	}
	if len(b) == 0 {
		return "-"
	}
	return string(b)
}
