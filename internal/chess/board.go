package chess

// Board represents a chess position with all state needed to continue the game.
// Board is a plain value: assigning or copying it copies the whole position.
type Board struct {
	// The board squares, indexed by Square (a1 = 0, h8 = 63).
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// Castling permissions still available to either side.
	Castling CastlingRights

	// The square a pawn skipped over with its last double push, or NoSquare.
	EnPassant Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The current full move number, starting at 1 and incremented after Black moves.
	MoveNumber int
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{
		ToMove:     White,
		EnPassant:  NoSquare,
		MoveNumber: 1,
	}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [NumSquares]Piece{}

	backRank := [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.Squares[NewSquare(file, 0)] = W(backRank[file])
		b.Squares[NewSquare(file, 1)] = W(Pawn)
		b.Squares[NewSquare(file, 6)] = B(Pawn)
		b.Squares[NewSquare(file, 7)] = B(backRank[file])
	}

	b.ToMove = White
	b.Castling = AllCastling
	b.EnPassant = NoSquare
	b.HalfmoveClock = 0
	b.MoveNumber = 1
}

// Get returns the piece on sq, or NoPiece for an empty or invalid square.
func (b *Board) Get(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.Squares[sq]
}

// Set places a piece on sq. Setting NoPiece clears the square.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.IsValid() {
		b.Squares[sq] = piece
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := *b
	return &newBoard
}

// KingSquare returns the square of the colour's king, or NoSquare if it has none.
func (b *Board) KingSquare(colour Colour) Square {
	king := NewPiece(colour, King)
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// PieceMap returns every occupied square and its piece.
func (b *Board) PieceMap() map[Square]Piece {
	m := make(map[Square]Piece)
	for sq := Square(0); sq < NumSquares; sq++ {
		if !b.Squares[sq].IsEmpty() {
			m[sq] = b.Squares[sq]
		}
	}
	return m
}

// Count returns how many of the given piece are on the board.
func (b *Board) Count(piece Piece) int {
	n := 0
	for _, p := range b.Squares {
		if p == piece {
			n++
		}
	}
	return n
}

// EnPassantCapturable returns the en-passant target if a pawn of the side to move
// stands next to the double-pushed pawn and could capture it, else NoSquare.
// Repetition detection treats positions that differ only in an uncapturable
// en-passant target as the same position.
func (b *Board) EnPassantCapturable() Square {
	if !b.EnPassant.IsValid() {
		return NoSquare
	}
	pawn := NewPiece(b.ToMove, Pawn)
	rank := b.EnPassant.Rank() - b.ToMove.PawnDirection()
	for _, df := range [2]int{-1, 1} {
		if sq := NewSquare(b.EnPassant.File()+df, rank); sq != NoSquare && b.Squares[sq] == pawn {
			return b.EnPassant
		}
	}
	return NoSquare
}

// SamePosition reports whether two boards hold the same position for repetition
// purposes: placement, side to move, castling rights and capturable en-passant
// target. Move counters are ignored.
func SamePosition(a, b *Board) bool {
	return a.Squares == b.Squares &&
		a.ToMove == b.ToMove &&
		a.Castling == b.Castling &&
		a.EnPassantCapturable() == b.EnPassantCapturable()
}
