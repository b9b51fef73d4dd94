package chess

import "fmt"

// MoveFlag marks the special properties of a generated move.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagDoublePush
	FlagKingsideCastle
	FlagQueensideCastle
)

// Move is a single move. A move is only meaningful relative to the board it was
// generated from: the flags describe what it does on that board.
type Move struct {
	From Square
	To   Square

	// The piece type promoted to, or NoPieceType if not a promotion.
	Promotion PieceType

	Flags MoveFlag
}

// NullMove is the zero-value sentinel for "no move".
var NullMove = Move{From: NoSquare, To: NoSquare}

// Has reports whether the move carries flag f.
func (m Move) Has(f MoveFlag) bool {
	return m.Flags&f != 0
}

// IsCapture returns true if this move captures, including en passant.
func (m Move) IsCapture() bool {
	return m.Flags&(FlagCapture|FlagEnPassant) != 0
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flags&(FlagKingsideCastle|FlagQueensideCastle) != 0
}

// SameAs reports whether two moves share from, to and promotion, ignoring flags.
func (m Move) SameAs(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String returns the move in UCI long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.Letter() + 'a' - 'A')
	}
	return s
}

// ParseUCIMove parses UCI long algebraic notation. The result carries no flags;
// it must be matched against generated moves before use.
func ParseUCIMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		p := PieceTypeFromLetter(s[4])
		if !p.IsPromotionTarget() {
			return NullMove, fmt.Errorf("invalid promotion in move %q", s)
		}
		m.Promotion = p
	}
	return m, nil
}
