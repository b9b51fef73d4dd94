package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}

// ParseFEN creates a board from a FEN string. Only the placement field is
// required; missing trailing fields default to "w - - 0 1". The placement must
// describe eight ranks of eight files with exactly one king per side and no
// pawns on the first or last rank, and the side not to move must not be in
// check.
func ParseFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fenError(fen, "placement", "piece placement", "empty string")
	}
	if len(parts) > 6 {
		return nil, fenError(fen, "fields", "at most 6 fields", strconv.Itoa(len(parts)))
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, fen, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, fen, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, fen, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, fen, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(board, fen, parts); err != nil {
		return nil, err
	}
	// The side that just moved cannot have left its king attacked.
	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fenError(fen, "placement", "side not to move out of check", "side not to move is in check")
	}

	return board, nil
}

// MustParseFEN is like ParseFEN but panics on error. Use it for constants.
func MustParseFEN(fen string) *chess.Board {
	board, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return board
}

func fenError(fen, field, expected, got string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: field, Expected: expected, Got: got}
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, fen, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fen, "placement", "8 ranks", strconv.Itoa(len(ranks)))
	}

	for i, rankText := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromLetter(c)
			if !ok {
				return fenError(fen, "placement", "piece letter", fmt.Sprintf("%q", c))
			}
			if file >= chess.BoardSize {
				return fenError(fen, "placement", "8 files on rank "+strconv.Itoa(rank+1), "more")
			}
			if piece.Type == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
				return fenError(fen, "placement", "no pawns on the back ranks", chess.NewSquare(file, rank).String())
			}
			board.Set(chess.NewSquare(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return fenError(fen, "placement", "8 files on rank "+strconv.Itoa(rank+1), strconv.Itoa(file))
		}
	}

	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		if n := board.Count(chess.NewPiece(colour, chess.King)); n != 1 {
			return fenError(fen, "placement", "one "+strings.ToLower(colour.String())+" king", strconv.Itoa(n))
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, fen string, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fenError(fen, "side to move", "w or b", parts[1])
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, fen string, parts []string) error {
	board.Castling = chess.NoCastling
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		var right chess.CastlingRights
		switch c {
		case 'K':
			right = chess.WhiteKingside
		case 'Q':
			right = chess.WhiteQueenside
		case 'k':
			right = chess.BlackKingside
		case 'q':
			right = chess.BlackQueenside
		default:
			return fenError(fen, "castling", "KQkq or -", parts[2])
		}
		if board.Castling&right != 0 {
			return fenError(fen, "castling", "each right once", parts[2])
		}
		board.Castling |= right
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The target must sit
// on the rank a double push by the side that just moved passes over.
func parseEnPassant(board *chess.Board, fen string, parts []string) error {
	board.EnPassant = chess.NoSquare
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fenError(fen, "en passant", "square or -", parts[3])
	}
	wantRank := 5
	if board.ToMove == chess.Black {
		wantRank = 2
	}
	if sq.Rank() != wantRank {
		return fenError(fen, "en passant", "target on rank "+strconv.Itoa(wantRank+1), parts[3])
	}
	board.EnPassant = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, fen string, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fenError(fen, "halfmove clock", "non-negative integer", parts[4])
		}
		board.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fenError(fen, "fullmove number", "positive integer", parts[5])
		}
		board.MoveNumber = n
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassant.String())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// PositionKey returns the first four FEN fields with the en-passant target
// kept only when a capture on it is possible. Two positions with the same key
// count as the same position for repetition.
func PositionKey(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassantCapturable().String())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.NewSquare(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}
