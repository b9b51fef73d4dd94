package rules

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// playWithHistory plays moves from the initial position and returns the final
// board together with every earlier position.
func playWithHistory(t *testing.T, moves ...string) (*chess.Board, []chess.Board) {
	t.Helper()
	board := NewInitialBoard()
	var history []chess.Board
	for _, text := range moves {
		next, err := ApplyUCI(board, text)
		if err != nil {
			t.Fatalf("ApplyUCI(%q): %v", text, err)
		}
		history = append(history, *board)
		board = next
	}
	return board, history
}

func TestGameStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"initial", InitialFEN, Ongoing},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", Checkmate},
		{"back rank mate", "3R2k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", Checkmate},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", InsufficientMaterial},
		{"fifty moves", "4k3/8/8/8/8/8/8/R3K3 w - - 100 80", FiftyMoveDraw},
		{"ninety-nine half moves", "4k3/8/8/8/8/8/8/R3K3 w - - 99 80", Ongoing},
		{"checkmate beats fifty moves", "3R2k1/5ppp/8/8/8/8/8/6K1 b - - 120 90", Checkmate},
		{"stalemate beats insufficient material", "k7/8/1K6/4B3/8/8/8/8 b - - 0 1", Stalemate},
		{"in check but not mate", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", Ongoing},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, GameStatus(MustParseFEN(tt.fen), nil), tt.want)
		})
	}
}

func TestGameStatus_FoolsMateFromPlay(t *testing.T) {
	board, history := playWithHistory(t, "f2f3", "e7e5", "g2g4", "d8h4")

	testutil.AssertEqual(t, GameStatus(board, history), Checkmate)
	testutil.AssertTrue(t, IsCheckmate(board))
	testutil.AssertFalse(t, IsStalemate(board))
	testutil.AssertEqual(t, GameStatus(board, history).Result(board.ToMove), "0-1")
}

func TestGameStatus_ThreefoldRepetition(t *testing.T) {
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	board, history := playWithHistory(t, shuffle...)
	testutil.AssertEqual(t, RepetitionCount(board, history), 2)
	testutil.AssertEqual(t, GameStatus(board, history), Ongoing)

	board, history = playWithHistory(t, append(shuffle, shuffle...)...)
	testutil.AssertEqual(t, RepetitionCount(board, history), 3)
	testutil.AssertEqual(t, GameStatus(board, history), ThreefoldRepetition)
}

func TestGameStatus_RepetitionIgnoresClocks(t *testing.T) {
	board := MustParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 10 30")
	history := []chess.Board{
		*MustParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 2 26"),
		*MustParseFEN("4k3/8/8/8/8/8/8/3RK3 b - - 3 26"),
		*MustParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 6 28"),
	}

	testutil.AssertEqual(t, RepetitionCount(board, history), 3)
	testutil.AssertEqual(t, GameStatus(board, history), ThreefoldRepetition)
}

func TestGameStatus_CastlingRightsDistinguishPositions(t *testing.T) {
	board := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w - - 8 20")
	history := []chess.Board{
		*MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 16"),
		*MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 4 18"),
	}

	testutil.AssertEqual(t, RepetitionCount(board, history), 1)
	testutil.AssertEqual(t, GameStatus(board, history), Ongoing)
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Ongoing, "ongoing"},
		{Checkmate, "checkmate"},
		{Stalemate, "stalemate"},
		{InsufficientMaterial, "insufficient-material"},
		{FiftyMoveDraw, "fifty-move-draw"},
		{ThreefoldRepetition, "threefold-repetition"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, tt.status.String(), tt.want)
		})
	}
}

func TestStatus_Result(t *testing.T) {
	testutil.AssertEqual(t, Checkmate.Result(chess.White), "0-1")
	testutil.AssertEqual(t, Checkmate.Result(chess.Black), "1-0")
	testutil.AssertEqual(t, Stalemate.Result(chess.White), "1/2-1/2")
	testutil.AssertEqual(t, ThreefoldRepetition.Result(chess.Black), "1/2-1/2")
	testutil.AssertEqual(t, Ongoing.Result(chess.White), "*")

	testutil.AssertFalse(t, Ongoing.IsOver())
	testutil.AssertTrue(t, FiftyMoveDraw.IsDraw())
	testutil.AssertFalse(t, Checkmate.IsDraw())
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"king vs king", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"king and bishop", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"king and knight", "4k3/8/8/8/8/8/8/1N2K3 w - - 0 1", true},
		{"bishops on one colour", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"bishops on both colours", "2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1", false},
		{"two knights", "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1", false},
		{"knight and bishop", "4k3/8/8/8/8/8/8/1NB1K3 w - - 0 1", false},
		{"single pawn", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"rook", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
		{"queen", "3qk3/8/8/8/8/8/8/4K3 w - - 0 1", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, HasInsufficientMaterial(MustParseFEN(tt.fen)), tt.want)
		})
	}
}

func TestIsInCheck(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		colour chess.Colour
		want   bool
	}{
		{"initial white", InitialFEN, chess.White, false},
		{"rook check", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", chess.White, true},
		{"blocked rook", "4k3/8/8/8/4r3/8/4P3/4K3 w - - 0 1", chess.White, false},
		{"pawn check", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", chess.White, true},
		{"pawn in front does not check", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", chess.White, false},
		{"white pawn checks black", "4k3/3P4/8/8/8/8/8/4K3 b - - 0 1", chess.Black, true},
		{"knight check", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", chess.White, true},
		{"bishop check", "4k3/8/8/8/1b6/8/8/4K3 w - - 0 1", chess.White, true},
		{"queen diagonal", "4k3/8/8/8/8/8/5q2/4K3 w - - 0 1", chess.White, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsInCheck(MustParseFEN(tt.fen), tt.colour), tt.want)
		})
	}
}

func TestIsInCheck_NoKing(t *testing.T) {
	board := chess.NewBoard()
	board.Set(chess.E8, chess.B(chess.Rook))
	testutil.AssertFalse(t, IsInCheck(board, chess.White))
}

func TestIsSquareAttacked(t *testing.T) {
	board := NewInitialBoard()

	testutil.AssertTrue(t, IsSquareAttacked(board, testutil.MustSquare(t, "f3"), chess.White))
	testutil.AssertTrue(t, IsSquareAttacked(board, testutil.MustSquare(t, "d3"), chess.White))
	testutil.AssertFalse(t, IsSquareAttacked(board, testutil.MustSquare(t, "e4"), chess.White))
	testutil.AssertTrue(t, IsSquareAttacked(board, testutil.MustSquare(t, "f6"), chess.Black))
	testutil.AssertFalse(t, IsSquareAttacked(board, testutil.MustSquare(t, "e5"), chess.Black))
}

func TestCheckers(t *testing.T) {
	testutil.AssertEqual(t, len(Checkers(NewInitialBoard())), 0)

	board := MustParseFEN("4k3/8/8/8/8/5n2/4r3/4K3 w - - 0 1")
	got := Checkers(board)
	want := []chess.Square{testutil.MustSquare(t, "e2"), testutil.MustSquare(t, "f3")}
	testutil.AssertEqual(t, got, want)
}
