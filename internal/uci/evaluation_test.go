package uci

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestFormatEvaluation_PositiveCentipawns(t *testing.T) {
	eval := &Evaluation{Score: 123, IsMate: false}
	got := FormatEvaluation(eval)
	want := "+1.23"
	if got != want {
		t.Errorf("FormatEvaluation() = %q, want %q", got, want)
	}
}

func TestFormatEvaluation_NegativeCentipawns(t *testing.T) {
	eval := &Evaluation{Score: -45, IsMate: false}
	got := FormatEvaluation(eval)
	want := "-0.45"
	if got != want {
		t.Errorf("FormatEvaluation() = %q, want %q", got, want)
	}
}

func TestFormatEvaluation_NegativeMate(t *testing.T) {
	eval := &Evaluation{IsMate: true, MateIn: -5}
	got := FormatEvaluation(eval)
	want := "-M5"
	if got != want {
		t.Errorf("FormatEvaluation() = %q, want %q", got, want)
	}
}

func TestFormatEvaluation_TableDriven(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want string
	}{
		{"zero", &Evaluation{}, "+0.00"},
		{"small positive", &Evaluation{Score: 15}, "+0.15"},
		{"small negative", &Evaluation{Score: -8}, "-0.08"},
		{"exactly one pawn", &Evaluation{Score: 100}, "+1.00"},
		{"exactly minus one pawn", &Evaluation{Score: -100}, "-1.00"},
		{"large positive", &Evaluation{Score: 1250}, "+12.50"},
		{"very large negative", &Evaluation{Score: -9999}, "-99.99"},
		{"mate in one", &Evaluation{IsMate: true, MateIn: 1}, "+M1"},
		{"mate in many", &Evaluation{IsMate: true, MateIn: 15}, "+M15"},
		{"getting mated in many", &Evaluation{IsMate: true, MateIn: -20}, "-M20"},
		{"mate ignores stale score", &Evaluation{Score: 300, IsMate: true, MateIn: 2}, "+M2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FormatEvaluation(tt.eval)
			if got != tt.want {
				t.Errorf("FormatEvaluation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluation_String(t *testing.T) {
	testutil.AssertEqual(t, Evaluation{Score: 35}.String(), "+0.35")
}

func TestEvaluation_Centipawns(t *testing.T) {
	tests := []struct {
		name string
		eval Evaluation
		want int
	}{
		{"plain score", Evaluation{Score: -42}, -42},
		{"winning mate", Evaluation{IsMate: true, MateIn: 4}, DefaultMateScore},
		{"losing mate", Evaluation{IsMate: true, MateIn: -2}, -DefaultMateScore},
		{"already mated", Evaluation{IsMate: true, MateIn: 0}, -DefaultMateScore},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, tt.eval.Centipawns(DefaultMateScore), tt.want)
		})
	}
}

func TestEvaluation_WhiteCentipawns(t *testing.T) {
	eval := Evaluation{Score: 80}
	testutil.AssertEqual(t, eval.WhiteCentipawns(chess.White, DefaultMateScore), 80)
	testutil.AssertEqual(t, eval.WhiteCentipawns(chess.Black, DefaultMateScore), -80)

	mated := Evaluation{IsMate: true, MateIn: 0}
	testutil.AssertEqual(t, mated.WhiteCentipawns(chess.Black, 500), 500)
}

func TestEvaluation_DefaultValues(t *testing.T) {
	eval := Evaluation{}

	if eval.Score != 0 || eval.IsMate || eval.MateIn != 0 || eval.Depth != 0 {
		t.Errorf("zero Evaluation = %+v", eval)
	}
	if eval.BestMove != "" {
		t.Errorf("default BestMove = %q, want empty string", eval.BestMove)
	}
}
