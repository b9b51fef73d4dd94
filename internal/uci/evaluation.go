package uci

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// DefaultMateScore is the centipawn value a forced mate maps to.
const DefaultMateScore = 10000

// Evaluation is the engine's verdict on a position. Scores are from the point
// of view of the side to move, as UCI reports them.
type Evaluation struct {
	Score    int    // Centipawns; meaningful when IsMate is false
	IsMate   bool   // True when the engine reports a forced mate
	MateIn   int    // Moves to mate; negative when the side to move is being mated
	Depth    int    // Search depth reached
	BestMove string // Best move in UCI notation, from bestmove or the first pv move
	Ponder   string // Expected reply, if known
	Seq      uint64 // Sequence number of the request that produced this result
}

// FormatEvaluation renders an evaluation as "+1.23" or "-M5".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := "+"
	score := eval.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// String implements fmt.Stringer.
func (e Evaluation) String() string {
	return FormatEvaluation(&e)
}

// Centipawns returns the score with a mate mapped to plus or minus mateScore,
// suitable for an evaluation bar. "mate 0" means the side to move is mated.
func (e Evaluation) Centipawns(mateScore int) int {
	if !e.IsMate {
		return e.Score
	}
	if e.MateIn > 0 {
		return mateScore
	}
	return -mateScore
}

// WhiteCentipawns is Centipawns from White's point of view, given the side to
// move in the evaluated position.
func (e Evaluation) WhiteCentipawns(toMove chess.Colour, mateScore int) int {
	cp := e.Centipawns(mateScore)
	if toMove == chess.Black {
		return -cp
	}
	return cp
}
