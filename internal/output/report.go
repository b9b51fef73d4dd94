package output

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/rules"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

// Report describes a position for the command-line tools.
type Report struct {
	Session    string            `json:"session,omitempty"`
	FEN        string            `json:"fen"`
	ToMove     string            `json:"toMove"` // "white" or "black"
	Status     string            `json:"status"`
	Result     string            `json:"result"`
	InCheck    bool              `json:"inCheck"`
	Moves      []string          `json:"moves,omitempty"` // moves played to reach the position
	LegalMoves []string          `json:"legalMoves"`
	Evaluation *EvaluationReport `json:"evaluation,omitempty"`
	Perft      *PerftReport      `json:"perft,omitempty"`
	Error      string            `json:"error,omitempty"`

	// Rendering hints for text output
	Board     *chess.Board   `json:"-"`
	LastMove  *chess.Move    `json:"-"`
	Highlight []chess.Square `json:"-"`
}

// EvaluationReport is an engine evaluation in report form.
type EvaluationReport struct {
	Score      string `json:"score"`      // As FormatEvaluation renders it
	Centipawns int    `json:"centipawns"` // From White's point of view, mates clamped
	Mate       int    `json:"mate,omitempty"`
	Depth      int    `json:"depth"`
	BestMove   string `json:"bestMove,omitempty"`
	Ponder     string `json:"ponder,omitempty"`
}

// PerftReport holds a perft count and, optionally, its per-move breakdown.
type PerftReport struct {
	Depth  int          `json:"depth"`
	Nodes  uint64       `json:"nodes"`
	Divide []DivideLine `json:"divide,omitempty"`
}

// DivideLine is one root move's share of a perft count.
type DivideLine struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// NewReport describes board, given the positions that preceded it for
// repetition detection.
func NewReport(board *chess.Board, history []chess.Board) *Report {
	status := rules.GameStatus(board, history)
	legal := rules.LegalMoves(board)

	r := &Report{
		FEN:        rules.BoardToFEN(board),
		ToMove:     colourName(board.ToMove),
		Status:     status.String(),
		Result:     status.Result(board.ToMove),
		InCheck:    rules.IsInCheck(board, board.ToMove),
		LegalMoves: make([]string, 0, len(legal)),
		Board:      board.Copy(),
	}
	for _, m := range legal {
		r.LegalMoves = append(r.LegalMoves, m.String())
	}
	return r
}

// SetEvaluation attaches an engine evaluation of the reported position.
func (r *Report) SetEvaluation(eval uci.Evaluation, mateScore int) {
	toMove := chess.White
	if r.Board != nil {
		toMove = r.Board.ToMove
	}
	er := &EvaluationReport{
		Score:      uci.FormatEvaluation(&eval),
		Centipawns: eval.WhiteCentipawns(toMove, mateScore),
		Depth:      eval.Depth,
		BestMove:   eval.BestMove,
		Ponder:     eval.Ponder,
	}
	if eval.IsMate {
		er.Mate = eval.MateIn
	}
	r.Evaluation = er
}

// NewPerftReport summarises a divide run.
func NewPerftReport(depth int, results []rules.DivideResult) *PerftReport {
	pr := &PerftReport{
		Depth:  depth,
		Nodes:  rules.TotalNodes(results),
		Divide: make([]DivideLine, 0, len(results)),
	}
	for _, res := range results {
		pr.Divide = append(pr.Divide, DivideLine{Move: res.Move.String(), Nodes: res.Nodes})
	}
	return pr
}

func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
