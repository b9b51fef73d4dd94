package uci

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/rules"
)

// Position is a position to evaluate: a starting FEN and the moves played from it.
type Position struct {
	FEN   string   // Empty means the standard initial position
	Moves []string // UCI moves played from FEN
}

// PositionFromBoard returns a Position for the board itself, with no moves.
func PositionFromBoard(board *chess.Board) Position {
	return Position{FEN: rules.BoardToFEN(board)}
}

// Command returns the UCI position command. The initial position uses the
// startpos shortcut.
func (p Position) Command() string {
	var sb strings.Builder
	if p.FEN == "" || p.FEN == rules.InitialFEN {
		sb.WriteString("position startpos")
	} else {
		sb.WriteString("position fen ")
		sb.WriteString(p.FEN)
	}
	if len(p.Moves) > 0 {
		sb.WriteString(" moves ")
		sb.WriteString(strings.Join(p.Moves, " "))
	}
	return sb.String()
}

// Limit bounds a search. Zero fields are not sent; an empty Limit searches to
// the engine's default depth.
type Limit struct {
	Depth    int
	MoveTime time.Duration
	Nodes    int64
}

// IsZero reports whether no bound is set.
func (l Limit) IsZero() bool {
	return l.Depth <= 0 && l.MoveTime <= 0 && l.Nodes <= 0
}

// Command returns the UCI go command, falling back to defaultDepth when the
// limit is empty.
func (l Limit) Command(defaultDepth int) string {
	if l.IsZero() {
		return fmt.Sprintf("go depth %d", defaultDepth)
	}
	parts := []string{"go"}
	if l.Depth > 0 {
		parts = append(parts, "depth", strconv.Itoa(l.Depth))
	}
	if l.MoveTime > 0 {
		parts = append(parts, "movetime", strconv.FormatInt(l.MoveTime.Milliseconds(), 10))
	}
	if l.Nodes > 0 {
		parts = append(parts, "nodes", strconv.FormatInt(l.Nodes, 10))
	}
	return strings.Join(parts, " ")
}

// targetDepth is the depth at which a request resolves without waiting for
// bestmove, or 0 when only bestmove ends it.
func (l Limit) targetDepth(defaultDepth int) int {
	if l.IsZero() {
		return defaultDepth
	}
	if l.MoveTime > 0 || l.Nodes > 0 {
		return 0
	}
	return l.Depth
}

// parseInfo folds an info line into eval. Fields not present on the line keep
// their previous values. A malformed field stops parsing and is reported as a
// *errors.ProtocolParseError; fields before it are still applied.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) error {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 >= len(fields) {
				return &errors.ProtocolParseError{Line: line, Reason: "depth without value"}
			}
			d, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return &errors.ProtocolParseError{Line: line, Reason: "bad depth"}
			}
			eval.Depth = d
			i++
		case "score":
			if i+2 >= len(fields) {
				return &errors.ProtocolParseError{Line: line, Reason: "score without value"}
			}
			n, err := strconv.Atoi(fields[i+2])
			if err != nil {
				return &errors.ProtocolParseError{Line: line, Reason: "bad score"}
			}
			switch fields[i+1] {
			case "cp":
				eval.Score = n
				eval.IsMate = false
				eval.MateIn = 0
			case "mate":
				eval.IsMate = true
				eval.MateIn = n
			default:
				return &errors.ProtocolParseError{Line: line, Reason: "unknown score type " + fields[i+1]}
			}
			i += 2
		case "pv":
			// pv runs to the end of the line.
			if i+1 < len(fields) {
				eval.BestMove = fields[i+1]
				eval.Ponder = ""
				if i+2 < len(fields) {
					eval.Ponder = fields[i+2]
				}
			}
			return nil
		case "string":
			// Free text runs to the end of the line.
			return nil
		}
	}
	return nil
}

// exactScore reports whether an info line carries a score that is not a
// lowerbound or upperbound. Lines without one, such as currmove updates, do not
// finish a depth.
func exactScore(line string) bool {
	scored := false
	for _, f := range strings.Fields(line) {
		switch f {
		case "score":
			scored = true
		case "lowerbound", "upperbound":
			return false
		case "pv", "string":
			return scored
		}
	}
	return scored
}

// parseBestMove reads "bestmove <move> [ponder <move>]" into eval.
func parseBestMove(line string, eval *Evaluation) error {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "bestmove" {
		return &errors.ProtocolParseError{Line: line, Reason: "bestmove without move"}
	}
	if fields[1] != "(none)" && fields[1] != "0000" {
		eval.BestMove = fields[1]
	} else {
		eval.BestMove = ""
	}
	eval.Ponder = ""
	if len(fields) >= 4 && fields[2] == "ponder" {
		eval.Ponder = fields[3]
	}
	return nil
}
