// Package output renders positions and reports as text or JSON.
package output

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/rules"
)

// BoardOptions controls RenderBoard.
type BoardOptions struct {
	Color       bool           // ANSI colours for squares and pieces
	Coordinates bool           // Rank and file labels
	Flip        bool           // Black at the bottom
	Highlight   []chess.Square // Squares to mark, e.g. legal destinations
	LastMove    *chess.Move    // Origin and destination are tinted
}

// Theme holds the colours RenderBoard uses.
type Theme struct {
	SquareLight color.Attribute
	SquareDark  color.Attribute
	SquareHigh  color.Attribute // last move
	SquareHint  color.Attribute // highlighted squares
	SquareCheck color.Attribute // king in check
	White       color.Attribute
	Black       color.Attribute
	Label       color.Attribute
}

// DefaultTheme is used by RenderBoard.
var DefaultTheme = Theme{
	SquareLight: color.BgHiBlack,
	SquareDark:  color.BgBlack,
	SquareHigh:  color.BgYellow,
	SquareHint:  color.BgCyan,
	SquareCheck: color.BgRed,
	White:       color.FgHiWhite,
	Black:       color.FgHiRed,
	Label:       color.FgHiBlue,
}

// RenderBoard draws board with rank 8 at the top (rank 1 when flipped).
// Without colour, empty highlighted squares show as '*' and other empty
// squares as '.'.
func RenderBoard(w io.Writer, board *chess.Board, opts BoardOptions) error {
	bw := bufio.NewWriter(w)
	t := DefaultTheme

	hint := make(map[chess.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		hint[sq] = true
	}
	checked := chess.NoSquare
	if rules.IsInCheck(board, board.ToMove) {
		checked = board.KingSquare(board.ToMove)
	}

	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.BoardSize - 1 - row
		if opts.Flip {
			rank = row
		}
		if opts.Coordinates {
			bw.WriteString(paint(opts.Color, color.New(t.Label), string(rune('1'+rank))+" "))
		}
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if opts.Flip {
				file = chess.BoardSize - 1 - col
			}
			sq := chess.NewSquare(file, rank)
			cell := renderSquare(board, sq, opts, t, hint[sq], sq == checked)
			if !opts.Color && col < chess.BoardSize-1 {
				cell += " "
			}
			bw.WriteString(cell)
		}
		bw.WriteString("\n")
	}

	if opts.Coordinates {
		files := "a b c d e f g h"
		if opts.Flip {
			files = "h g f e d c b a"
		}
		if opts.Color {
			// Coloured squares are three columns wide.
			files = " " + strings.ReplaceAll(files, " ", "  ") + " "
		}
		bw.WriteString(paint(opts.Color, color.New(t.Label), "  "+files) + "\n")
	}
	return bw.Flush()
}

func renderSquare(board *chess.Board, sq chess.Square, opts BoardOptions, t Theme, hint, check bool) string {
	p := board.Get(sq)
	if !opts.Color {
		if p.IsEmpty() && hint {
			return "*"
		}
		return string(p.Letter())
	}

	bg := t.SquareDark
	if sq.IsLight() {
		bg = t.SquareLight
	}
	if opts.LastMove != nil && (opts.LastMove.From == sq || opts.LastMove.To == sq) {
		bg = t.SquareHigh
	}
	if hint {
		bg = t.SquareHint
	}
	if check {
		bg = t.SquareCheck
	}

	text := "   "
	fg := t.White
	if !p.IsEmpty() {
		text = " " + p.String() + " "
		if p.Colour == chess.Black {
			fg = t.Black
		}
	}
	return paint(true, color.New(bg, fg, color.Bold), text)
}

// paint applies c to s when enabled. The colour library's own terminal
// detection is bypassed.
func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

// WinProbability converts a centipawn score to an expected score between 0
// and 1 for the side it favours.
func WinProbability(cp int) float64 {
	return 1 / (1 + math.Pow(10, -float64(cp)/400))
}

// EvalBar draws a width-cell bar filled in proportion to White's winning
// chances, e.g. "[######....]".
func EvalBar(whiteCP, width int) string {
	if width < 1 {
		return "[]"
	}
	filled := int(math.Round(WinProbability(whiteCP) * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
