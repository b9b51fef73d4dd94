package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// ReportWriter is the interface for writing reports to output.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteReport writes a single report to the output.
	WriteReport(r *Report) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewReportWriter returns the writer cfg asks for: batched JSON or text.
func NewReportWriter(w io.Writer, cfg *config.Config) ReportWriter {
	if cfg.Output.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes reports as human-readable text.
type TextWriter struct {
	w           io.Writer
	showBoard   bool
	color       bool
	coordinates bool
	mateScore   int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:           w,
		showBoard:   cfg.Output.ShowBoard,
		color:       cfg.Output.Color,
		coordinates: cfg.Output.Coordinates,
		mateScore:   cfg.Engine.MateScore,
	}
}

// WriteReport writes one report followed by a blank line.
func (tw *TextWriter) WriteReport(r *Report) error {
	var sb strings.Builder

	if tw.showBoard && r.Board != nil {
		if err := RenderBoard(&sb, r.Board, BoardOptions{
			Color:       tw.color,
			Coordinates: tw.coordinates,
			Highlight:   r.Highlight,
			LastMove:    r.LastMove,
		}); err != nil {
			return err
		}
		sb.WriteString("\n")
	}

	if r.Session != "" {
		fmt.Fprintf(&sb, "Session: %s\n", r.Session)
	}
	if r.Error != "" {
		fmt.Fprintf(&sb, "FEN: %s\nError: %s\n\n", r.FEN, r.Error)
		_, err := io.WriteString(tw.w, sb.String())
		return err
	}
	fmt.Fprintf(&sb, "FEN: %s\n", r.FEN)
	if len(r.Moves) > 0 {
		fmt.Fprintf(&sb, "Moves: %s\n", strings.Join(r.Moves, " "))
	}
	fmt.Fprintf(&sb, "To move: %s\n", r.ToMove)
	fmt.Fprintf(&sb, "Status: %s (%s)\n", r.Status, r.Result)
	if r.InCheck {
		sb.WriteString("Check: yes\n")
	}
	fmt.Fprintf(&sb, "Legal moves (%d): %s\n", len(r.LegalMoves), strings.Join(r.LegalMoves, " "))

	if e := r.Evaluation; e != nil {
		fmt.Fprintf(&sb, "Evaluation: %s depth %d", e.Score, e.Depth)
		if e.BestMove != "" {
			fmt.Fprintf(&sb, " best %s", e.BestMove)
		}
		if e.Ponder != "" {
			fmt.Fprintf(&sb, " ponder %s", e.Ponder)
		}
		fmt.Fprintf(&sb, "\n%s\n", EvalBar(e.Centipawns, 20))
	}

	if p := r.Perft; p != nil {
		for _, line := range p.Divide {
			fmt.Fprintf(&sb, "%s: %d\n", line.Move, line.Nodes)
		}
		fmt.Fprintf(&sb, "Perft(%d): %d\n", p.Depth, p.Nodes)
	}
	sb.WriteString("\n")

	_, err := io.WriteString(tw.w, sb.String())
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Reports []*Report `json:"reports"`
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	reports []*Report
	single  bool // If true, write each report immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches reports and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		reports: make([]*Report, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each report immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteReport buffers a report for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteReport(r *Report) error {
	if jw.single {
		return WriteJSON(jw.w, r)
	}
	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}
	err := WriteJSON(jw.w, &JSONOutput{Reports: jw.reports})

	// Clear buffer after writing
	jw.reports = jw.reports[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
