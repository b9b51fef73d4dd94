// Package testutil provides shared test utilities for the chessrules-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// MoveStrings returns the UCI text of each move, sorted, for order-independent
// comparison of move lists.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// ContainsMove reports whether moves holds a move with the given UCI text.
func ContainsMove(moves []chess.Move, uci string) bool {
	for _, m := range moves {
		if m.String() == uci {
			return true
		}
	}
	return false
}

// MustSquare parses an algebraic square name and fails the test if it is invalid.
func MustSquare(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("invalid square %q: %v", name, err)
	}
	return sq
}

// MustMove parses a UCI move and fails the test if it is invalid.
func MustMove(t testing.TB, uci string) chess.Move {
	t.Helper()
	m, err := chess.ParseUCIMove(uci)
	if err != nil {
		t.Fatalf("invalid move %q: %v", uci, err)
	}
	return m
}
