package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestAssertions(t *testing.T) {
	t.Parallel()
	var nilPtr *int
	sentinel := errors.New("sentinel")
	wrapped := fmt.Errorf("context: %w", sentinel)

	tests := []struct {
		name     string
		assert   func(tb testing.TB)
		wantFail string // empty when the assertion should pass
	}{
		{"equal", func(tb testing.TB) { AssertEqual(tb, []int{1, 2}, []int{1, 2}) }, ""},
		{"not equal", func(tb testing.TB) { AssertEqual(tb, 1, 2) }, "mismatch (-want +got)"},
		{"not equal with message", func(tb testing.TB) { AssertEqual(tb, "a", "b", "ply %d", 3) }, "ply 3: mismatch"},
		{"no error", func(tb testing.TB) { AssertNoError(tb, nil) }, ""},
		{"unexpected error", func(tb testing.TB) { AssertNoError(tb, sentinel, "parse") }, "parse: unexpected error: sentinel"},
		{"error", func(tb testing.TB) { AssertError(tb, sentinel) }, ""},
		{"missing error", func(tb testing.TB) { AssertError(tb, nil) }, "expected error but got nil"},
		{"error is", func(tb testing.TB) { AssertErrorIs(tb, wrapped, sentinel) }, ""},
		{"error is not", func(tb testing.TB) { AssertErrorIs(tb, errors.New("other"), sentinel) }, "does not match sentinel"},
		{"contains", func(tb testing.TB) { AssertContains(tb, "hello world", "world") }, ""},
		{"contains empty", func(tb testing.TB) { AssertContains(tb, "test", "") }, ""},
		{"does not contain", func(tb testing.TB) { AssertContains(tb, "hello", "xyz") }, `"hello" does not contain "xyz"`},
		{"not contains", func(tb testing.TB) { AssertNotContains(tb, "hello", "xyz") }, ""},
		{"unwanted substring", func(tb testing.TB) { AssertNotContains(tb, "hello", "ell") }, "should not contain"},
		{"true", func(tb testing.TB) { AssertTrue(tb, true) }, ""},
		{"false as true", func(tb testing.TB) { AssertTrue(tb, false) }, "expected true but got false"},
		{"false", func(tb testing.TB) { AssertFalse(tb, false) }, ""},
		{"true as false", func(tb testing.TB) { AssertFalse(tb, true) }, "expected false but got true"},
		{"untyped nil", func(tb testing.TB) { AssertNil(tb, nil) }, ""},
		{"typed nil", func(tb testing.TB) { AssertNil(tb, nilPtr) }, ""},
		{"non-nil as nil", func(tb testing.TB) { AssertNil(tb, 42) }, "expected nil but got 42"},
		{"not nil", func(tb testing.TB) { AssertNotNil(tb, []int{}) }, ""},
		{"typed nil as not nil", func(tb testing.TB) { AssertNotNil(tb, nilPtr) }, "expected non-nil value"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &recorder{TB: t}
			tt.assert(r)
			if tt.wantFail == "" {
				AssertEqual(t, len(r.failures), 0, "failures: %v", r.failures)
				return
			}
			AssertEqual(t, len(r.failures), 1)
			AssertContains(t, strings.Join(r.failures, "\n"), tt.wantFail)
		})
	}
}

func TestAssertMoves(t *testing.T) {
	t.Parallel()
	moves := []chess.Move{
		{From: chess.G1, To: chess.NewSquare(5, 2)},
		{From: chess.B1, To: chess.NewSquare(2, 2)},
	}

	r := &recorder{TB: t}
	AssertMoves(r, moves, "b1c3", "g1f3")
	AssertMoves(r, nil)
	AssertEqual(t, len(r.failures), 0, "failures: %v", r.failures)

	AssertMoves(r, moves, "g1f3")
	AssertEqual(t, len(r.failures), 1)
	AssertContains(t, r.failures[0], "moves mismatch")
}

func TestFormatMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
		{"non-string first", []interface{}{7, "ignored"}, "7"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			AssertEqual(t, formatMessage(tt.args...), tt.want)
		})
	}
}
