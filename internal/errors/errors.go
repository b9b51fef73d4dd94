// Package errors provides sentinel errors and error types for the chess rules
// engine and the UCI engine client. It defines common error conditions and
// structured error types that preserve context while allowing error inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidMove indicates move text that cannot be parsed at all.
	ErrInvalidMove = errors.New("invalid move text")

	// ErrEngineLaunch indicates the engine subprocess could not be started.
	ErrEngineLaunch = errors.New("engine launch failed")

	// ErrEngineUnavailable indicates the engine subprocess died or stopped accepting input.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrProtocolParse indicates engine output that could not be understood.
	ErrProtocolParse = errors.New("protocol parse error")

	// ErrSuperseded indicates an evaluation request was replaced by a newer one.
	ErrSuperseded = errors.New("evaluation superseded")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNothingToUndo indicates an undo on a game with no moves played.
	ErrNothingToUndo = errors.New("no moves to undo")
)

// IllegalMoveError reports a move that was rejected because it is not legal
// in the given position. The position is left unchanged.
type IllegalMoveError struct {
	Move   string // The rejected move in UCI notation
	FEN    string // The position the move was tried in
	Reason string // Optional detail, e.g. "no piece on e3"
}

// Error returns a formatted error message including all available context.
func (e *IllegalMoveError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("move %q", e.Move))
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.FEN))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), ErrIllegalMove)
}

// Unwrap returns ErrIllegalMove so callers can use errors.Is().
func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// ParseError represents a FEN or move-text parsing error with field context.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Field    string // Which part of the input failed (e.g. "castling")
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.Input))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EngineLaunchError reports that the engine executable could not be started or
// did not complete the handshake.
type EngineLaunchError struct {
	Path string // The executable path
	Err  error  // The underlying cause
}

// Error returns a formatted error message.
func (e *EngineLaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrEngineLaunch, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrEngineLaunch, e.Path)
}

// Unwrap exposes both ErrEngineLaunch and the underlying cause.
func (e *EngineLaunchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEngineLaunch}
	}
	return []error{ErrEngineLaunch, e.Err}
}

// EngineUnavailableError reports a subprocess that died or could not be written
// to mid-session.
type EngineUnavailableError struct {
	Op  string // The operation that failed (e.g. "write", "read")
	Err error  // The underlying cause
}

// Error returns a formatted error message.
func (e *EngineUnavailableError) Error() string {
	msg := ErrEngineUnavailable.Error()
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Op)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both ErrEngineUnavailable and the underlying cause.
func (e *EngineUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEngineUnavailable}
	}
	return []error{ErrEngineUnavailable, e.Err}
}

// ProtocolParseError describes an engine output line that could not be parsed.
// It is logged by the client and never returned to callers.
type ProtocolParseError struct {
	Line   string
	Reason string
}

// Error returns a formatted error message.
func (e *ProtocolParseError) Error() string {
	return fmt.Sprintf("%v: %s: %q", ErrProtocolParse, e.Reason, e.Line)
}

// Unwrap returns ErrProtocolParse.
func (e *ProtocolParseError) Unwrap() error {
	return ErrProtocolParse
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
