// Package slrerr holds the error taxonomy shared by every stage of the
// compiler front end. Each kind aborts the current parse or build; none is
// recovered locally.
package slrerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Use errors.Is against these to classify a returned error;
// every error produced by this module wraps exactly one of them.
var (
	// ErrGrammarFormat marks a malformed production line in a grammar file.
	ErrGrammarFormat = errors.New("malformed grammar production")

	// ErrBuild marks a failure while constructing the item cluster or parse
	// table: no initial state, or a goto target that does not exist.
	ErrBuild = errors.New("grammar build error")

	// ErrParse marks a missing ACTION entry for (state, terminal).
	ErrParse = errors.New("parse error")

	// ErrConflict marks an ACTION cell with more than one action that was
	// actually dereferenced at parse time.
	ErrConflict = errors.New("parse conflict")

	// ErrSemantic marks any of the semantic-action error conditions:
	// redeclaration, undeclared identifier, mis-typed index, out-of-range
	// constant index, non-callable call, void-return in expression, type
	// mismatch, divide-by-zero in constant folding.
	ErrSemantic = errors.New("semantic error")

	// ErrSerialization marks a failure to open, write, or parse a
	// serialised artifact (CSV, JSON, or binary table/cluster dump).
	ErrSerialization = errors.New("serialization error")
)

// Error is the error type returned throughout the front end. It carries a
// technical message for logs plus an optional human-readable message for
// display, and wraps the sentinel kind it represents.
type Error struct {
	msg   string
	human string
	kind  error
}

// New creates an Error of the given kind with the given technical message.
func New(kind error, msg string) error {
	return Error{msg: msg, kind: kind}
}

// Newf is like New but formats msg like fmt.Sprintf.
func Newf(kind error, format string, args ...any) error {
	return Error{msg: fmt.Sprintf(format, args...), kind: kind}
}

// WithHuman attaches a human-readable message to an Error produced by this
// package. If err is not an Error, it is returned unmodified.
func WithHuman(err error, human string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.human = human
	return e
}

func (e Error) Error() string {
	return e.msg
}

// Human returns the human-readable message, falling back to the technical
// message if none was set.
func (e Error) Human() string {
	if e.human == "" {
		return e.msg
	}
	return e.human
}

func (e Error) Unwrap() error {
	return e.kind
}
