// Package lex implements the token source: a small priority-ordered,
// regex-dispatch scanner that turns source text into the (type, lexeme)
// token stream the parse driver consumes. It is an external collaborator
// in the sense that the driver only depends on the Token shape, never on
// how a Token was produced.
package lex

// Token is one scanned lexical unit.
type Token struct {
	Type   string
	Lexeme string
	Line   int
}

// EndOfInput is the sentinel token type appended after the last real
// token, matching grammar.EndOfInput ("#").
const EndOfInput = "#"

// NewLine is the token type the driver skips rather than feeding to
// ACTION/GOTO lookup.
const NewLine = "NEWLINE"

// Unknown is the token type assigned to text matching no rule.
const Unknown = "UNKNOWN"
