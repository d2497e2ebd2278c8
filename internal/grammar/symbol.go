// Package grammar holds the context-free grammar model used by the rest of
// the compiler front end: productions, terminal/non-terminal sets, and the
// FIRST and FOLLOW sets derived from them.
package grammar

// Epsilon is the sentinel symbol for the empty production.
const Epsilon = "ε"

// EndOfInput is the sentinel symbol injected into FOLLOW(start) to represent
// the end of the token stream.
const EndOfInput = "#"

// StartSuffix is appended to a grammar's declared start symbol to produce
// the augmented start symbol used by the item-cluster and table builders.
const StartSuffix = "'"

// Symbol is a grammar symbol. Every symbol, terminal or non-terminal, is a
// plain string; no numeric interning happens at this layer (see the design
// notes: the map-keyed representation is clearer at teaching scale and the
// cost is negligible).
type Symbol = string

// IsEpsilon reports whether s is the empty-production sentinel.
func IsEpsilon(s Symbol) bool {
	return s == Epsilon
}
