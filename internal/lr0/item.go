// Package lr0 builds the canonical collection of LR(0) item sets (the
// "item cluster") and the goto DFA over them, from a grammar.GrammarSet.
package lr0

import (
	"strings"

	"github.com/dekarrin/slrc/internal/grammar"
)

// Item is a production plus a dot position p in [0, len(RHS)]. The empty
// production yields exactly one item, at Dot 0, which is already completed
// (there is no symbol to its right to dot past).
type Item struct {
	NonTerminal grammar.Symbol
	RHS         grammar.Production
	Dot         int
}

// AllItems returns every dotted item derivable from rule's productions.
func AllItems(rule grammar.Rule) []Item {
	var items []Item
	for _, p := range rule.Productions {
		if p.IsEpsilon() {
			items = append(items, Item{NonTerminal: rule.NonTerminal})
			continue
		}
		for dot := 0; dot <= len(p); dot++ {
			items = append(items, Item{NonTerminal: rule.NonTerminal, RHS: p.Copy(), Dot: dot})
		}
	}
	return items
}

// Completed reports whether the dot is at the end of the item's RHS.
func (it Item) Completed() bool {
	return it.Dot >= len(it.RHS)
}

// NextSymbol returns the symbol immediately after the dot, and whether one
// exists (false if the item is completed).
func (it Item) NextSymbol() (grammar.Symbol, bool) {
	if it.Completed() {
		return "", false
	}
	return it.RHS[it.Dot], true
}

// Advance returns the item with the dot moved one position to the right.
// The caller must ensure the item is not completed.
func (it Item) Advance() Item {
	return Item{NonTerminal: it.NonTerminal, RHS: it.RHS, Dot: it.Dot + 1}
}

// Production reconstructs the Production this item's RHS represents,
// normalizing the zero-symbol (epsilon) case back to its sentinel form.
func (it Item) Production() grammar.Production {
	if len(it.RHS) == 0 {
		return grammar.Production{grammar.Epsilon}
	}
	return it.RHS
}

// key is the canonical string form used for set membership and equality.
func (it Item) key() string {
	return it.String()
}

// String renders the item in "LHS -> α • β" form, using "." for the dot so
// that it round-trips cleanly through text serialisation.
func (it Item) String() string {
	var sb strings.Builder
	sb.WriteString(it.NonTerminal)
	sb.WriteString(" -> ")

	if len(it.RHS) == 0 {
		sb.WriteString(".")
		return sb.String()
	}

	for i, sym := range it.RHS {
		if i == it.Dot {
			sb.WriteString(". ")
		}
		sb.WriteString(sym)
		if i != len(it.RHS)-1 {
			sb.WriteString(" ")
		}
	}
	if it.Dot == len(it.RHS) {
		sb.WriteString(" .")
	}
	return sb.String()
}
