package lr0

import (
	"sort"
	"strings"

	"github.com/dekarrin/slrc/internal/grammar"
)

// ItemSet is a set of Items, keyed internally by their canonical string form
// for fast equality and lookup; spec's "keyed by lhs" requirement is served
// by byNonTerminal, an index used to speed up closure expansion.
type ItemSet struct {
	items         map[string]Item
	byNonTerminal map[grammar.Symbol][]string
}

// NewItemSet returns an empty ItemSet.
func NewItemSet() *ItemSet {
	return &ItemSet{
		items:         map[string]Item{},
		byNonTerminal: map[grammar.Symbol][]string{},
	}
}

// Add inserts it into the set. No-op if already present.
func (s *ItemSet) Add(it Item) {
	k := it.key()
	if _, ok := s.items[k]; ok {
		return
	}
	s.items[k] = it
	s.byNonTerminal[it.NonTerminal] = append(s.byNonTerminal[it.NonTerminal], k)
}

// Has reports whether it is a member of s.
func (s *ItemSet) Has(it Item) bool {
	_, ok := s.items[it.key()]
	return ok
}

// Len returns the number of items in s.
func (s *ItemSet) Len() int {
	return len(s.items)
}

// Items returns every item in s, ordered by canonical string for
// determinism.
func (s *ItemSet) Items() []Item {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]Item, len(keys))
	for i, k := range keys {
		items[i] = s.items[k]
	}
	return items
}

// String renders the set's canonical keys in sorted order, one per line;
// two sets with identical String() output are Equal.
func (s *ItemSet) String() string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}

// Equal reports whether s and o contain exactly the same items.
func (s *ItemSet) Equal(o *ItemSet) bool {
	if o == nil {
		return false
	}
	if len(s.items) != len(o.items) {
		return false
	}
	for k := range s.items {
		if _, ok := o.items[k]; !ok {
			return false
		}
	}
	return true
}

// NextSymbols returns every symbol that appears immediately after the dot
// in some non-completed item of s.
func (s *ItemSet) NextSymbols() map[grammar.Symbol]bool {
	syms := map[grammar.Symbol]bool{}
	for _, it := range s.items {
		if sym, ok := it.NextSymbol(); ok {
			syms[sym] = true
		}
	}
	return syms
}

// Closure returns the closure of s under g: iteratively, for every item
// with the dot before a non-terminal X, add [X -> •γ] for every production
// of X. Terminates because the set of items over a finite grammar is
// finite.
func (s *ItemSet) Closure(g *grammar.GrammarSet) *ItemSet {
	closure := NewItemSet()
	for _, it := range s.Items() {
		closure.Add(it)
	}

	for {
		more := false

		for _, it := range closure.Items() {
			sym, ok := it.NextSymbol()
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}

			rule, ok := g.Rule(sym)
			if !ok {
				continue
			}

			for _, newItem := range AllItems(rule) {
				if !closure.Has(newItem) {
					closure.Add(newItem)
					more = true
				}
			}
		}

		if !more {
			break
		}
	}

	return closure
}

// Goto returns the closure of { [A -> αX•β] : [A -> α•Xβ] ∈ s } for the
// given symbol X. Completed items and ε-only productions never contribute
// (there is no symbol to dot past).
func (s *ItemSet) Goto(g *grammar.GrammarSet, sym grammar.Symbol) *ItemSet {
	advanced := NewItemSet()
	for _, it := range s.Items() {
		next, ok := it.NextSymbol()
		if !ok || next != sym {
			continue
		}
		advanced.Add(it.Advance())
	}
	return advanced.Closure(g)
}
