package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/slrc/internal/slrerr"
)

// GrammarSet stores the productions of a context-free grammar along with
// memoised terminal/non-terminal sets. Rules are kept in insertion order so
// that iteration order (used to assign production ids in SLRTable) is
// deterministic and matches load order.
type GrammarSet struct {
	rulesByName map[Symbol]int
	rules       []Rule
	start       Symbol

	terminals    map[Symbol]bool
	nonTerminals map[Symbol]bool

	firstCache  map[Symbol]map[Symbol]bool
	followCache map[Symbol]map[Symbol]bool
}

// New returns an empty GrammarSet.
func New() *GrammarSet {
	return &GrammarSet{
		rulesByName: map[Symbol]int{},
	}
}

// StartSymbol returns the grammar's declared start symbol (unaugmented).
func (g *GrammarSet) StartSymbol() Symbol {
	return g.start
}

// SetStart sets the grammar's start symbol.
func (g *GrammarSet) SetStart(s Symbol) {
	g.start = s
	g.invalidateCaches()
}

// AugmentedStart returns the start symbol with StartSuffix appended.
func (g *GrammarSet) AugmentedStart() Symbol {
	return g.start + StartSuffix
}

// Rule returns the rule for the given non-terminal and whether it exists.
func (g *GrammarSet) Rule(nt Symbol) (Rule, bool) {
	idx, ok := g.rulesByName[nt]
	if !ok {
		return Rule{}, false
	}
	return g.rules[idx], true
}

// Rules returns the rules of the grammar in insertion order.
func (g *GrammarSet) Rules() []Rule {
	return g.rules
}

// AddRule adds a rule to the grammar, or appends productions to an existing
// rule of the same name. If this is the first rule added, it becomes the
// start symbol unless SetStart is called afterward.
func (g *GrammarSet) AddRule(nt Symbol, productions ...Production) {
	if idx, ok := g.rulesByName[nt]; ok {
		g.rules[idx].Productions = append(g.rules[idx].Productions, productions...)
	} else {
		g.rulesByName[nt] = len(g.rules)
		g.rules = append(g.rules, Rule{NonTerminal: nt, Productions: productions})
		if g.start == "" {
			g.start = nt
		}
	}
	g.invalidateCaches()
}

func (g *GrammarSet) invalidateCaches() {
	g.terminals = nil
	g.nonTerminals = nil
	g.firstCache = nil
	g.followCache = nil
}

// computeSymbols populates g.terminals and g.nonTerminals per spec:
// non_terminals = keys(productions); terminals = every rhs symbol that is
// not a non-terminal and not epsilon.
func (g *GrammarSet) computeSymbols() {
	if g.terminals != nil {
		return
	}

	g.nonTerminals = map[Symbol]bool{}
	for _, r := range g.rules {
		g.nonTerminals[r.NonTerminal] = true
	}

	g.terminals = map[Symbol]bool{}
	for _, r := range g.rules {
		for _, p := range r.Productions {
			for _, sym := range p {
				if sym == Epsilon {
					continue
				}
				if !g.nonTerminals[sym] {
					g.terminals[sym] = true
				}
			}
		}
	}
}

// Terminals returns the set of terminal symbols.
func (g *GrammarSet) Terminals() map[Symbol]bool {
	g.computeSymbols()
	return g.terminals
}

// NonTerminals returns the set of non-terminal symbols.
func (g *GrammarSet) NonTerminals() map[Symbol]bool {
	g.computeSymbols()
	return g.nonTerminals
}

// IsTerminal reports whether s is a terminal of g.
func (g *GrammarSet) IsTerminal(s Symbol) bool {
	g.computeSymbols()
	return g.terminals[s]
}

// IsNonTerminal reports whether s is a non-terminal of g.
func (g *GrammarSet) IsNonTerminal(s Symbol) bool {
	g.computeSymbols()
	return g.nonTerminals[s]
}

// Parse loads productions from the text grammar-file form: one production
// per line, "LHS -> α1 | α2 | ...", symbols separated by single spaces. The
// literal ε stands for the empty rhs and must be the sole rhs token. Blank
// lines are skipped. The first LHS encountered becomes the start symbol.
func Parse(text string) (*GrammarSet, error) {
	g := New()

	for lineNum, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		arrowIdx := strings.Index(line, "->")
		if arrowIdx < 0 {
			return nil, slrerr.Newf(slrerr.ErrGrammarFormat, "line %d: missing '->': %q", lineNum+1, line)
		}

		lhs := strings.TrimSpace(line[:arrowIdx])
		if lhs == "" {
			return nil, slrerr.Newf(slrerr.ErrGrammarFormat, "line %d: empty left-hand side", lineNum+1)
		}

		rhsPart := line[arrowIdx+2:]
		alts := strings.Split(rhsPart, "|")

		prods := make([]Production, 0, len(alts))
		for _, alt := range alts {
			fields := strings.Fields(alt)
			if len(fields) == 0 {
				return nil, slrerr.Newf(slrerr.ErrGrammarFormat, "line %d: empty alternative for %q", lineNum+1, lhs)
			}
			if len(fields) > 1 {
				for _, f := range fields {
					if f == Epsilon {
						return nil, slrerr.Newf(slrerr.ErrGrammarFormat, "line %d: %s must be the sole rhs token", lineNum+1, Epsilon)
					}
				}
			}
			prods = append(prods, Production(fields))
		}

		g.AddRule(lhs, prods...)
	}

	if len(g.rules) == 0 {
		return nil, slrerr.New(slrerr.ErrGrammarFormat, "grammar is empty")
	}

	return g, nil
}

// String renders g back into its text form.
func (g *GrammarSet) String() string {
	var sb strings.Builder
	for _, r := range g.rules {
		alts := make([]string, len(r.Productions))
		for i, p := range r.Productions {
			alts[i] = p.String()
		}
		fmt.Fprintf(&sb, "%s -> %s\n", r.NonTerminal, strings.Join(alts, " | "))
	}
	return sb.String()
}
