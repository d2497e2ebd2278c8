package semantic

import (
	"strings"

	"github.com/dekarrin/slrc/internal/tac"
)

// Context is the per-parse state shared by every semantic action: the
// table stack, the global table registry, and the TAC emitter's
// counters. All of it is parse-instance state; none of it is a package
// global, so two compilations can run with disjoint Contexts.
type Context struct {
	stack    []*SymbolTable
	Registry *Registry
	Emitter  *tac.Emitter
}

// NewContext returns a Context seeded with the system table at the
// bottom of the stack.
func NewContext() *Context {
	registry, system := NewRegistry()
	return &Context{
		stack:    []*SymbolTable{system},
		Registry: registry,
		Emitter:  tac.New(),
	}
}

// Top returns the table currently being populated.
func (c *Context) Top() *SymbolTable {
	return c.stack[len(c.stack)-1]
}

// Push pushes a new table onto the table stack.
func (c *Context) Push(t *SymbolTable) {
	c.stack = append(c.stack, t)
}

// Pop pops and returns the table at the top of the stack. The system
// table (stack[0]) is never popped.
func (c *Context) Pop() *SymbolTable {
	t := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return t
}

// ActionFunc receives a reduction's right-hand-side attributes in
// left-to-right order and returns the synthesised attribute for the
// left-hand side.
type ActionFunc func(ctx *Context, rhs []Attribute) (Attribute, error)

// ActionKey identifies a production by its left-hand side and its
// space-joined right-hand side, matching grammar.Production.String().
type ActionKey struct {
	NonTerminal string
	RHS         string
}

// ActionTable maps a production to the action invoked at its reduction.
// Registering actions in a table rather than a per-subclass virtual
// method keeps the driver free of grammar knowledge and the action
// surface open for extension.
type ActionTable map[ActionKey]ActionFunc

// Lookup finds the action for a production, given its left-hand side and
// right-hand-side symbols.
func (t ActionTable) Lookup(nt string, rhs []string) (ActionFunc, bool) {
	key := ActionKey{NonTerminal: nt, RHS: strings.Join(rhs, " ")}
	fn, ok := t[key]
	return fn, ok
}

func genLabels(labels []string) string {
	var sb strings.Builder
	for _, l := range labels {
		sb.WriteString(tac.GenLabel(l))
	}
	return sb.String()
}

// NewBaselineActions returns the action table for the 47-production
// baseline grammar: every D/A/T declaration, S/S'/B statement and
// boolean, E/R/R' expression, and the P program root.
func NewBaselineActions() ActionTable {
	t := ActionTable{}
	registerDeclActions(t)
	registerStmtActions(t)
	registerExprActions(t)
	return t
}
