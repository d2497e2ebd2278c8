// Package parse implements the table-driven shift/reduce driver: it
// walks a token stream against an SLRTable, invoking the semantic action
// registered for each reduction and exposing the resulting program
// attribute and symbol-table registry on acceptance.
package parse

import (
	"fmt"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/lex"
	"github.com/dekarrin/slrc/internal/semantic"
	"github.com/dekarrin/slrc/internal/slrerr"
	"github.com/dekarrin/slrc/internal/slrtable"
)

// TraceStep is one (state, token, action) triple recorded during a
// parse, surfaced so a caller can inspect or replay a run without
// re-parsing.
type TraceStep struct {
	State  int
	Token  lex.Token
	Action slrtable.Action
}

// Driver runs one parse at a time against a fixed table and action
// registry. A Driver holds no per-parse state between calls to Parse, so
// one Driver can serve concurrent parses as long as each Parse call uses
// its own Context (Parse constructs a fresh one every time).
type Driver struct {
	Table   *slrtable.Table
	Actions semantic.ActionTable
}

// New returns a Driver bound to table and actions.
func New(table *slrtable.Table, actions semantic.ActionTable) *Driver {
	return &Driver{Table: table, Actions: actions}
}

// Result is everything a successful parse exposes: the synthesised
// program attribute, the finished table registry, and the trace of
// states/tokens/actions taken.
type Result struct {
	Program  semantic.Attribute
	Registry *semantic.Registry
	Trace    []TraceStep
}

// Parse runs tokens (already lexed, NOT required to end in
// lex.EndOfInput — Parse appends it if missing) against the driver's
// table, invoking semantic actions from Actions at each reduction.
func (d *Driver) Parse(tokens []lex.Token) (*Result, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lex.EndOfInput {
		tokens = append(append([]lex.Token{}, tokens...), lex.Token{Type: lex.EndOfInput})
	}

	ctx := semantic.NewContext()

	stateStack := []int{d.Table.StartState}
	attrStack := []semantic.Attribute{}

	var trace []TraceStep

	pos := 0
	next := func() lex.Token {
		for pos < len(tokens) && tokens[pos].Type == lex.NewLine {
			pos++
		}
		if pos >= len(tokens) {
			return lex.Token{Type: lex.EndOfInput}
		}
		tok := tokens[pos]
		pos++
		return tok
	}

	tok := next()

	for {
		state := stateStack[len(stateStack)-1]
		actions := d.Table.ActionsAt(state, tok.Type)
		if len(actions) == 0 {
			return nil, slrerr.Newf(slrerr.ErrParse, "no action for state %d on token %q (%q)", state, tok.Type, tok.Lexeme)
		}
		if len(actions) > 1 {
			return nil, slrerr.Newf(slrerr.ErrConflict, "parse conflict at state %d on token %q: %v", state, tok.Type, actions)
		}
		action := actions[0]
		trace = append(trace, TraceStep{State: state, Token: tok, Action: action})

		switch action.Type {
		case slrtable.Shift:
			stateStack = append(stateStack, action.StateID)
			attrStack = append(attrStack, semantic.Leaf(tok.Lexeme))
			tok = next()

		case slrtable.Reduce:
			prod, ok := d.Table.Production(action.ProdID)
			if !ok {
				return nil, slrerr.Newf(slrerr.ErrBuild, "no production for id %d", action.ProdID)
			}
			n := len(prod.RHS)
			if prod.RHS.IsEpsilon() {
				n = 0
			}

			var rhsAttrs []semantic.Attribute
			if n > 0 {
				rhsAttrs = append(rhsAttrs, attrStack[len(attrStack)-n:]...)
				stateStack = stateStack[:len(stateStack)-n]
				attrStack = attrStack[:len(attrStack)-n]
			}

			rhsSyms := make([]string, 0, n)
			if n > 0 {
				rhsSyms = append(rhsSyms, prod.RHS...)
			} else if prod.RHS.IsEpsilon() {
				rhsSyms = append(rhsSyms, grammar.Epsilon)
			}

			fn, ok := d.Actions.Lookup(prod.NonTerminal, rhsSyms)
			if !ok {
				return nil, slrerr.Newf(slrerr.ErrSemantic, "no action registered for %s -> %s", prod.NonTerminal, prod.RHS.String())
			}
			synth, err := fn(ctx, rhsAttrs)
			if err != nil {
				return nil, err
			}

			top := stateStack[len(stateStack)-1]
			target, ok := d.Table.GotoAt(top, prod.NonTerminal)
			if !ok {
				return nil, slrerr.Newf(slrerr.ErrBuild, "no goto from state %d on %q", top, prod.NonTerminal)
			}
			stateStack = append(stateStack, target)
			attrStack = append(attrStack, synth)

		case slrtable.Accept:
			return &Result{
				Program:  attrStack[len(attrStack)-1],
				Registry: ctx.Registry,
				Trace:    trace,
			}, nil

		default:
			return nil, slrerr.Newf(slrerr.ErrParse, "error action at state %d on token %q", state, tok.Type)
		}
	}
}

// String renders a trace step for debugging.
func (s TraceStep) String() string {
	return fmt.Sprintf("state=%d token=%s(%q) action=%s", s.State, s.Token.Type, s.Token.Lexeme, s.Action.String())
}
