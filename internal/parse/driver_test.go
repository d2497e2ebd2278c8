package parse

import (
	"testing"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/lex"
	"github.com/dekarrin/slrc/internal/lr0"
	"github.com/dekarrin/slrc/internal/semantic"
	"github.com/dekarrin/slrc/internal/slrtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildExprDriver builds a Driver for the classic unambiguous expression
// grammar `E -> E + T | T; T -> T * F | F; F -> ( E ) | id`, with actions
// that build a fully-parenthesised string so the reduction order is
// externally observable.
func buildExprDriver(t *testing.T) *Driver {
	t.Helper()
	g, err := grammar.Parse(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	require.NoError(t, err)
	ic, err := lr0.Build(g)
	require.NoError(t, err)
	tbl, err := slrtable.Build(g, ic)
	require.NoError(t, err)
	require.False(t, tbl.HasConflicts())

	actions := semantic.ActionTable{}
	leaf := func(ctx *semantic.Context, rhs []semantic.Attribute) (semantic.Attribute, error) {
		return semantic.Attribute{PlaceSingle: rhs[0].Value}, nil
	}
	actions[semantic.ActionKey{NonTerminal: "E", RHS: "T"}] = leaf
	actions[semantic.ActionKey{NonTerminal: "T", RHS: "F"}] = leaf
	actions[semantic.ActionKey{NonTerminal: "E", RHS: "E + T"}] = func(ctx *semantic.Context, rhs []semantic.Attribute) (semantic.Attribute, error) {
		return semantic.Attribute{PlaceSingle: "(" + rhs[0].PlaceSingle + "+" + rhs[2].PlaceSingle + ")"}, nil
	}
	actions[semantic.ActionKey{NonTerminal: "T", RHS: "T * F"}] = func(ctx *semantic.Context, rhs []semantic.Attribute) (semantic.Attribute, error) {
		return semantic.Attribute{PlaceSingle: "(" + rhs[0].PlaceSingle + "*" + rhs[2].PlaceSingle + ")"}, nil
	}
	actions[semantic.ActionKey{NonTerminal: "F", RHS: "( E )"}] = func(ctx *semantic.Context, rhs []semantic.Attribute) (semantic.Attribute, error) {
		return rhs[1], nil
	}
	actions[semantic.ActionKey{NonTerminal: "F", RHS: "id"}] = leaf

	return New(tbl, actions)
}

func tok(typ string) lex.Token {
	return lex.Token{Type: typ, Lexeme: typ}
}

func Test_Parse_SimpleExpression(t *testing.T) {
	d := buildExprDriver(t)

	tokens := []lex.Token{tok("id"), tok("+"), tok("id"), tok("*"), tok("id")}
	result, err := d.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(id+(id*id))", result.Program.PlaceSingle)
	assert.NotEmpty(t, result.Trace)
}

func Test_Parse_Parenthesised(t *testing.T) {
	d := buildExprDriver(t)

	tokens := []lex.Token{tok("("), tok("id"), tok("+"), tok("id"), tok(")"), tok("*"), tok("id")}
	result, err := d.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "((id+id)*id)", result.Program.PlaceSingle)
}

func Test_Parse_UnexpectedTokenIsAParseError(t *testing.T) {
	d := buildExprDriver(t)

	tokens := []lex.Token{tok("+"), tok("id")}
	_, err := d.Parse(tokens)
	assert.Error(t, err)
}

func Test_Parse_SkipsNewlineTokens(t *testing.T) {
	d := buildExprDriver(t)

	tokens := []lex.Token{tok("id"), {Type: lex.NewLine}, tok("+"), tok("id")}
	result, err := d.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(id+id)", result.Program.PlaceSingle)
}
