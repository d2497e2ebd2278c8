package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BaselineGrammar_ParsesFortySevenProductions(t *testing.T) {
	g, err := BaselineGrammar()
	require.NoError(t, err)

	count := 0
	for _, r := range g.Rules() {
		count += len(r.Productions)
	}
	assert.Equal(t, 47, count)
	assert.Equal(t, Symbol("P"), g.StartSymbol())
}

func Test_BaselineGrammar_TerminalsIncludeBaselineTokens(t *testing.T) {
	g, err := BaselineGrammar()
	require.NoError(t, err)

	for _, want := range []string{"d", "i", "f", "r", "+", "-", "*", "/", "=", "(", ")", "[", "]", "{", "}", ",", ";", "∧", "∨", "if", "else", "while", "for", "return", "print", "input", "int", "void", "float"} {
		assert.True(t, g.IsTerminal(Symbol(want)), "expected %q to be a terminal", want)
	}
}

func Test_BaselineGrammar_NonTerminalsAreNotTerminals(t *testing.T) {
	g, err := BaselineGrammar()
	require.NoError(t, err)

	for _, nt := range []string{"P", "D'", "D", "T", "A'", "A", "S'", "S", "B", "E", "R'", "R"} {
		assert.True(t, g.IsNonTerminal(Symbol(nt)))
		assert.False(t, g.IsTerminal(Symbol(nt)))
	}
}
