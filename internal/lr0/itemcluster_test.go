package lr0

import (
	"testing"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func mustGrammar(t *testing.T, text string) *grammar.GrammarSet {
	t.Helper()
	g, err := grammar.Parse(text)
	if err != nil {
		t.Fatalf("parsing test grammar: %v", err)
	}
	return g
}

func Test_Build_initialStateKernel(t *testing.T) {
	assert := assert.New(t)

	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)

	ic, err := Build(g)
	if !assert.NoError(err) {
		return
	}

	s0, ok := ic.State(ic.InitialState())
	if !assert.True(ok) {
		return
	}
	assert.Equal(1, s0.Kernel.Len())

	items := s0.Kernel.Items()
	assert.Equal("E'", items[0].NonTerminal)
	assert.Equal(0, items[0].Dot)
}

func Test_Build_gotoIsTotalOverNextSymbols(t *testing.T) {
	assert := assert.New(t)

	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)

	ic, err := Build(g)
	if !assert.NoError(err) {
		return
	}

	for _, name := range ic.StateNames() {
		st, _ := ic.State(name)
		for sym := range st.Closure.NextSymbols() {
			_, ok := st.Goto[sym]
			assert.True(ok, "goto(%s, %s) should be defined", name, sym)
		}
	}
}

func Test_Build_closureEqualityMergesStates(t *testing.T) {
	assert := assert.New(t)

	g := mustGrammar(t, `
		S -> a S | a
	`)

	ic, err := Build(g)
	if !assert.NoError(err) {
		return
	}

	seen := map[string]bool{}
	for _, name := range ic.StateNames() {
		st, _ := ic.State(name)
		key := st.Closure.String()
		assert.False(seen[key], "duplicate closure for state %s", name)
		seen[key] = true
	}
}
