package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_simple(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("E", g.StartSymbol())
	assert.True(g.IsNonTerminal("E"))
	assert.True(g.IsNonTerminal("T"))
	assert.True(g.IsNonTerminal("F"))
	assert.True(g.IsTerminal("id"))
	assert.True(g.IsTerminal("+"))
	assert.False(g.IsTerminal("E"))
}

func Test_Parse_missingArrow(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("E + T")
	assert.Error(err)
}

func Test_Parse_epsilonMustBeSole(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("A -> ε b")
	assert.Error(err)
}

func Test_First_terminalsAndEpsilon(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`
		A -> B c
		B -> b | ε
	`)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(map[string]bool{"b": true}, g.First("b"))
	assert.Equal(map[string]bool{"b": true, Epsilon: true}, g.First("B"))
	assert.Equal(map[string]bool{"b": true, "c": true}, g.First("A"))
}

func Test_Follow_seededWithEndOfInput(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if !assert.NoError(err) {
		return
	}

	assert.True(g.Follow("E")[EndOfInput])
	assert.True(g.Follow("E")["+"])
	assert.True(g.Follow("E")[")"])
	assert.True(g.Follow("T")["*"])
	assert.True(g.Follow("T")["+"])
}
