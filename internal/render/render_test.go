package render

import (
	"strings"
	"testing"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/lr0"
	"github.com/dekarrin/slrc/internal/semantic"
	"github.com/dekarrin/slrc/internal/slrtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildExprTable(t *testing.T) (*slrtable.Table, *grammar.GrammarSet) {
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
	return tbl, g
}

func Test_Table_RendersHeaderAndStates(t *testing.T) {
	tbl, g := buildExprTable(t)
	out := Table(tbl, g)
	assert.True(t, strings.Contains(out, "state"))
	assert.True(t, strings.Contains(out, "A:id"))
	assert.True(t, strings.Contains(out, "G:E"))
}

func Test_Conflicts_NoConflictsMessage(t *testing.T) {
	tbl, _ := buildExprTable(t)
	require.False(t, tbl.HasConflicts())
	assert.Equal(t, "(no conflicts)\n", Conflicts(tbl))
}

func Test_SymbolTableDump_DelegatesToRegistry(t *testing.T) {
	ctx := semantic.NewContext()
	assert.Equal(t, ctx.Registry.Dump(), SymbolTableDump(ctx.Registry))
}
