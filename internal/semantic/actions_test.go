package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reduce looks up the action for (nt, rhsKey) in the baseline table and
// invokes it, failing the test immediately if no action is registered.
func reduce(t *testing.T, actions ActionTable, ctx *Context, nt, rhsKey string, rhs ...Attribute) Attribute {
	t.Helper()
	fn, ok := actions[ActionKey{NonTerminal: nt, RHS: rhsKey}]
	require.Truef(t, ok, "no action registered for %s -> %s", nt, rhsKey)
	attr, err := fn(ctx, rhs)
	require.NoError(t, err)
	return attr
}

// Test_S1_VarDecl reproduces scenario S1: `int a;` declares one Var entry
// at offset 4 and leaves width at 4, with no emitted TAC.
func Test_S1_VarDecl(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	typ := reduce(t, actions, ctx, "T", "int")
	decl := reduce(t, actions, ctx, "D", "T d", typ, Leaf("a"))

	assert.Equal(t, []string{"a"}, decl.Place)

	entry, table, ok := ctx.Top().Lookup("a")
	require.True(t, ok)
	assert.Same(t, ctx.Top(), table)
	assert.Equal(t, KindVar, entry.Kind)
	assert.Equal(t, "int", entry.Type)
	assert.Equal(t, 4, entry.Offset)
	assert.Equal(t, 4, ctx.Top().Width)
}

// Test_S2_ArithmeticAssignment reproduces scenario S2: `int x; x = 1 + 2 *
// 3;` emits the documented six-line TAC block with a fresh counter pair.
func Test_S2_ArithmeticAssignment(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	typ := reduce(t, actions, ctx, "T", "int")
	reduce(t, actions, ctx, "D", "T d", typ, Leaf("x"))

	one := reduce(t, actions, ctx, "E", "i", Leaf("1"))
	two := reduce(t, actions, ctx, "E", "i", Leaf("2"))
	three := reduce(t, actions, ctx, "E", "i", Leaf("3"))
	mul := reduce(t, actions, ctx, "E", "E * E", two, Attribute{}, three)
	sum := reduce(t, actions, ctx, "E", "E + E", one, Attribute{}, mul)
	assign := reduce(t, actions, ctx, "S", "d = E", Leaf("x"), Attribute{}, sum)

	want := "t0 = 1;\n" +
		"t1 = 2;\n" +
		"t2 = 3;\n" +
		"t3 = t1 * t2;\n" +
		"t4 = t0 + t3;\n" +
		"x = t4;\n"
	assert.Equal(t, want, assign.Code)

	entry, _, ok := ctx.Top().Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "int", entry.Type)
	assert.Equal(t, 4, entry.Offset)
	assert.Equal(t, 4, ctx.Top().Width)
}

// Test_S3_IfElse reproduces scenario S3's TAC shape for `if (a) { x = 1; }
// else { x = 2; }` with a and x already declared as int.
func Test_S3_IfElse(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	typ := reduce(t, actions, ctx, "T", "int")
	reduce(t, actions, ctx, "D", "T d", typ, Leaf("a"))
	typ2 := reduce(t, actions, ctx, "T", "int")
	reduce(t, actions, ctx, "D", "T d", typ2, Leaf("x"))

	aRef := reduce(t, actions, ctx, "E", "d", Leaf("a"))
	cond := reduce(t, actions, ctx, "B", "E", aRef)

	one := reduce(t, actions, ctx, "E", "i", Leaf("1"))
	thenAssign := reduce(t, actions, ctx, "S", "d = E", Leaf("x"), Attribute{}, one)
	thenList := reduce(t, actions, ctx, "S'", "S", thenAssign)
	thenBlock := reduce(t, actions, ctx, "S", "{ S' }", Attribute{}, thenList, Attribute{})

	two := reduce(t, actions, ctx, "E", "i", Leaf("2"))
	elseAssign := reduce(t, actions, ctx, "S", "d = E", Leaf("x"), Attribute{}, two)
	elseList := reduce(t, actions, ctx, "S'", "S", elseAssign)
	elseBlock := reduce(t, actions, ctx, "S", "{ S' }", Attribute{}, elseList, Attribute{})

	stmt := reduce(t, actions, ctx, "S", "if ( B ) S else S", Attribute{}, Attribute{}, cond, Attribute{}, thenBlock, Attribute{}, elseBlock)

	want := "t0 = a;\n" +
		"IF t0 != 0 THEN l0 ELSE l1;\n" +
		"LABEL l0;\n" +
		"t1 = 1;\n" +
		"x = t1;\n" +
		"GOTO l2;\n" +
		"LABEL l1;\n" +
		"t2 = 2;\n" +
		"x = t2;\n" +
		"LABEL l2;\n"
	assert.Equal(t, want, stmt.Code)
}

// Test_S4_WhileLoop reproduces scenario S4's TAC shape for `while (i < n) i
// = i + 1;` with i and n already declared as int.
func Test_S4_WhileLoop(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	ti := reduce(t, actions, ctx, "T", "int")
	reduce(t, actions, ctx, "D", "T d", ti, Leaf("i"))
	tn := reduce(t, actions, ctx, "T", "int")
	reduce(t, actions, ctx, "D", "T d", tn, Leaf("n"))

	iRef := reduce(t, actions, ctx, "E", "d", Leaf("i"))
	nRef := reduce(t, actions, ctx, "E", "d", Leaf("n"))
	cond := reduce(t, actions, ctx, "B", "E r E", iRef, Leaf("<"), nRef)

	iRef2 := reduce(t, actions, ctx, "E", "d", Leaf("i"))
	one := reduce(t, actions, ctx, "E", "i", Leaf("1"))
	sum := reduce(t, actions, ctx, "E", "E + E", iRef2, Attribute{}, one)
	body := reduce(t, actions, ctx, "S", "d = E", Leaf("i"), Attribute{}, sum)

	stmt := reduce(t, actions, ctx, "S", "while ( B ) S", Attribute{}, cond, Attribute{}, body)

	// Label numbers follow bottom-up synthesis order: B's true/false
	// labels are allocated while reducing B, strictly before the
	// enclosing while-rule's own loop-start label, since a shift/reduce
	// driver runs the while action only after all three children have
	// already reduced.
	want := "LABEL l2;\n" +
		"t0 = i;\n" +
		"t1 = n;\n" +
		"IF t0 < t1 THEN l0 ELSE l1;\n" +
		"LABEL l0;\n" +
		"t2 = i;\n" +
		"t3 = 1;\n" +
		"t4 = t2 + t3;\n" +
		"i = t4;\n" +
		"GOTO l2;\n" +
		"LABEL l1;\n"
	assert.Equal(t, want, stmt.Code)
}

// Test_S5_FunctionAndCall reproduces scenario S5: declaring `int f(int
// a;){ return a + 1; }` registers f@system_table with argc=1, then calling
// `x = f(3);` emits PAR/CALL TAC.
func Test_S5_FunctionAndCall(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	fType := reduce(t, actions, ctx, "T", "int")

	reduce(t, actions, ctx, "A'", "ε")
	paramType := reduce(t, actions, ctx, "T", "int")
	param := reduce(t, actions, ctx, "A", "T d", paramType, Leaf("a"))
	paramList := reduce(t, actions, ctx, "A'", "A' A ;", Attribute{}, param, Attribute{})

	aRef := reduce(t, actions, ctx, "E", "d", Leaf("a"))
	one := reduce(t, actions, ctx, "E", "i", Leaf("1"))
	sum := reduce(t, actions, ctx, "E", "E + E", aRef, Attribute{}, one)
	ret := reduce(t, actions, ctx, "S", "return E", Attribute{}, sum)
	body := reduce(t, actions, ctx, "S'", "S", ret)

	decl := reduce(t, actions, ctx, "D", "T d ( A' ) { D' S' }",
		fType, Leaf("f"), Attribute{}, paramList, Attribute{}, Attribute{}, Attribute{}, body, Attribute{})
	assert.Equal(t, []string{"f"}, decl.Place)

	fTable, ok := ctx.Registry.Get("f@system_table")
	require.True(t, ok)
	assert.Equal(t, 1, fTable.Argc)
	assert.Equal(t, []string{"a"}, fTable.ArgList)
	assert.Equal(t, "int", fTable.RType)
	assert.Equal(t, 4, fTable.Width)

	fEntry, _, ok := ctx.Top().Lookup("f")
	require.True(t, ok)
	assert.Equal(t, KindFunc, fEntry.Kind)
	assert.Equal(t, 8, fEntry.Offset)
	assert.Same(t, fTable, fEntry.Table)

	three := reduce(t, actions, ctx, "E", "i", Leaf("3"))
	actual := reduce(t, actions, ctx, "R", "E", three)
	actualList := reduce(t, actions, ctx, "R'", "R' R ,", Attribute{}, actual, Attribute{})
	callExpr := reduce(t, actions, ctx, "E", "d ( R' )", Leaf("f"), Attribute{}, actualList, Attribute{})

	want := "t3 = 3;\n" +
		"PAR t3;\n" +
		"t4 = CALL f, 1;\n"
	assert.Equal(t, want, callExpr.Code)
}

// Test_DuplicateDeclaration_IsSemanticError ensures redeclaration within
// one scope is rejected.
func Test_DuplicateDeclaration_IsSemanticError(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	typ := reduce(t, actions, ctx, "T", "int")
	reduce(t, actions, ctx, "D", "T d", typ, Leaf("a"))

	typ2 := reduce(t, actions, ctx, "T", "float")
	fn, ok := actions[ActionKey{NonTerminal: "D", RHS: "T d"}]
	require.True(t, ok)
	_, err := fn(ctx, []Attribute{typ2, Leaf("a")})
	assert.Error(t, err)
}

// Test_DivisionByZero_IsSemanticError ensures constant-folded division by
// a literal zero aborts rather than producing TAC.
func Test_DivisionByZero_IsSemanticError(t *testing.T) {
	actions := NewBaselineActions()
	ctx := NewContext()

	five := reduce(t, actions, ctx, "E", "i", Leaf("5"))
	zero := reduce(t, actions, ctx, "E", "i", Leaf("0"))

	fn, ok := actions[ActionKey{NonTerminal: "E", RHS: "E / E"}]
	require.True(t, ok)
	_, err := fn(ctx, []Attribute{five, Attribute{}, zero})
	assert.Error(t, err)
}
