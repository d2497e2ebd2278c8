package semantic

import (
	"github.com/dekarrin/slrc/internal/slrerr"
	"github.com/dekarrin/slrc/internal/tac"
)

// registerStmtActions wires up S, S', and B: statements, statement lists,
// and short-circuit boolean expressions.
func registerStmtActions(t ActionTable) {
	// S' -> S : a statement list begins as a single statement.
	t[ActionKey{"S'", "S"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrSC, CodeList: []string{rhs[0].Code}}, nil
	}
	// S' -> S' ; S : statements accumulate in source order.
	t[ActionKey{"S'", "S' ; S"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		list := append(append([]string{}, rhs[0].CodeList...), rhs[2].Code)
		return Attribute{Kind: AttrSC, CodeList: list}, nil
	}

	// S -> d = E : scalar assignment.
	t[ActionKey{"S", "d = E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindVar {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not a scalar variable", name)
		}
		code := rhs[2].Code + tac.GenAssign(name, rhs[2].PlaceSingle)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> d [ E ] = E : array-element assignment.
	t[ActionKey{"S", "d [ E ] = E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindArray && entry.Kind != KindArrayPtr {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not an array", name)
		}
		idx := rhs[2]
		val := rhs[5]
		if idx.Type != "int" {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "array index into %q must be int, got %s", name, idx.Type)
		}
		code := idx.Code + val.Code + tac.GenArrayStore(name, idx.PlaceSingle, val.PlaceSingle)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> if ( B ) S : single-branch conditional.
	t[ActionKey{"S", "if ( B ) S"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		b := rhs[1]
		body := rhs[3]
		code := tac.MergeCode(
			b.Code,
			genLabels(b.TC),
			body.Code,
			genLabels(b.FC),
		)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> if ( B ) S else S : two-branch conditional.
	t[ActionKey{"S", "if ( B ) S else S"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		b := rhs[1]
		thenBody := rhs[3]
		elseBody := rhs[5]
		afterLabel := ctx.Emitter.NewLabel()
		code := tac.MergeCode(
			b.Code,
			genLabels(b.TC),
			thenBody.Code,
			tac.GenGoto(afterLabel),
			genLabels(b.FC),
			elseBody.Code,
			tac.GenLabel(afterLabel),
		)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> while ( B ) S : pre-tested loop.
	t[ActionKey{"S", "while ( B ) S"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		b := rhs[1]
		body := rhs[3]
		start := ctx.Emitter.NewLabel()
		code := tac.MergeCode(
			tac.GenLabel(start),
			b.Code,
			genLabels(b.TC),
			body.Code,
			tac.GenGoto(start),
			genLabels(b.FC),
		)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> for ( S ; B ; S ) S : S1.code LABEL L B.code LABEL B.tc
	// S3.code S2.code GOTO L LABEL B.fc, the canonical emission order.
	t[ActionKey{"S", "for ( S ; B ; S ) S"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		s1 := rhs[2]
		b := rhs[4]
		s2 := rhs[6]
		s3 := rhs[8]
		loop := ctx.Emitter.NewLabel()
		code := tac.MergeCode(
			s1.Code,
			tac.GenLabel(loop),
			b.Code,
			genLabels(b.TC),
			s3.Code,
			s2.Code,
			tac.GenGoto(loop),
			genLabels(b.FC),
		)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> return E : a function's single exit statement.
	t[ActionKey{"S", "return E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		e := rhs[1]
		code := e.Code + tac.GenReturn(e.PlaceSingle)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> print E : a single non-declaration I/O verb.
	t[ActionKey{"S", "print E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		e := rhs[1]
		code := e.Code + tac.GenPrint(e.PlaceSingle)
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> input d : reads a scalar variable.
	t[ActionKey{"S", "input d"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[1].Value
		if _, _, ok := ctx.Top().Lookup(name); !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		return Attribute{Kind: AttrS, Code: tac.GenInput(name)}, nil
	}

	// S -> d ( R' ) : a call used only for its side effects.
	t[ActionKey{"S", "d ( R' )"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		r := rhs[2]
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindFunc && entry.Kind != KindFuncPtr {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not callable", name)
		}
		discard := ctx.Emitter.NewTemp()
		code := tac.MergeCode(r.Code, tac.NewParams(r.PlaceList), tac.GenCall(discard, name, len(r.PlaceList)))
		return Attribute{Kind: AttrS, Code: code}, nil
	}

	// S -> { S' } : a bare block.
	t[ActionKey{"S", "{ S' }"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrS, Code: tac.MergeCode(rhs[1].CodeList...)}, nil
	}

	// B -> B ∧ B : short-circuit conjunction. The left operand's true
	// exit falls through into the right operand; its false exits are the
	// conjunction's false exits directly.
	t[ActionKey{"B", "B ∧ B"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		left := rhs[0]
		right := rhs[2]
		code := tac.MergeCode(
			left.Code,
			genLabels(left.TC),
			right.Code,
		)
		fc := append(append([]string{}, left.FC...), right.FC...)
		return Attribute{Kind: AttrB, Code: code, TC: right.TC, FC: fc}, nil
	}

	// B -> B ∨ B : short-circuit disjunction, the dual of conjunction.
	t[ActionKey{"B", "B ∨ B"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		left := rhs[0]
		right := rhs[2]
		code := tac.MergeCode(
			left.Code,
			genLabels(left.FC),
			right.Code,
		)
		tc := append(append([]string{}, left.TC...), right.TC...)
		return Attribute{Kind: AttrB, Code: code, TC: tc, FC: right.FC}, nil
	}

	// B -> E r E : the leaf comparison, the only place TC/FC actually
	// originate as a single pending jump.
	t[ActionKey{"B", "E r E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		left := rhs[0]
		op := rhs[1].Value
		right := rhs[2]
		trueLabel := ctx.Emitter.NewLabel()
		falseLabel := ctx.Emitter.NewLabel()
		code := tac.MergeCode(
			left.Code,
			right.Code,
			tac.GenIf(left.PlaceSingle, op, right.PlaceSingle, trueLabel, falseLabel),
		)
		return Attribute{Kind: AttrB, Code: code, TC: []string{trueLabel}, FC: []string{falseLabel}}, nil
	}

	// B -> E : bool-from-expr, treats any non-zero expression as true.
	t[ActionKey{"B", "E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		e := rhs[0]
		trueLabel := ctx.Emitter.NewLabel()
		falseLabel := ctx.Emitter.NewLabel()
		code := tac.MergeCode(
			e.Code,
			tac.GenIf(e.PlaceSingle, "!=", "0", trueLabel, falseLabel),
		)
		return Attribute{Kind: AttrB, Code: code, TC: []string{trueLabel}, FC: []string{falseLabel}}, nil
	}
}
