package semantic

import (
	"strconv"

	"github.com/dekarrin/slrc/internal/slrerr"
	"github.com/dekarrin/slrc/internal/tac"
)

// registerExprActions wires up P, E, R, and R': the program root,
// arithmetic/assignment/call expressions, and actual-argument lists.
func registerExprActions(t ActionTable) {
	// P -> D' S' : the program root. Its code is the top-level statement
	// list; the declarations beneath it live entirely in system_table.
	t[ActionKey{"P", "D' S'"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrP, CodeList: rhs[1].CodeList}, nil
	}

	// E -> d = E : assignment used as an expression; yields the assigned
	// value's place so it can itself be consumed by an enclosing
	// expression.
	t[ActionKey{"E", "d = E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindVar {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not a scalar variable", name)
		}
		rhsExpr := rhs[2]
		code := rhsExpr.Code + tac.GenAssign(name, rhsExpr.PlaceSingle)
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: name, Type: entry.Type, Num: rhsExpr.Num}, nil
	}

	// E -> i : an integer literal, folded in place as its own constant.
	t[ActionKey{"E", "i"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		lit := rhs[0].Value
		temp := ctx.Emitter.NewTemp()
		code := tac.GenAssign(temp, lit)
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: temp, Type: "int", Num: lit}, nil
	}

	// E -> f : a float literal.
	t[ActionKey{"E", "f"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		lit := rhs[0].Value
		temp := ctx.Emitter.NewTemp()
		code := tac.GenAssign(temp, lit)
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: temp, Type: "float", Num: lit}, nil
	}

	// E -> d : a scalar identifier reference. Copied into a fresh temp
	// rather than used as a place directly, so the rest of the grammar
	// never needs to distinguish a temp from a named variable.
	t[ActionKey{"E", "d"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindVar {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not a scalar variable", name)
		}
		temp := ctx.Emitter.NewTemp()
		code := tac.GenAssign(temp, name)
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: temp, Type: entry.Type}, nil
	}

	// E -> d ( R' ) : a call used for its value; the callee's return type
	// must not be void.
	t[ActionKey{"E", "d ( R' )"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		r := rhs[2]
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		rtype, err := calleeReturnType(name, entry)
		if err != nil {
			return Attribute{}, err
		}
		if rtype == "void" {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "void-returning %q used in an expression", name)
		}
		temp := ctx.Emitter.NewTemp()
		code := tac.MergeCode(r.Code, tac.NewParams(r.PlaceList), tac.GenCall(temp, name, len(r.PlaceList)))
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: temp, Type: rtype}, nil
	}

	registerArith(t, "E + E", "+")
	registerArith(t, "E - E", "-")
	registerArith(t, "E * E", "*")
	registerArith(t, "E / E", "/")

	// E -> ( E ) : parenthesisation is transparent.
	t[ActionKey{"E", "( E )"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		e := rhs[1]
		return Attribute{Kind: AttrE, Code: e.Code, PlaceSingle: e.PlaceSingle, Type: e.Type, Num: e.Num}, nil
	}

	// E -> d [ E ] : array element read.
	t[ActionKey{"E", "d [ E ]"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		idx := rhs[2]
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindArray && entry.Kind != KindArrayPtr {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not an array", name)
		}
		if idx.Type != "int" {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "array index into %q must be int, got %s", name, idx.Type)
		}
		if entry.Kind == KindArray && idx.Num != "" {
			n, err := strconv.Atoi(idx.Num)
			if err == nil && entry.Dims > 0 && (n < 0 || n >= entry.Dim[0]) {
				return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "constant index %d out of range for %q[%d]", n, name, entry.Dim[0])
			}
		}
		temp := ctx.Emitter.NewTemp()
		code := idx.Code + tac.GenArrayLoad(temp, name, idx.PlaceSingle)
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: temp, Type: entry.EType}, nil
	}

	// R' -> ε : the actual-argument accumulator starts empty.
	t[ActionKey{"R'", "ε"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrRC}, nil
	}
	// R' -> R' R , : actuals accumulate in source order.
	t[ActionKey{"R'", "R' R ,"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		acc := rhs[0]
		r := rhs[1]
		code := acc.Code + r.Code
		places := append(append([]string{}, acc.PlaceList...), r.PlaceSingle)
		return Attribute{Kind: AttrRC, Code: code, PlaceList: places}, nil
	}

	// R -> E : an ordinary by-value actual argument.
	t[ActionKey{"R", "E"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		e := rhs[0]
		return Attribute{Kind: AttrR, Code: e.Code, PlaceSingle: e.PlaceSingle}, nil
	}

	// R -> d [ ] : an array passed by reference.
	t[ActionKey{"R", "d [ ]"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindArray && entry.Kind != KindArrayPtr {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not an array", name)
		}
		return Attribute{Kind: AttrR, PlaceSingle: name}, nil
	}

	// R -> d ( ) : a function passed by reference.
	t[ActionKey{"R", "d ( )"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		name := rhs[0].Value
		entry, _, ok := ctx.Top().Lookup(name)
		if !ok {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not declared", name)
		}
		if entry.Kind != KindFunc && entry.Kind != KindFuncPtr {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "%q is not callable", name)
		}
		return Attribute{Kind: AttrR, PlaceSingle: name}, nil
	}
}

// registerArith wires one E -> E op E production: a fresh temp, operand
// type agreement, and constant folding when both operands are constant.
func registerArith(t ActionTable, rhsKey, op string) {
	t[ActionKey{"E", rhsKey}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		left := rhs[0]
		right := rhs[2]
		if left.Type != right.Type {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "type mismatch in %q %s %q", left.Type, op, right.Type)
		}
		temp := ctx.Emitter.NewTemp()
		code := left.Code + right.Code

		num := ""
		if left.Num != "" && right.Num != "" {
			folded, err := foldConstant(left.Type, left.Num, op, right.Num)
			if err != nil {
				return Attribute{}, err
			}
			num = folded
		}

		code += tac.GenAssignBinOp(temp, left.PlaceSingle, op, right.PlaceSingle)
		return Attribute{Kind: AttrE, Code: code, PlaceSingle: temp, Type: left.Type, Num: num}, nil
	}
}

// foldConstant evaluates a binary arithmetic operator over two literal
// operands of the given type at compile time.
func foldConstant(typ, a, op, b string) (string, error) {
	if typ == "float" {
		x, errA := strconv.ParseFloat(a, 64)
		y, errB := strconv.ParseFloat(b, 64)
		if errA != nil || errB != nil {
			return "", nil
		}
		var r float64
		switch op {
		case "+":
			r = x + y
		case "-":
			r = x - y
		case "*":
			r = x * y
		case "/":
			if y == 0 {
				return "", slrerr.New(slrerr.ErrSemantic, "division by zero in constant folding")
			}
			r = x / y
		}
		return strconv.FormatFloat(r, 'g', -1, 64), nil
	}

	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return "", nil
	}
	var r int
	switch op {
	case "+":
		r = x + y
	case "-":
		r = x - y
	case "*":
		r = x * y
	case "/":
		if y == 0 {
			return "", slrerr.New(slrerr.ErrSemantic, "division by zero in constant folding")
		}
		r = x / y
	}
	return strconv.Itoa(r), nil
}

// calleeReturnType resolves the return type of a Func or FuncPtr entry.
func calleeReturnType(name string, entry *Entry) (string, error) {
	switch entry.Kind {
	case KindFunc:
		return entry.Table.RType, nil
	case KindFuncPtr:
		return entry.RType, nil
	default:
		return "", slrerr.Newf(slrerr.ErrSemantic, "%q is not callable", name)
	}
}
