package semantic

import (
	"strconv"

	"github.com/dekarrin/slrc/internal/slrerr"
)

// registerDeclActions wires up T, D, D', A, A': type keywords, variable/
// array/function declarations, and the parameter-list/scope-push
// machinery.
func registerDeclActions(t ActionTable) {
	t[ActionKey{"T", "int"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrT, Type: "int"}, nil
	}
	t[ActionKey{"T", "void"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrT, Type: "void"}, nil
	}
	t[ActionKey{"T", "float"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrT, Type: "float"}, nil
	}

	// D' -> ε : empty declaration-list accumulator.
	t[ActionKey{"D'", "ε"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		return Attribute{Kind: AttrD}, nil
	}
	// D' -> D' D ; : declarations have no TAC of their own; only the
	// declared names are threaded through for bookkeeping.
	t[ActionKey{"D'", "D' D ;"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		place := append(append([]string{}, rhs[0].Place...), rhs[1].Place...)
		return Attribute{Kind: AttrD, Place: place}, nil
	}

	// D -> T d : scalar variable declaration. width += size_of(type);
	// offset = width (assigned after the increment).
	t[ActionKey{"D", "T d"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		typ := rhs[0].Type
		name := rhs[1].Value
		top := ctx.Top()
		top.Width += SizeOf(typ)
		e := &Entry{Kind: KindVar, Name: name, Type: typ, Offset: top.Width}
		if err := top.AddEntry(e); err != nil {
			return Attribute{}, err
		}
		return Attribute{Kind: AttrD, Place: []string{name}}, nil
	}

	// D -> T d [ i ] : array declaration. width += dim * size_of(etype);
	// base = width (after the increment).
	t[ActionKey{"D", "T d [ i ]"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		typ := rhs[0].Type
		name := rhs[1].Value
		dimLit := rhs[3].Value

		dim, err := strconv.Atoi(dimLit)
		if err != nil {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "array dimension %q is not an integer constant", dimLit)
		}
		if dim <= 0 {
			return Attribute{}, slrerr.Newf(slrerr.ErrSemantic, "array %q has non-positive dimension %d", name, dim)
		}

		top := ctx.Top()
		top.Width += dim * SizeOf(typ)
		e := &Entry{Kind: KindArray, Name: name, Type: "array", EType: typ, Dims: 1, Dim: []int{dim}, Base: top.Width}
		if err := top.AddEntry(e); err != nil {
			return Attribute{}, err
		}
		return Attribute{Kind: AttrD, Place: []string{name}}, nil
	}

	// D -> T d ( A' ) { D' S' } : function declaration. Pops the table
	// pushed by the A' prologue, names and links it, folds the body's
	// TAC into table.Code, and registers an entry for it in the
	// enclosing table.
	t[ActionKey{"D", "T d ( A' ) { D' S' }"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		rtype := rhs[0].Type
		name := rhs[1].Value
		bodyCode := rhs[7].CodeList

		fnTable := ctx.Pop()
		fnTable.Name = name
		fnTable.Outer = ctx.Top()
		fnTable.Level = fnTable.Outer.Level + 1
		fnTable.RType = rtype
		fnTable.Code = append(fnTable.Code, bodyCode...)

		outer := ctx.Top()
		outer.Width += SizeOfFunc
		e := &Entry{Kind: KindFunc, Name: name, Type: "func", Offset: outer.Width, Table: fnTable}
		if err := outer.AddEntry(e); err != nil {
			return Attribute{}, err
		}

		ctx.Registry.Register(fnTable)

		return Attribute{Kind: AttrD, Place: []string{name}}, nil
	}

	// A' -> ε : the params prologue. Pushes a fresh table for the
	// function being declared; this becomes its parameter/body scope.
	t[ActionKey{"A'", "ε"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		fnTable := NewSymbolTable("", ctx.Top())
		ctx.Push(fnTable)
		return Attribute{Kind: AttrAC}, nil
	}
	// A' -> A' A ; : threads the parameter-name accumulator; the param
	// itself has already been inserted into the function table by A's
	// own action.
	t[ActionKey{"A'", "A' A ;"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		place := append(append([]string{}, rhs[0].Place...), rhs[1].Place...)
		return Attribute{Kind: AttrAC, Place: place}, nil
	}

	// A -> T d : scalar parameter.
	t[ActionKey{"A", "T d"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		typ := rhs[0].Type
		name := rhs[1].Value
		top := ctx.Top()
		top.Width += SizeOf(typ)
		e := &Entry{Kind: KindVar, Name: name, Type: typ, Offset: top.Width}
		if err := top.AddEntry(e); err != nil {
			return Attribute{}, err
		}
		top.Argc++
		top.ArgList = append(top.ArgList, name)
		return Attribute{Kind: AttrA, Place: []string{name}}, nil
	}

	// A -> T d [ ] : array-by-reference parameter.
	t[ActionKey{"A", "T d [ ]"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		typ := rhs[0].Type
		name := rhs[1].Value
		top := ctx.Top()
		top.Width += SizeOfArrayPtr
		e := &Entry{Kind: KindArrayPtr, Name: name, Type: "arrptt", EType: typ, Base: top.Width}
		if err := top.AddEntry(e); err != nil {
			return Attribute{}, err
		}
		top.Argc++
		top.ArgList = append(top.ArgList, name)
		return Attribute{Kind: AttrA, Place: []string{name}}, nil
	}

	// A -> T d ( ) : function-valued parameter.
	t[ActionKey{"A", "T d ( )"}] = func(ctx *Context, rhs []Attribute) (Attribute, error) {
		typ := rhs[0].Type
		name := rhs[1].Value
		top := ctx.Top()
		top.Width += SizeOfFunc
		e := &Entry{Kind: KindFuncPtr, Name: name, Type: "funptt", Offset: top.Width, RType: typ}
		if err := top.AddEntry(e); err != nil {
			return Attribute{}, err
		}
		top.Argc++
		top.ArgList = append(top.ArgList, name)
		return Attribute{Kind: AttrA, Place: []string{name}}, nil
	}
}
