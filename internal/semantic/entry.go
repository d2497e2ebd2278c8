// Package semantic implements the symbol-table model, the per-reduction
// attribute values, and the semantic action catalogue invoked by the
// parse driver at each reduction.
package semantic

// EntryKind tags which shape of symbol-table row an Entry holds. Entry is
// modelled as a tagged variant rather than an inheritance hierarchy
// (dispatch on Kind), per the design note that favors that shape for
// serialisation and size_of over a virtual-method hierarchy.
type EntryKind int

const (
	KindVar EntryKind = iota
	KindArray
	KindFunc
	KindArrayPtr // passed-by-reference array parameter; unifies the
	// source's separate "arrptt"/"arrayptt" codepaths into one variant.
	KindFuncPtr // function-valued parameter
)

func (k EntryKind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindArray:
		return "array"
	case KindFunc:
		return "func"
	case KindArrayPtr:
		return "arrptt"
	case KindFuncPtr:
		return "funptt"
	default:
		return "unknown"
	}
}

// Entry is one symbol-table row. Only the fields meaningful to Kind are
// populated; see the per-Kind doc comments below.
type Entry struct {
	Kind EntryKind
	Name string

	// Var: the scalar type (int|void|float). Array/ArrayPtr: always
	// "array"/"arrptt". Func: always "func". FuncPtr: always "funptt".
	Type string

	// Var, Func, FuncPtr: byte offset within the owning table.
	Offset int

	// Array, ArrayPtr: element type.
	EType string
	// Array, ArrayPtr: byte offset of the array's base (its own "width"
	// marker, distinct from Offset, which these two kinds do not use).
	Base int
	// Array: declared dimension count and per-dimension bounds.
	Dims int
	Dim  []int

	// Func: the function's own parameter/body table. A Func entry reaches
	// its return type through Table.RType rather than storing its own
	// copy, per the unification direction the design notes call for.
	Table *SymbolTable

	// FuncPtr: the declared return type of the function-valued parameter.
	// FuncPtr has no body table to unify this onto (it names a parameter,
	// not a function definition), so it keeps its own copy.
	RType string
}

// SizeOf returns the byte width size_of assigns to a scalar type name, per
// spec §4.6: int=4, void=0, float=8.
func SizeOf(scalarType string) int {
	switch scalarType {
	case "int":
		return 4
	case "float":
		return 8
	case "void":
		return 0
	default:
		return 0
	}
}

// SizeOfArrayPtr is the fixed width of an array pointer slot (4, a single
// pointer-sized parameter).
const SizeOfArrayPtr = 4

// SizeOfFunc is the fixed width a Func or FuncPtr entry costs its owning
// table (8).
const SizeOfFunc = 8
