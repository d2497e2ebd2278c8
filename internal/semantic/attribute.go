package semantic

// AttrKind tags which non-terminal (or terminal leaf) produced an
// Attribute. Only the fields relevant to Kind are populated, matching the
// per-non-terminal shapes of spec §3.
type AttrKind int

const (
	AttrLeaf AttrKind = iota // a terminal's lexeme, wrapped as an attribute
	AttrT                    // carried type name
	AttrD                    // declared name(s)
	AttrA                    // single parameter
	AttrAC                   // parameter-list accumulator
	AttrE                    // synthesised expression
	AttrB                    // boolean with true/false jump labels
	AttrS                    // single statement
	AttrSC                   // statement-list accumulator
	AttrR                    // actual argument
	AttrRC                   // actual-argument-list accumulator
	AttrP                    // program
)

// Attribute is the value carried on the parse stack alongside a state,
// synthesised by the semantic action of the reduction that produced it.
type Attribute struct {
	Kind AttrKind

	// Leaf: the lexeme of the terminal this attribute wraps.
	Value string

	// T: the carried type name (int|void|float).
	Type string

	// D, A: declared/parameter name(s). AC: accumulated parameter names.
	Place []string

	// E: r-value location (temp or name). R: actual-argument location.
	PlaceSingle string

	// E: emitted TAC. S, B, R: same role for their non-terminal.
	Code string

	// SC, RC, P: per-item code blocks, in order.
	CodeList []string

	// RC: accumulated actual-argument locations, parallel to CodeList.
	PlaceList []string

	// E: folded constant value, empty if the value is not a compile-time
	// constant.
	Num string

	// B: true-jump and false-jump label lists.
	TC []string
	FC []string
}

// Leaf wraps a terminal's lexeme as an attribute.
func Leaf(lexeme string) Attribute {
	return Attribute{Kind: AttrLeaf, Value: lexeme}
}
