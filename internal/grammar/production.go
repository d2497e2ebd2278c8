package grammar

import "strings"

// Production is the right-hand side of a rule: an ordered sequence of
// symbols. A Production of length 1 holding Epsilon represents the empty
// production.
type Production []Symbol

// Copy returns a deep copy of p.
func (p Production) Copy() Production {
	newP := make(Production, len(p))
	copy(newP, p)
	return newP
}

// IsEpsilon reports whether p is the sole-epsilon empty production.
func (p Production) IsEpsilon() bool {
	return len(p) == 1 && p[0] == Epsilon
}

// Equal returns whether p is equal to o. o may be a Production, *Production,
// []Symbol, or *[]Symbol; any other type returns false.
func (p Production) Equal(o any) bool {
	var other Production

	switch v := o.(type) {
	case Production:
		other = v
	case *Production:
		if v == nil {
			return false
		}
		other = *v
	case []Symbol:
		other = Production(v)
	case *[]Symbol:
		if v == nil {
			return false
		}
		other = Production(*v)
	default:
		return false
	}

	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders p as space-separated symbols, or "ε" if p is empty.
func (p Production) String() string {
	if len(p) == 0 {
		return Epsilon
	}
	return strings.Join(p, " ")
}

// Rule is a left-hand side symbol together with its ordered, alternation of
// productions: LHS -> α1 | α2 | ....
type Rule struct {
	NonTerminal Symbol
	Productions []Production
}

// Copy returns a deep copy of r.
func (r Rule) Copy() Rule {
	newR := Rule{NonTerminal: r.NonTerminal, Productions: make([]Production, len(r.Productions))}
	for i := range r.Productions {
		newR.Productions[i] = r.Productions[i].Copy()
	}
	return newR
}
