package slrtable

import (
	"sort"

	"github.com/dekarrin/slrc/internal/grammar"
)

// ConflictType classifies a multi-action ACTION cell.
type ConflictType int

const (
	ShiftReduce ConflictType = iota
	ReduceReduce
	ShiftShift
	UnknownConflict
)

func (c ConflictType) String() string {
	switch c {
	case ShiftReduce:
		return "SHIFT_REDUCE"
	case ReduceReduce:
		return "REDUCE_REDUCE"
	case ShiftShift:
		return "SHIFT_SHIFT"
	default:
		return "UNKNOWN"
	}
}

// Conflict records an ACTION cell with more than one recorded action.
// Conflicts detected at table-build time are not themselves errors; they
// are only escalated to a parse error if the driver actually dereferences
// the cell at runtime.
type Conflict struct {
	State    int
	Terminal grammar.Symbol
	Type     ConflictType
	Actions  []Action
}

func classify(actions []Action) ConflictType {
	var shifts, reduces int
	for _, a := range actions {
		switch a.Type {
		case Shift:
			shifts++
		case Reduce:
			reduces++
		}
	}

	switch {
	case shifts > 0 && reduces > 0:
		return ShiftReduce
	case reduces >= 2:
		return ReduceReduce
	case shifts >= 2:
		return ShiftShift
	default:
		return UnknownConflict
	}
}

// classifyConflicts scans every ACTION cell and records one Conflict per
// cell holding more than one action.
func (t *Table) classifyConflicts() {
	t.Conflicts = nil

	states := make([]int, 0, len(t.Action))
	for s := range t.Action {
		states = append(states, s)
	}
	sort.Ints(states)

	for _, s := range states {
		terms := make([]string, 0, len(t.Action[s]))
		for term := range t.Action[s] {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			cell := t.Action[s][term]
			if len(cell) <= 1 {
				continue
			}
			actions := t.ActionsAt(s, term)
			t.Conflicts = append(t.Conflicts, Conflict{
				State:    s,
				Terminal: term,
				Type:     classify(actions),
				Actions:  actions,
			})
		}
	}
}

// HasConflicts reports whether the table has any recorded conflict.
func (t *Table) HasConflicts() bool {
	return len(t.Conflicts) > 0
}
