// Package slrtable builds the SLR(1) ACTION/GOTO parse table from an
// ItemCluster and its GrammarSet, classifies conflicts, and serialises the
// result to CSV, JSON, or a compact binary form.
package slrtable

import (
	"sort"
	"strconv"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/lr0"
	"github.com/dekarrin/slrc/internal/slrerr"
)

// ActionType is the kind of an ACTION table cell entry.
type ActionType int

const (
	Shift ActionType = iota
	Reduce
	Accept
	Error
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one possible action for an ACTION cell. Only the field
// meaningful to Type is populated: StateID for Shift, ProdID for Reduce.
type Action struct {
	Type    ActionType
	StateID int
	ProdID  int
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return "s" + strconv.Itoa(a.StateID)
	case Reduce:
		return "r" + strconv.Itoa(a.ProdID)
	case Accept:
		return "acc"
	default:
		return "err"
	}
}

// ProdRef is a production identified by its left-hand side, used to assign
// dense ids to every production in a grammar plus the augmented production.
type ProdRef struct {
	NonTerminal grammar.Symbol
	RHS         grammar.Production
}

func prodKey(nt grammar.Symbol, rhs grammar.Production) string {
	return nt + "\x00" + rhs.String()
}

// Table is the built SLR(1) parse table.
type Table struct {
	Grammar *grammar.GrammarSet
	Cluster *lr0.ItemCluster

	stateToID map[string]int
	idToState []string

	prodToID map[string]int
	idToProd []ProdRef

	// Action maps state id -> terminal -> set of Action.
	Action map[int]map[grammar.Symbol]map[Action]bool
	// Goto maps state id -> non-terminal -> set of target state id.
	Goto map[int]map[grammar.Symbol]map[int]bool

	StartState        int
	AcceptStates       map[int]bool
	FinalAcceptState   int
	hasFinalAccept     bool
	Conflicts          []Conflict
	augmentedProdID    int
}

// StateID returns the dense id for a named state.
func (t *Table) StateID(name string) (int, bool) {
	id, ok := t.stateToID[name]
	return id, ok
}

// StateName returns the name for a dense state id.
func (t *Table) StateName(id int) (string, bool) {
	if id < 0 || id >= len(t.idToState) {
		return "", false
	}
	return t.idToState[id], true
}

// NumStates returns the number of states in the table.
func (t *Table) NumStates() int {
	return len(t.idToState)
}

// ProdID returns the dense id for a production (nt -> rhs).
func (t *Table) ProdID(nt grammar.Symbol, rhs grammar.Production) (int, bool) {
	id, ok := t.prodToID[prodKey(nt, rhs)]
	return id, ok
}

// Production returns the production for a dense production id.
func (t *Table) Production(id int) (ProdRef, bool) {
	if id < 0 || id >= len(t.idToProd) {
		return ProdRef{}, false
	}
	return t.idToProd[id], true
}

// Build constructs the SLR(1) table for g's canonical LR(0) collection ic.
func Build(g *grammar.GrammarSet, ic *lr0.ItemCluster) (*Table, error) {
	t := &Table{
		Grammar:   g,
		Cluster:   ic,
		stateToID: map[string]int{},
		prodToID:  map[string]int{},
		Action:    map[int]map[grammar.Symbol]map[Action]bool{},
		Goto:      map[int]map[grammar.Symbol]map[int]bool{},
	}

	// Assign state ids in ascending numeric order of the name's trailing
	// integer, so "Item Set 0" -> 0.
	names := append([]string(nil), ic.StateNames()...)
	sort.Slice(names, func(i, j int) bool {
		ni, _ := lr0.StateNum(names[i])
		nj, _ := lr0.StateNum(names[j])
		return ni < nj
	})
	for id, name := range names {
		t.stateToID[name] = id
		t.idToState = append(t.idToState, name)
	}

	startID, ok := t.stateToID[ic.InitialState()]
	if !ok {
		return nil, slrerr.New(slrerr.ErrBuild, "no initial state in item cluster")
	}
	t.StartState = startID

	// Assign production ids: GrammarSet iteration order, then the
	// augmented production S' -> S last.
	for _, r := range g.Rules() {
		for _, p := range r.Productions {
			id := len(t.idToProd)
			t.idToProd = append(t.idToProd, ProdRef{NonTerminal: r.NonTerminal, RHS: p})
			t.prodToID[prodKey(r.NonTerminal, p)] = id
		}
	}
	augStart := g.AugmentedStart()
	augRHS := grammar.Production{g.StartSymbol()}
	t.augmentedProdID = len(t.idToProd)
	t.idToProd = append(t.idToProd, ProdRef{NonTerminal: augStart, RHS: augRHS})
	t.prodToID[prodKey(augStart, augRHS)] = t.augmentedProdID

	t.AcceptStates = map[int]bool{}

	for _, name := range names {
		sid := t.stateToID[name]
		state, _ := ic.State(name)

		for _, it := range state.Closure.Items() {
			if it.Completed() {
				if it.NonTerminal == augStart {
					t.addAction(sid, grammar.EndOfInput, Action{Type: Accept})
					t.AcceptStates[sid] = true
					t.FinalAcceptState = sid
					t.hasFinalAccept = true
					continue
				}

				prodID, ok := t.ProdID(it.NonTerminal, it.Production())
				if !ok {
					return nil, slrerr.Newf(slrerr.ErrBuild, "no production id for completed item %s", it.String())
				}

				for a := range g.Follow(it.NonTerminal) {
					t.addAction(sid, a, Action{Type: Reduce, ProdID: prodID})
				}
				continue
			}

			sym, _ := it.NextSymbol()
			if g.IsTerminal(sym) {
				target, ok := state.Goto[sym]
				if !ok {
					continue
				}
				targetID, ok := t.stateToID[target]
				if !ok {
					return nil, slrerr.Newf(slrerr.ErrBuild, "goto target %q has no assigned id", target)
				}
				t.addAction(sid, sym, Action{Type: Shift, StateID: targetID})
			}
		}

		for nt, target := range state.Goto {
			if !g.IsNonTerminal(nt) {
				continue
			}
			targetID, ok := t.stateToID[target]
			if !ok {
				return nil, slrerr.Newf(slrerr.ErrBuild, "goto target %q has no assigned id", target)
			}
			t.addGoto(sid, nt, targetID)
		}
	}

	t.classifyConflicts()

	return t, nil
}

func (t *Table) addAction(state int, term grammar.Symbol, a Action) {
	if t.Action[state] == nil {
		t.Action[state] = map[grammar.Symbol]map[Action]bool{}
	}
	if t.Action[state][term] == nil {
		t.Action[state][term] = map[Action]bool{}
	}
	t.Action[state][term][a] = true
}

func (t *Table) addGoto(state int, nt grammar.Symbol, target int) {
	if t.Goto[state] == nil {
		t.Goto[state] = map[grammar.Symbol]map[int]bool{}
	}
	if t.Goto[state][nt] == nil {
		t.Goto[state][nt] = map[int]bool{}
	}
	t.Goto[state][nt][target] = true
}

// ActionsAt returns the set of actions (as a slice for deterministic
// iteration) recorded for (state, terminal).
func (t *Table) ActionsAt(state int, term grammar.Symbol) []Action {
	cell, ok := t.Action[state][term]
	if !ok {
		return nil
	}
	actions := make([]Action, 0, len(cell))
	for a := range cell {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Type != actions[j].Type {
			return actions[i].Type < actions[j].Type
		}
		return actions[i].StateID+actions[i].ProdID < actions[j].StateID+actions[j].ProdID
	})
	return actions
}

// GotoAt returns the target state id for (state, non-terminal), and
// whether a (necessarily singleton, in a well-formed grammar) entry exists.
func (t *Table) GotoAt(state int, nt grammar.Symbol) (int, bool) {
	cell, ok := t.Goto[state][nt]
	if !ok || len(cell) == 0 {
		return 0, false
	}
	for target := range cell {
		return target, true
	}
	return 0, false
}
