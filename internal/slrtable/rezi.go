package slrtable

import (
	"github.com/dekarrin/rezi"
	"github.com/dekarrin/slrc/internal/slrerr"
)

// reziAction and reziTable mirror jsonAction/jsonTable but through REZI's
// binary encoding, used by server/dao/sqlite to cache built tables without
// re-running the SLR construction on every request.
type reziAction struct {
	Type    int
	StateID int
	ProdID  int
}

type reziCell struct {
	State   int
	Symbol  string
	Actions []reziAction
	Targets []int
}

type reziTable struct {
	NumStates  int
	StartState int
	FinalState int
	ActionRows []reziCell
	GotoRows   []reziCell
}

// EncBinary encodes t's ACTION/GOTO cells with REZI.
func (t *Table) EncBinary() []byte {
	rt := reziTable{
		NumStates:  t.NumStates(),
		StartState: t.StartState,
		FinalState: t.FinalAcceptState,
	}

	for state, row := range t.Action {
		for term := range row {
			actions := t.ActionsAt(state, term)
			cell := reziCell{State: state, Symbol: term}
			for _, a := range actions {
				cell.Actions = append(cell.Actions, reziAction{Type: int(a.Type), StateID: a.StateID, ProdID: a.ProdID})
			}
			rt.ActionRows = append(rt.ActionRows, cell)
		}
	}

	for state, row := range t.Goto {
		for nt := range row {
			target, ok := t.GotoAt(state, nt)
			if !ok {
				continue
			}
			rt.GotoRows = append(rt.GotoRows, reziCell{State: state, Symbol: nt, Targets: []int{target}})
		}
	}

	return rezi.EncBinary(rt)
}

// DecBinary decodes ACTION/GOTO cells previously produced by EncBinary into
// a bare Table shell (Grammar and Cluster are not reconstructed).
func DecBinary(data []byte) (*Table, error) {
	var rt reziTable
	n, err := rezi.DecBinary(data, &rt)
	if err != nil {
		return nil, slrerr.Newf(slrerr.ErrSerialization, "REZI decode: %v", err)
	}
	if n != len(data) {
		return nil, slrerr.Newf(slrerr.ErrSerialization, "REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}

	t := &Table{
		StartState:       rt.StartState,
		FinalAcceptState: rt.FinalState,
		Action:           map[int]map[string]map[Action]bool{},
		Goto:             map[int]map[string]map[int]bool{},
	}
	for i := 0; i < rt.NumStates; i++ {
		t.idToState = append(t.idToState, "")
	}

	for _, cell := range rt.ActionRows {
		for _, a := range cell.Actions {
			t.addAction(cell.State, cell.Symbol, Action{Type: ActionType(a.Type), StateID: a.StateID, ProdID: a.ProdID})
		}
	}
	for _, cell := range rt.GotoRows {
		for _, target := range cell.Targets {
			t.addGoto(cell.State, cell.Symbol, target)
		}
	}

	t.classifyConflicts()
	return t, nil
}
