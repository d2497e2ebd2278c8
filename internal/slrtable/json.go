package slrtable

import (
	"encoding/json"
	"strconv"

	"github.com/dekarrin/slrc/internal/grammar"
)

func itoaKey(n int) string  { return strconv.Itoa(n) }
func atoiKey(s string) int  { n, _ := strconv.Atoi(s); return n }

type jsonAction struct {
	Type    string `json:"type"`
	StateID int    `json:"state,omitempty"`
	ProdID  int    `json:"prod,omitempty"`
}

type jsonConflict struct {
	State    int          `json:"state"`
	Terminal string       `json:"terminal"`
	Type     string       `json:"type"`
	Actions  []jsonAction `json:"actions"`
}

type jsonTable struct {
	NumStates   int                               `json:"numStates"`
	StartState  int                               `json:"startState"`
	AcceptState int                                `json:"finalAcceptState"`
	Action      map[string]map[string][]jsonAction `json:"action"`
	Goto        map[string]map[string]int          `json:"goto"`
	Conflicts   []jsonConflict                     `json:"conflicts,omitempty"`
}

func toJSONAction(a Action) jsonAction {
	return jsonAction{Type: a.Type.String(), StateID: a.StateID, ProdID: a.ProdID}
}

func fromJSONAction(ja jsonAction) Action {
	var typ ActionType
	switch ja.Type {
	case "shift":
		typ = Shift
	case "reduce":
		typ = Reduce
	case "accept":
		typ = Accept
	default:
		typ = Error
	}
	return Action{Type: typ, StateID: ja.StateID, ProdID: ja.ProdID}
}

// MarshalJSON serialises the ACTION/GOTO cells and recorded conflicts.
func (t *Table) MarshalJSON() ([]byte, error) {
	jt := jsonTable{
		NumStates:   t.NumStates(),
		StartState:  t.StartState,
		AcceptState: t.FinalAcceptState,
		Action:      map[string]map[string][]jsonAction{},
		Goto:        map[string]map[string]int{},
	}

	for state, row := range t.Action {
		key := itoaKey(state)
		jt.Action[key] = map[string][]jsonAction{}
		for term, cell := range row {
			actions := t.ActionsAt(state, term)
			jas := make([]jsonAction, len(actions))
			for i, a := range actions {
				jas[i] = toJSONAction(a)
			}
			jt.Action[key][term] = jas
			_ = cell
		}
	}

	for state, row := range t.Goto {
		key := itoaKey(state)
		jt.Goto[key] = map[string]int{}
		for nt, cell := range row {
			target, ok := t.GotoAt(state, nt)
			if ok {
				jt.Goto[key][nt] = target
			}
			_ = cell
		}
	}

	for _, c := range t.Conflicts {
		jas := make([]jsonAction, len(c.Actions))
		for i, a := range c.Actions {
			jas[i] = toJSONAction(a)
		}
		jt.Conflicts = append(jt.Conflicts, jsonConflict{
			State:    c.State,
			Terminal: c.Terminal,
			Type:     c.Type.String(),
			Actions:  jas,
		})
	}

	return json.MarshalIndent(jt, "", "  ")
}

// UnmarshalJSON reconstructs the ACTION/GOTO cells (not Grammar or
// Cluster, which the caller keeps from the original build).
func (t *Table) UnmarshalJSON(data []byte) error {
	var jt jsonTable
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}

	t.Action = map[int]map[grammar.Symbol]map[Action]bool{}
	t.Goto = map[int]map[grammar.Symbol]map[int]bool{}
	t.StartState = jt.StartState
	t.FinalAcceptState = jt.AcceptState

	for key, row := range jt.Action {
		state := atoiKey(key)
		for term, actions := range row {
			for _, ja := range actions {
				t.addAction(state, term, fromJSONAction(ja))
			}
		}
	}

	for key, row := range jt.Goto {
		state := atoiKey(key)
		for nt, target := range row {
			t.addGoto(state, nt, target)
		}
	}

	t.classifyConflicts()
	return nil
}
