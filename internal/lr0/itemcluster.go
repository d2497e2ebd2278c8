package lr0

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/slrerr"
)

// State is one node of the LR(0) automaton: its kernel items, the closure of
// those items, and the goto transitions out of the closure.
type State struct {
	Kernel  *ItemSet
	Closure *ItemSet
	Goto    map[grammar.Symbol]string
}

// ItemCluster is the canonical collection of LR(0) item sets plus the goto
// relation between them ("the goto DFA"). State names are generated
// sequentially ("Item Set 0", "Item Set 1", ...); two states are the same
// state iff their closures are set-equal, so the canonical collection is
// indexed by closure, not by kernel.
type ItemCluster struct {
	Grammar     *grammar.GrammarSet
	order       []string
	states      map[string]*State
	initialName string
}

const stateNamePrefix = "Item Set "

func stateName(n int) string {
	return stateNamePrefix + strconv.Itoa(n)
}

// Build constructs the canonical LR(0) item cluster for g.
func Build(g *grammar.GrammarSet) (*ItemCluster, error) {
	if g.StartSymbol() == "" {
		return nil, slrerr.New(slrerr.ErrBuild, "grammar has no start symbol")
	}

	ic := &ItemCluster{
		Grammar: g,
		states:  map[string]*State{},
	}

	startItem := Item{NonTerminal: g.AugmentedStart(), RHS: grammar.Production{g.StartSymbol()}, Dot: 0}
	kernel0 := NewItemSet()
	kernel0.Add(startItem)
	closure0 := kernel0.Closure(g)

	name0 := stateName(0)
	ic.initialName = name0
	ic.order = append(ic.order, name0)
	ic.states[name0] = &State{Kernel: kernel0, Closure: closure0, Goto: map[grammar.Symbol]string{}}

	for i := 0; i < len(ic.order); i++ {
		name := ic.order[i]
		state := ic.states[name]

		symbols := make([]grammar.Symbol, 0, len(state.Closure.NextSymbols()))
		for sym := range state.Closure.NextSymbols() {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)

		for _, sym := range symbols {
			targetClosure := state.Closure.Goto(g, sym)
			if targetClosure.Len() == 0 {
				continue
			}

			targetName := ic.findByClosure(targetClosure)
			if targetName == "" {
				targetName = stateName(len(ic.order))

				kernel := NewItemSet()
				for _, it := range state.Closure.Items() {
					next, ok := it.NextSymbol()
					if ok && next == sym {
						kernel.Add(it.Advance())
					}
				}

				ic.order = append(ic.order, targetName)
				ic.states[targetName] = &State{Kernel: kernel, Closure: targetClosure, Goto: map[grammar.Symbol]string{}}
			}

			state.Goto[sym] = targetName
		}
	}

	return ic, nil
}

func (ic *ItemCluster) findByClosure(closure *ItemSet) string {
	for _, name := range ic.order {
		if ic.states[name].Closure.Equal(closure) {
			return name
		}
	}
	return ""
}

// InitialState returns the name of the starting state ("Item Set 0").
func (ic *ItemCluster) InitialState() string {
	return ic.initialName
}

// StateNames returns every state name in registration order.
func (ic *ItemCluster) StateNames() []string {
	return ic.order
}

// State returns the named state and whether it exists.
func (ic *ItemCluster) State(name string) (*State, bool) {
	s, ok := ic.states[name]
	return s, ok
}

// StateNum extracts the trailing integer of a state name (identifier
// extraction relies on this, per spec §4.3).
func StateNum(name string) (int, error) {
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return 0, fmt.Errorf("malformed state name %q", name)
	}
	return strconv.Atoi(name[idx+1:])
}

// jsonState is the JSON-serialisable shape of a State.
type jsonState struct {
	Kernel  []string                  `json:"kernel"`
	Closure []string                  `json:"closure"`
	Goto    map[grammar.Symbol]string `json:"goto"`
}

type jsonCluster struct {
	Initial string               `json:"initial"`
	Order   []string             `json:"order"`
	States  map[string]jsonState `json:"states"`
}

// MarshalJSON serialises the cluster with per-state Kernel, Closure, and
// Goto, per spec §4.3.
func (ic *ItemCluster) MarshalJSON() ([]byte, error) {
	jc := jsonCluster{
		Initial: ic.initialName,
		Order:   ic.order,
		States:  map[string]jsonState{},
	}

	for _, name := range ic.order {
		st := ic.states[name]
		js := jsonState{Goto: st.Goto}
		for _, it := range st.Kernel.Items() {
			js.Kernel = append(js.Kernel, it.String())
		}
		for _, it := range st.Closure.Items() {
			js.Closure = append(js.Closure, it.String())
		}
		jc.States[name] = js
	}

	return json.MarshalIndent(jc, "", "  ")
}

// Text renders the cluster in a human-readable pretty form, one state per
// block, kernel and closure items each on their own line.
func (ic *ItemCluster) Text() string {
	var sb strings.Builder
	for _, name := range ic.order {
		st := ic.states[name]
		fmt.Fprintf(&sb, "%s:\n", name)
		sb.WriteString("  kernel:\n")
		for _, it := range st.Kernel.Items() {
			fmt.Fprintf(&sb, "    %s\n", it.String())
		}
		sb.WriteString("  closure:\n")
		for _, it := range st.Closure.Items() {
			fmt.Fprintf(&sb, "    %s\n", it.String())
		}
		if len(st.Goto) > 0 {
			sb.WriteString("  goto:\n")
			syms := make([]string, 0, len(st.Goto))
			for sym := range st.Goto {
				syms = append(syms, sym)
			}
			sort.Strings(syms)
			for _, sym := range syms {
				fmt.Fprintf(&sb, "    %s -> %s\n", sym, st.Goto[sym])
			}
		}
	}
	return sb.String()
}

// DOT renders the cluster's goto relation as a Graphviz digraph.
func (ic *ItemCluster) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph ItemCluster {\n")
	sb.WriteString("  rankdir=LR;\n")
	for _, name := range ic.order {
		fmt.Fprintf(&sb, "  %q;\n", name)
	}
	for _, name := range ic.order {
		st := ic.states[name]
		syms := make([]string, 0, len(st.Goto))
		for sym := range st.Goto {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			fmt.Fprintf(&sb, "  %q -> %q [label=%q];\n", name, st.Goto[sym], sym)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
