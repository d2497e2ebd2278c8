// Package render pretty-prints the artifacts built by internal/lr0,
// internal/slrtable, and internal/semantic as aligned, wrapped text,
// the same way the teacher's own SLR-table-to-string method uses
// rosed's table insertion to lay out ACTION/GOTO cells.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/semantic"
	"github.com/dekarrin/slrc/internal/slrtable"
)

// TableWidth is the column width rosed wraps table cells to.
const TableWidth = 10

// Table renders tbl's ACTION/GOTO cells as an aligned text table: one
// row per state, one column per terminal (ACTION) then non-terminal
// (GOTO), separated by a "|" divider column exactly like the teacher's
// SLR-table renderer.
func Table(tbl *slrtable.Table, g *grammar.GrammarSet) string {
	terms := sortedSymbols(g.Terminals())
	terms = append(terms, grammar.EndOfInput)
	nonTerms := sortedSymbols(g.NonTerminals())

	headers := []string{"state", "|"}
	for _, t := range terms {
		headers = append(headers, "A:"+t)
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}

	for sid := 0; sid < tbl.NumStates(); sid++ {
		row := []string{fmt.Sprintf("%d", sid), "|"}
		for _, t := range terms {
			cell := ""
			actions := tbl.ActionsAt(sid, t)
			cells := make([]string, len(actions))
			for i, a := range actions {
				cells[i] = a.String()
			}
			cell = strings.Join(cells, "/")
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			cell := ""
			if target, ok := tbl.GotoAt(sid, nt); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, TableWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Conflicts renders tbl's recorded conflicts as one line per conflict.
func Conflicts(tbl *slrtable.Table) string {
	if len(tbl.Conflicts) == 0 {
		return "(no conflicts)\n"
	}
	var sb strings.Builder
	for _, c := range tbl.Conflicts {
		fmt.Fprintf(&sb, "state %d, %s: %s [%s]\n", c.State, c.Terminal, c.Type.String(), actionList(c.Actions))
	}
	return sb.String()
}

func actionList(actions []slrtable.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// SymbolTableDump renders every table in reg in spec §6.6's
// `<qualified-name>: { ... }` per-table format.
func SymbolTableDump(reg *semantic.Registry) string {
	return reg.Dump()
}

func sortedSymbols(set map[grammar.Symbol]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
