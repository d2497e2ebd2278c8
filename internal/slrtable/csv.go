package slrtable

import (
	"bufio"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/slrerr"
)

const utf8BOM = "﻿"

// WriteCSV serialises t's ACTION/GOTO table to CSV, per spec §6.4: header
// "State, t1…, N1…" with terminals then non-terminals each sorted
// lexicographically; ACTION cells are "/"-joined s<id>/r<id>/acc tokens;
// GOTO cells hold a single target id or are blank. The stream is prefixed
// with a UTF-8 BOM.
func (t *Table) WriteCSV(w io.Writer) error {
	termSet := map[grammar.Symbol]bool{grammar.EndOfInput: true}
	for term := range t.Grammar.Terminals() {
		termSet[term] = true
	}
	terminals := sortedKeys(termSet)
	nonTerminals := sortedKeys(t.Grammar.NonTerminals())

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return slrerr.WithHuman(slrerr.Newf(slrerr.ErrSerialization, "writing BOM: %v", err), "could not write table")
	}

	cw := csv.NewWriter(w)

	header := append([]string{"State"}, terminals...)
	header = append(header, nonTerminals...)
	if err := cw.Write(header); err != nil {
		return slrerr.Newf(slrerr.ErrSerialization, "writing CSV header: %v", err)
	}

	for id := 0; id < t.NumStates(); id++ {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(id))

		for _, term := range terminals {
			actions := t.ActionsAt(id, term)
			parts := make([]string, len(actions))
			for i, a := range actions {
				parts[i] = a.String()
			}
			row = append(row, strings.Join(parts, "/"))
		}

		for _, nt := range nonTerminals {
			target, ok := t.GotoAt(id, nt)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.Itoa(target))
		}

		if err := cw.Write(row); err != nil {
			return slrerr.Newf(slrerr.ErrSerialization, "writing CSV row %d: %v", id, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the CSV form written by WriteCSV into action/goto cells,
// applying them to a bare Table shell. It does not reconstruct Grammar or
// Cluster; callers needing those must keep the originals alongside this
// round-tripped cell data for comparison.
func ReadCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	bom, _, err := br.ReadRune()
	if err != nil {
		return nil, slrerr.Newf(slrerr.ErrSerialization, "reading table: %v", err)
	}
	if bom != '﻿' {
		br.UnreadRune()
	}

	cr := csv.NewReader(br)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, slrerr.Newf(slrerr.ErrSerialization, "parsing table CSV: %v", err)
	}
	if len(rows) == 0 {
		return nil, slrerr.New(slrerr.ErrSerialization, "empty table CSV")
	}

	header := rows[0]
	if len(header) == 0 || header[0] != "State" {
		return nil, slrerr.New(slrerr.ErrSerialization, "malformed table CSV header")
	}

	t := &Table{
		Action: map[int]map[grammar.Symbol]map[Action]bool{},
		Goto:   map[int]map[grammar.Symbol]map[int]bool{},
	}

	for _, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, slrerr.Newf(slrerr.ErrSerialization, "row has %d cells, expected %d", len(row), len(header))
		}
		stateID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, slrerr.Newf(slrerr.ErrSerialization, "malformed state id %q: %v", row[0], err)
		}

		for col := 1; col < len(header); col++ {
			sym := header[col]
			cell := row[col]
			if cell == "" {
				continue
			}

			if strings.Contains(cell, "/") || strings.HasPrefix(cell, "s") || strings.HasPrefix(cell, "r") || cell == "acc" {
				for _, tok := range strings.Split(cell, "/") {
					a, err := parseActionToken(tok)
					if err != nil {
						return nil, err
					}
					t.addAction(stateID, sym, a)
				}
			} else if target, err := strconv.Atoi(cell); err == nil {
				t.addGoto(stateID, sym, target)
			}
		}

		if stateID+1 > t.NumStates() {
			for len(t.idToState) <= stateID {
				t.idToState = append(t.idToState, "")
			}
		}
	}

	t.classifyConflicts()
	return t, nil
}

func parseActionToken(tok string) (Action, error) {
	switch {
	case tok == "acc":
		return Action{Type: Accept}, nil
	case strings.HasPrefix(tok, "s"):
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return Action{}, slrerr.Newf(slrerr.ErrSerialization, "malformed shift token %q: %v", tok, err)
		}
		return Action{Type: Shift, StateID: n}, nil
	case strings.HasPrefix(tok, "r"):
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return Action{}, slrerr.Newf(slrerr.ErrSerialization, "malformed reduce token %q: %v", tok, err)
		}
		return Action{Type: Reduce, ProdID: n}, nil
	default:
		return Action{}, slrerr.Newf(slrerr.ErrSerialization, "unrecognized action token %q", tok)
	}
}

func sortedKeys(m map[grammar.Symbol]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
