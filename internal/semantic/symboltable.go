package semantic

import (
	"fmt"
	"strings"

	"github.com/dekarrin/slrc/internal/slrerr"
)

// SystemTableName is the name of the outermost, level-0 table that holds
// every top-level declaration.
const SystemTableName = "system_table"

// SymbolTable is one lexical scope: a function's parameter/body scope, or
// the outermost system scope. Outer is a non-owning reference handle used
// only for lexical lookup; ownership of every table lives in the
// process-wide Registry, keyed by qualified name, so that cyclic
// inner-to-outer references never become ownership cycles.
type SymbolTable struct {
	Name    string
	Outer   *SymbolTable
	Width   int
	Argc    int
	ArgList []string
	RType   string
	Level   int
	Code    []string
	Entries []*Entry

	byName map[string]int
}

// NewSymbolTable returns an empty table at name, nested under outer (or
// the system table's level-0 root if outer is nil).
func NewSymbolTable(name string, outer *SymbolTable) *SymbolTable {
	level := 0
	if outer != nil {
		level = outer.Level + 1
	}
	return &SymbolTable{
		Name:   name,
		Outer:  outer,
		Level:  level,
		byName: map[string]int{},
	}
}

// AddEntry inserts e into the table. Fails if an entry of the same name
// already exists: names within one table are unique, enforced at
// insertion.
func (t *SymbolTable) AddEntry(e *Entry) error {
	if _, exists := t.byName[e.Name]; exists {
		return slrerr.Newf(slrerr.ErrSemantic, "%q redeclared in scope %q", e.Name, t.Name)
	}
	t.byName[e.Name] = len(t.Entries)
	t.Entries = append(t.Entries, e)
	return nil
}

// Lookup searches t, then its outer chain, for an entry named name.
func (t *SymbolTable) Lookup(name string) (*Entry, *SymbolTable, bool) {
	for cur := t; cur != nil; cur = cur.Outer {
		if idx, ok := cur.byName[name]; ok {
			return cur.Entries[idx], cur, true
		}
	}
	return nil, nil, false
}

// Registry owns every SymbolTable ever finalised during a compilation,
// keyed by qualified name ("inner@outer"). Back-references from inner
// tables to outer tables (SymbolTable.Outer) are reference handles only;
// the Registry is the sole owner.
type Registry struct {
	tables map[string]*SymbolTable
	order  []string
}

// NewRegistry returns an empty registry seeded with the system table.
func NewRegistry() (*Registry, *SymbolTable) {
	system := NewSymbolTable(SystemTableName, nil)
	r := &Registry{tables: map[string]*SymbolTable{}}
	r.register(SystemTableName, system)
	return r, system
}

// QualifiedName returns "inner@outer" for a table named inner directly
// nested under a table named outer, or just inner if it has no outer.
func QualifiedName(inner string, outer *SymbolTable) string {
	if outer == nil {
		return inner
	}
	return inner + "@" + outer.Name
}

func (r *Registry) register(qualifiedName string, t *SymbolTable) {
	if _, exists := r.tables[qualifiedName]; !exists {
		r.order = append(r.order, qualifiedName)
	}
	r.tables[qualifiedName] = t
}

// Register finalises t under its qualified name, derived from t.Name and
// t.Outer.
func (r *Registry) Register(t *SymbolTable) {
	r.register(QualifiedName(t.Name, t.Outer), t)
}

// Get returns the table registered under qualifiedName.
func (r *Registry) Get(qualifiedName string) (*SymbolTable, bool) {
	t, ok := r.tables[qualifiedName]
	return t, ok
}

// Tables returns every registered table in registration order.
func (r *Registry) Tables() []*SymbolTable {
	tables := make([]*SymbolTable, len(r.order))
	for i, name := range r.order {
		tables[i] = r.tables[name]
	}
	return tables
}

// Dump renders every registered table in the documented per-table text
// form: "<qualified-name>: { width argc rtype level / arglist (…) /
// entries { … } / code [ … ] }". This supplements spec §6.6 (which shows
// one table) by dumping the whole map, mirroring the original
// implementation's to_txt.
func (r *Registry) Dump() string {
	var sb strings.Builder
	for _, qname := range r.order {
		t := r.tables[qname]
		fmt.Fprintf(&sb, "%s: { width:%d argc:%d rtype:%s level:%d / arglist(%s) / entries{",
			qname, t.Width, t.Argc, t.RType, t.Level, strings.Join(t.ArgList, ", "))
		for i, e := range t.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s:%s", e.Name, e.Type)
		}
		sb.WriteString("} / code[")
		for _, c := range t.Code {
			sb.WriteString(c)
		}
		sb.WriteString("] }\n")
	}
	return sb.String()
}
