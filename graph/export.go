/*
Copyright © 2026 The Fob Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package graph

import "sync/atomic"

// ExportKind classifies how a binding leaves a module.
type ExportKind int

const (
	NamedExport ExportKind = iota
	DefaultExport
	NamespaceExport
	ReexportExport
)

func (k ExportKind) String() string {
	switch k {
	case DefaultExport:
		return "default"
	case NamespaceExport:
		return "namespace"
	case ReexportExport:
		return "reexport"
	default:
		return "named"
	}
}

// Export records one exported binding: its name, kind, the local name it
// binds to, the source module for re-exports, and a usage counter updated
// by analysis (spec §3).
type Export struct {
	Name         string
	Kind         ExportKind
	LocalBinding string
	ReexportFrom ModuleId

	usage int64 // atomic; accessed via ReadCount/IncrementUsage
}

// ReadCount returns how many times analysis has observed this export read.
func (e *Export) ReadCount() int64 {
	return atomic.LoadInt64(&e.usage)
}

// IncrementUsage records one more observed read of this export.
func (e *Export) IncrementUsage() {
	atomic.AddInt64(&e.usage, 1)
}

// SymbolKind classifies a declared name inside a module's SymbolTable.
type SymbolKind int

const (
	VarSymbol SymbolKind = iota
	FuncSymbol
	ClassSymbol
	ImportSymbol
	TypeOnlySymbol
)

// SymbolRecord is one entry of a Module's SymbolTable: a declared name's
// kind, nesting depth, and read/write counters (spec §3).
type SymbolRecord struct {
	Name        string
	Kind        SymbolKind
	ScopeDepth  int
	ReadCount   int
	WriteCount  int
}

// Unused reports whether this symbol is dead per spec §3's definition:
// never read, not re-exported, and not used by an entry module. The
// re-export/entry-use conditions are evaluated by the caller (typically
// the analyzer, which has graph-wide context); Unused here only covers
// the local half of the definition.
func (s SymbolRecord) Unused() bool {
	return s.ReadCount == 0
}

// SymbolTable is the per-module mapping of declared names to records.
type SymbolTable struct {
	records map[string]*SymbolRecord
	order   []string // preserves declaration order for deterministic output
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{records: make(map[string]*SymbolRecord)}
}

// Declare registers a new symbol, or returns the existing record if the
// name was already declared (re-declaration merges rather than shadows, to
// keep the table idempotent like the graph it lives in).
func (t *SymbolTable) Declare(name string, kind SymbolKind, scopeDepth int) *SymbolRecord {
	if rec, ok := t.records[name]; ok {
		return rec
	}
	rec := &SymbolRecord{Name: name, Kind: kind, ScopeDepth: scopeDepth}
	t.records[name] = rec
	t.order = append(t.order, name)
	return rec
}

// MarkRead increments the read counter for name, if declared.
func (t *SymbolTable) MarkRead(name string) {
	if rec, ok := t.records[name]; ok {
		rec.ReadCount++
	}
}

// MarkWrite increments the write counter for name, if declared.
func (t *SymbolTable) MarkWrite(name string) {
	if rec, ok := t.records[name]; ok {
		rec.WriteCount++
	}
}

// Get returns the record for name and whether it was declared.
func (t *SymbolTable) Get(name string) (*SymbolRecord, bool) {
	rec, ok := t.records[name]
	return rec, ok
}

// All returns every record in declaration order.
func (t *SymbolTable) All() []*SymbolRecord {
	out := make([]*SymbolRecord, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.records[name])
	}
	return out
}

func (t *SymbolTable) clone() *SymbolTable {
	if t == nil {
		return nil
	}
	clone := NewSymbolTable()
	for _, name := range t.order {
		rec := *t.records[name]
		clone.records[name] = &rec
		clone.order = append(clone.order, name)
	}
	return clone
}
