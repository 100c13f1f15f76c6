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

// ResolutionKind discriminates the outcome of resolving an import
// specifier, per spec §4.2's {Resolved, External, Unresolved} union.
type ResolutionKind int

const (
	ResolvedKind ResolutionKind = iota
	ExternalKind
	UnresolvedKind
)

// Resolution is the sum type describing how an import specifier resolved.
// Exactly one of Target/ExternalName/UnresolvedReason is meaningful,
// selected by Kind.
type Resolution struct {
	Kind             ResolutionKind
	Target           ModuleId
	ExternalName     string
	UnresolvedReason string
}

func Resolved(target ModuleId) Resolution {
	return Resolution{Kind: ResolvedKind, Target: target}
}

func External(name string) Resolution {
	return Resolution{Kind: ExternalKind, ExternalName: name}
}

func Unresolved(reason string) Resolution {
	return Resolution{Kind: UnresolvedKind, UnresolvedReason: reason}
}

func (r Resolution) IsResolved() bool   { return r.Kind == ResolvedKind }
func (r Resolution) IsExternal() bool   { return r.Kind == ExternalKind }
func (r Resolution) IsUnresolved() bool { return r.Kind == UnresolvedKind }

// ImportEdge is a directed edge from an importer Module to a resolved
// target, carrying everything spec §3 requires to reconstruct diagnostics
// without re-parsing: kind, the verbatim specifier as written, the
// resolution outcome, and any named symbols pulled off the import.
type ImportEdge struct {
	Kind             ImportKind
	Specifier        string
	Resolution       Resolution
	ImportedSymbols  []string
}

// Target returns the resolved ModuleId for this edge, or the zero value if
// the edge did not resolve to an in-graph module.
func (e ImportEdge) Target() (ModuleId, bool) {
	if e.Resolution.Kind == ResolvedKind {
		return e.Resolution.Target, true
	}
	return "", false
}
