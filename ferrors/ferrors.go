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

// Package ferrors implements fob's structured error taxonomy (spec §7):
// every fallible operation returns an *Error carrying a stable `type`
// discriminator so callers across process/WASM boundaries can switch on
// it without string-matching a message.
package ferrors

import (
	"encoding/json"
	"fmt"
)

// Type is one of the eleven stable discriminators from spec §7.
type Type string

const (
	MDXSyntax          Type = "mdx_syntax"
	MissingExport      Type = "missing_export"
	Transform          Type = "transform"
	CircularDependency Type = "circular_dependency"
	InvalidEntry       Type = "invalid_entry"
	NoEntries          Type = "no_entries"
	Plugin             Type = "plugin"
	Runtime            Type = "runtime"
	Validation         Type = "validation"
	LimitExceeded      Type = "limit_exceeded"
	Cancelled          Type = "cancelled"
)

// Fatal reports whether errors of this type always abort the whole build,
// per spec §7's propagation policy (validation, limit, cancellation are
// always fatal; mdx_syntax/transform/missing_export are per-entry).
func (t Type) Fatal() bool {
	switch t {
	case Validation, LimitExceeded, Cancelled:
		return true
	default:
		return false
	}
}

// Error is the common envelope every fallible fob operation returns.
// Fields is a loosely-typed bag rather than one struct per Type so a
// single wire format serves all eleven taxonomy members; the typed
// constructors below (New*) are what callers should actually use.
type Error struct {
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// MarshalJSON flattens Fields alongside type/message so downstream
// consumers see one JSON object rather than a nested "fields" key.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": e.Type, "message": e.Message}
	for k, v := range e.Fields {
		out[k] = v
	}
	return json.Marshal(out)
}

func newError(t Type, message string, fields map[string]any) *Error {
	return &Error{Type: t, Message: message, Fields: fields}
}

func NewMDXSyntax(message, file string, line, column int, context, suggestion string) *Error {
	return newError(MDXSyntax, message, map[string]any{
		"file": file, "line": line, "column": column, "context": context, "suggestion": suggestion,
	})
}

func NewMissingExport(exportName, moduleID string, available []string, suggestion string) *Error {
	return newError(MissingExport, fmt.Sprintf("module %q has no export %q", moduleID, exportName), map[string]any{
		"export_name":       exportName,
		"module_id":         moduleID,
		"available_exports": available,
		"suggestion":        suggestion,
	})
}

// TransformDiagnostic is one entry of a transform failure's diagnostics list.
type TransformDiagnostic struct {
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Help     string `json:"help,omitempty"`
}

func NewTransform(path string, diagnostics []TransformDiagnostic) *Error {
	return newError(Transform, fmt.Sprintf("transform failed: %s", path), map[string]any{
		"path": path, "diagnostics": diagnostics,
	})
}

func NewCircularDependency(cyclePath []string) *Error {
	return newError(CircularDependency, "circular dependency detected", map[string]any{
		"cycle_path": cyclePath,
	})
}

func NewInvalidEntry(path string) *Error {
	return newError(InvalidEntry, fmt.Sprintf("entry not found or unreadable: %s", path), map[string]any{
		"path": path,
	})
}

func NewNoEntries() *Error {
	return newError(NoEntries, "no entries configured", nil)
}

func NewPlugin(name, message string) *Error {
	return newError(Plugin, message, map[string]any{"name": name})
}

func NewRuntime(message string) *Error {
	return newError(Runtime, message, nil)
}

func NewValidation(message string) *Error {
	return newError(Validation, message, nil)
}

// NewValidationKind attaches a stable "kind" discriminator to a validation
// failure, so callers can switch on the failure's identity without
// string-matching message wording — the same ID-stability the teacher's
// ErrorIDRegistry gives its schema validation errors.
func NewValidationKind(kind, message string) *Error {
	return newError(Validation, message, map[string]any{"kind": kind})
}

func NewLimitExceeded(which string, limit, observed int64) *Error {
	return newError(LimitExceeded, fmt.Sprintf("%s limit exceeded: %d > %d", which, observed, limit), map[string]any{
		"which": which, "limit": limit, "observed": observed,
	})
}

func NewCancelled() *Error {
	return newError(Cancelled, "operation cancelled", nil)
}

// As reports whether err is itself a *Error and returns it, for use in
// switch-free call sites (errors.As-compatible since *Error implements
// error directly, not via a wrapped cause).
func As(err error) (*Error, bool) {
	fe, ok := err.(*Error)
	return fe, ok
}
