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

// Package validate checks a fob build manifest against its JSON Schema and
// flags structural warnings a schema alone can't express.
package validate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/foxworth-uni/fob/graph"
)

//go:embed schemas/manifest.schema.json
var embeddedSchemas embed.FS

const schemaResourceName = "manifest.schema.json"

// ValidationResult is the outcome of validating one manifest.
type ValidationResult struct {
	IsValid  bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

// ValidationOptions controls optional, non-schema checks.
type ValidationOptions struct {
	IncludeWarnings bool
	DisabledRules   []string
}

// Validate validates a fob manifest against the embedded schema and, when
// requested, against structural warning checks.
func Validate(m graph.Manifest, options ValidationOptions) (*ValidationResult, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("validate: marshaling manifest: %w", err)
	}

	result := &ValidationResult{Errors: []ValidationError{}, Warnings: []ValidationWarning{}}
	if err := validateSchema(raw, result); err != nil {
		return nil, err
	}

	if options.IncludeWarnings {
		result.Warnings = filterDisabled(checkManifestWarnings(m), options.DisabledRules)
	}

	return result, nil
}

func validateSchema(raw []byte, result *ValidationResult) error {
	schemaData, err := embeddedSchemas.ReadFile("schemas/" + schemaResourceName)
	if err != nil {
		return fmt.Errorf("validate: reading embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResourceName, bytes.NewReader(schemaData)); err != nil {
		return fmt.Errorf("validate: adding schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaResourceName)
	if err != nil {
		return fmt.Errorf("validate: compiling schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("validate: unmarshaling manifest for validation: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("validate: unexpected validation error type: %w", err)
		}
		processor := NewErrorProcessor()
		var issues []ValidationError
		processor.Collect(validationErr, &issues)
		result.Errors = issues
		result.IsValid = false
		return nil
	}

	result.IsValid = true
	return nil
}
