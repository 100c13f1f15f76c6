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
package validate

import (
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError is one schema violation found in a manifest document.
type ValidationError struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// ErrorIDRegistry maps a jsonschema validation message to a stable,
// greppable error ID, independent of jsonschema's own wording.
type ErrorIDRegistry struct {
	patterns map[*regexp.Regexp]string
}

func NewErrorIDRegistry() *ErrorIDRegistry {
	registry := &ErrorIDRegistry{patterns: make(map[*regexp.Regexp]string)}
	registry.registerPattern(`missing propert`, "schema-required-property")
	registry.registerPattern(`additionalProperties`, "schema-additional-properties")
	registry.registerPattern(`value must be`, "schema-invalid-enum")
	registry.registerPattern(`minimum`, "schema-value-too-small")
	registry.registerPattern(`maximum`, "schema-value-too-large")
	registry.registerPattern(`minLength`, "schema-string-too-short")
	registry.registerPattern(`maxLength`, "schema-string-too-long")
	registry.registerPattern(`type`, "schema-invalid-type")
	return registry
}

func (r *ErrorIDRegistry) registerPattern(pattern, id string) {
	r.patterns[regexp.MustCompile(pattern)] = id
}

// AssignID assigns an error ID based on the validation message.
func (r *ErrorIDRegistry) AssignID(message string) string {
	for regex, id := range r.patterns {
		if regex.MatchString(message) {
			return id
		}
	}
	return "schema-validation-error"
}

// ErrorProcessor flattens a jsonschema.ValidationError's cause tree into
// leaf ValidationErrors, skipping causes that only wrap further causes.
type ErrorProcessor struct {
	registry *ErrorIDRegistry
}

func NewErrorProcessor() *ErrorProcessor {
	return &ErrorProcessor{registry: NewErrorIDRegistry()}
}

func (p *ErrorProcessor) Collect(err *jsonschema.ValidationError, out *[]ValidationError) {
	for _, cause := range err.Causes {
		if len(cause.Causes) == 0 {
			out2 := ValidationError{
				ID:       p.registry.AssignID(cause.Message),
				Message:  cause.Message,
				Location: cause.InstanceLocation,
			}
			*out = append(*out, out2)
			continue
		}
		p.Collect(cause, out)
	}
}
