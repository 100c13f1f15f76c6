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

// Package framework defines fob's single-file-component extension point
// (spec §4.8): a FrameworkRule recognises a container source (Astro,
// Svelte, Vue-style) and splits it into the script/style regions the
// graph builder actually needs to traverse, before step 3 of §4.3 parses
// anything.
package framework

import "github.com/foxworth-uni/fob/graph"

// ExtractedUnit is one region a FrameworkRule pulled out of a container
// file: its own SourceType, a virtual sub-id the graph can key a Module
// on, the raw bytes to parse, and the container it came from (so
// diagnostics can point back at the original file).
type ExtractedUnit struct {
	SourceType  graph.SourceType
	VirtualID   string
	Content     []byte
	ContainerID string
}

// FrameworkRule recognises a container source type and extracts its
// embedded script/style regions plus any implicit imports they carry.
type FrameworkRule interface {
	// Matches reports whether path/content is a container this rule
	// handles. Called before Extract so the builder can skip the ones
	// that don't apply without parsing content twice.
	Matches(path string, content []byte) bool
	// Extract splits a matched container into its embedded units.
	Extract(containerID string, content []byte) ([]ExtractedUnit, error)
}
