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

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChunkKind classifies an emitted chunk.
type ChunkKind int

const (
	EntryChunk ChunkKind = iota
	AsyncChunk
	SharedChunk
)

func (k ChunkKind) String() string {
	switch k {
	case AsyncChunk:
		return "async"
	case SharedChunk:
		return "shared"
	default:
		return "entry"
	}
}

// Chunk is one emitted output file (spec §3).
type Chunk struct {
	Id              string
	Kind            ChunkKind
	Filename        string
	Code            string
	SourceMap       string
	Modules         []ModuleId
	StaticImports   []string // chunk ids
	DynamicImports  []string // chunk ids
	SizeBytes       int64
}

// ManifestEntry records which chunk(s) an entry point produced.
type ManifestEntry struct {
	EntryPoint string `json:"entryPoint"`
	ChunkId    string `json:"chunkId"`
}

// ChunkMetadata is the manifest-facing summary of one Chunk.
type ChunkMetadata struct {
	Id        string     `json:"id"`
	Filename  string     `json:"filename"`
	Kind      ChunkKind  `json:"kind"`
	SizeBytes int64      `json:"sizeBytes"`
	Modules   []ModuleId `json:"modules,omitempty"`
}

// Manifest is the deterministic, content-hashable index of a build's output
// (spec §3, §6). Version is bumped whenever the manifest's own shape
// changes, independent of the bundled code.
type Manifest struct {
	Version int             `json:"version"`
	Entries []ManifestEntry `json:"entries"`
	Chunks  []ChunkMetadata `json:"chunks"`
}

// MarshalJSON renders ChunkKind as its lowercase name so the manifest stays
// human-readable on disk.
func (k ChunkKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON accepts the lowercase names MarshalJSON writes.
func (k *ChunkKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "entry":
		*k = EntryChunk
	case "async":
		*k = AsyncChunk
	case "shared":
		*k = SharedChunk
	default:
		return fmt.Errorf("graph: unknown chunk kind %q", s)
	}
	return nil
}

// Stats summarizes one build for observability (spec §3).
type Stats struct {
	ModuleCount   int
	ChunkCount    int
	TotalBytes    int64
	Duration      time.Duration
	CacheHitRate  float64
}

// EmittedAsset describes a non-code file produced by the Assets phase
// (spec §3, §4.7).
type EmittedAsset struct {
	PublicPath   string
	RelativePath string
	SizeBytes    int64
	Format       string
}

// DiagnosticSeverity classifies a Diagnostic.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInfo
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "error"
	}
}

// Diagnostic is one structured message surfaced in a BuildResult, keyed by
// the same stable type discriminators the ferrors package assigns.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Type     string
	Message  string
	ModuleId ModuleId
}

// BuildResult is the complete output of one build (spec §3).
type BuildResult struct {
	Chunks      []Chunk
	Manifest    Manifest
	Stats       Stats
	Assets      []EmittedAsset
	Diagnostics []Diagnostic
}

// HasErrors reports whether any Diagnostic carries SeverityError.
func (r BuildResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
