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

//go:build !wasm

package bundler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"

	"github.com/foxworth-uni/fob/graph"
)

// writeChunks implements spec §4.6 step 7's atomic output write: each
// chunk (and its source map, if any) is written to a temp name in the
// target directory first, then renamed into place, so a reader never
// observes a half-written file. Final disk placement is a native-host
// concern independent of the Runtime a build reads modules through (a
// fetch-backed or in-memory Runtime has no meaningful notion of "the
// output directory"), so this file is excluded from wasm builds the same
// way runtime.NativeRuntime is.
func writeChunks(cfg graph.BuildConfig, chunks []graph.Chunk) error {
	if cfg.Outfile == "" && cfg.OutDir == "" {
		return nil
	}

	for _, c := range chunks {
		outPath := outputPath(cfg, c)
		if err := writeAtomic(outPath, []byte(c.Code)); err != nil {
			return fmt.Errorf("bundler: writing %s: %w", outPath, err)
		}
		if c.SourceMap != "" {
			if err := writeAtomic(outPath+".map", []byte(c.SourceMap)); err != nil {
				return fmt.Errorf("bundler: writing %s.map: %w", outPath, err)
			}
		}
	}
	return nil
}

// writeManifest writes manifest.json into cfg.OutDir, pretty-printed so a
// human reading build output on disk doesn't have to pipe it through a
// formatter first. A non-directory output (cfg.Outfile alone, no OutDir)
// has nowhere conventional to place a sibling manifest, so it is skipped.
func writeManifest(cfg graph.BuildConfig, m graph.Manifest) error {
	if cfg.OutDir == "" {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("bundler: marshaling manifest: %w", err)
	}
	formatted := pretty.Pretty(raw)
	return writeAtomic(filepath.Join(cfg.OutDir, "manifest.json"), formatted)
}

func outputPath(cfg graph.BuildConfig, c graph.Chunk) string {
	if cfg.Outfile != "" && c.Kind == graph.EntryChunk {
		return cfg.Outfile
	}
	return filepath.Join(cfg.OutDir, c.Filename)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".fob-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
