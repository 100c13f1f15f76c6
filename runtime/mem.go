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

package runtime

import (
	"io/fs"
	"path"
	"testing/fstest"
)

// MemRuntime implements Runtime over an in-memory fstest.MapFS. It backs
// virtual entries and every test in the tree that would otherwise need a
// real filesystem.
type MemRuntime struct {
	fs  fstest.MapFS
	cwd string
}

// NewMemRuntime creates an in-memory Runtime seeded from files, keyed by
// slash-separated path (no leading slash, per fs.FS convention).
func NewMemRuntime(files map[string]string) *MemRuntime {
	mapFS := make(fstest.MapFS, len(files))
	for p, content := range files {
		mapFS[p] = &fstest.MapFile{Data: []byte(content), Mode: 0644}
	}
	return &MemRuntime{fs: mapFS, cwd: "."}
}

// Put inserts or overwrites a file, for incremental test setup and for
// plugins that synthesize sources.
func (m *MemRuntime) Put(path string, content []byte) {
	m.fs[path] = &fstest.MapFile{Data: content, Mode: 0644}
}

func (m *MemRuntime) ReadFile(p string) ([]byte, error) {
	return fs.ReadFile(m.fs, clean(p))
}

func (m *MemRuntime) WriteFile(p string, data []byte, perm fs.FileMode) error {
	m.fs[clean(p)] = &fstest.MapFile{Data: data, Mode: perm}
	return nil
}

func (m *MemRuntime) Metadata(p string) (fs.FileInfo, error) {
	return fs.Stat(m.fs, clean(p))
}

func (m *MemRuntime) Exists(p string) bool {
	_, err := fs.Stat(m.fs, clean(p))
	return err == nil
}

// Resolve on MemRuntime only cleans and joins against cwd; there is no
// real filesystem to canonicalize against.
func (m *MemRuntime) Resolve(p string) (string, error) {
	if path.IsAbs(p) {
		return path.Clean(p), nil
	}
	return path.Clean(path.Join(m.cwd, p)), nil
}

func (m *MemRuntime) ReadDir(p string) ([]fs.DirEntry, error) {
	return fs.ReadDir(m.fs, clean(p))
}

func (m *MemRuntime) CreateDir(string, fs.FileMode) error {
	// fstest.MapFS has no explicit directory entries.
	return nil
}

func (m *MemRuntime) Cwd() (string, error) {
	return m.cwd, nil
}

func clean(p string) string {
	if p == "" {
		return "."
	}
	cleaned := path.Clean(p)
	for len(cleaned) > 0 && cleaned[0] == '/' {
		cleaned = cleaned[1:]
	}
	if cleaned == "" {
		return "."
	}
	return cleaned
}
