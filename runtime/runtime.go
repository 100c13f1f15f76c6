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

// Package runtime abstracts every bit of I/O the rest of fob performs,
// so the module graph and its builder stay WASM-safe and testable without
// touching an actual filesystem (spec §4.1). Three backends are provided:
// NativeRuntime (the OS), MemRuntime (an in-memory tree for tests and
// virtual entries), and FetchRuntime (an HTTP/CDN-backed tree with a
// persistent disk cache, for resolving bare npm specifiers against a
// remote registry).
package runtime

import (
	"io/fs"
)

// Runtime is the sole I/O seam used above this package. Every method name
// mirrors spec §4.1's verb list.
type Runtime interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Metadata(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Resolve(path string) (string, error) // canonicalize to an absolute, comparable form
	ReadDir(path string) ([]fs.DirEntry, error)
	CreateDir(path string, perm fs.FileMode) error
	Cwd() (string, error)
}
