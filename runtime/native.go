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

package runtime

import (
	"io/fs"
	"os"
	"path/filepath"
)

// NativeRuntime implements Runtime against the host OS. It is the only
// file in this package built with direct os access, so WASM builds (tag
// wasm) simply exclude it in favor of MemRuntime or FetchRuntime.
type NativeRuntime struct{}

// NewNativeRuntime creates a Runtime backed by the host filesystem.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

func (NativeRuntime) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (NativeRuntime) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (NativeRuntime) Metadata(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (NativeRuntime) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (NativeRuntime) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

func (NativeRuntime) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (NativeRuntime) CreateDir(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (NativeRuntime) Cwd() (string, error) {
	return os.Getwd()
}
