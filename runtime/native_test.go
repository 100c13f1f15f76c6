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

package runtime_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/runtime"
)

func TestNativeRuntime_ReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rt := runtime.NewNativeRuntime()

	target := filepath.Join(dir, "out", "bundle.js")
	require.NoError(t, rt.CreateDir(filepath.Join(dir, "out"), 0755))
	require.NoError(t, rt.WriteFile(target, []byte("console.log(1)"), 0644))

	assert.True(t, rt.Exists(target))

	data, err := rt.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(data))

	info, err := rt.Metadata(target)
	require.NoError(t, err)
	assert.EqualValues(t, len("console.log(1)"), info.Size())
}

func TestNativeRuntime_Resolve(t *testing.T) {
	rt := runtime.NewNativeRuntime()
	abs, err := rt.Resolve("./runtime_test.go")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}
