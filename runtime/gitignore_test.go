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

package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxworth-uni/fob/runtime"
)

func TestGitignoreFilter_Ignored(t *testing.T) {
	f := runtime.NewGitignoreFilter("node_modules/\ndist/\n*.log\n")

	assert.True(t, f.Ignored("node_modules/left-pad/index.js"))
	assert.True(t, f.Ignored("dist/bundle.js"))
	assert.True(t, f.Ignored("debug.log"))
	assert.False(t, f.Ignored("src/index.ts"))
}

func TestGitignoreFilter_EmptyMatchesNothing(t *testing.T) {
	f := runtime.NewGitignoreFilter("")
	assert.False(t, f.Ignored("anything"))

	var nilFilter *runtime.GitignoreFilter
	assert.False(t, nilFilter.Ignored("anything"))
}
