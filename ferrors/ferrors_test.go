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

package ferrors_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/ferrors"
)

func TestType_Fatal(t *testing.T) {
	assert.True(t, ferrors.Validation.Fatal())
	assert.True(t, ferrors.LimitExceeded.Fatal())
	assert.True(t, ferrors.Cancelled.Fatal())
	assert.False(t, ferrors.MDXSyntax.Fatal())
	assert.False(t, ferrors.Transform.Fatal())
}

func TestNewMissingExport_SerializesStableType(t *testing.T) {
	err := ferrors.NewMissingExport("Buton", "components/button.ts", []string{"Button"}, "Button")
	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "missing_export", decoded["type"])
	assert.Equal(t, "Buton", decoded["export_name"])
}

func TestMultiError_PromotesFatalToPrimary(t *testing.T) {
	warn := ferrors.NewCircularDependency([]string{"a.ts", "b.ts", "a.ts"})
	fatal := ferrors.NewValidation("splitting requires bundle")

	multi := ferrors.NewMultiError([]*ferrors.Error{warn, fatal})
	require.NotNil(t, multi)
	assert.Equal(t, ferrors.Validation, multi.Primary.Type)
	assert.Len(t, multi.Secondary, 1)
	assert.Equal(t, ferrors.CircularDependency, multi.Secondary[0].Type)
}

func TestMultiError_Empty(t *testing.T) {
	assert.Nil(t, ferrors.NewMultiError(nil))
}

func TestSuggestExport_ClosestTypo(t *testing.T) {
	assert.Equal(t, "Button", ferrors.SuggestExport("Buton", []string{"Button", "Card", "Icon"}))
}

func TestSuggestExport_NoCloseMatch(t *testing.T) {
	assert.Equal(t, "", ferrors.SuggestExport("zzz", []string{"Button", "Card"}))
}
