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

package framework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/framework"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/tsquery"
)

func TestHTMLContainerRule_Matches(t *testing.T) {
	qm, err := tsquery.NewQueryManager(tsquery.ContainerQueries())
	require.NoError(t, err)
	defer qm.Close()

	rule := framework.NewHTMLContainerRule(qm)
	assert.True(t, rule.Matches("index.html", nil))
	assert.True(t, rule.Matches("PAGE.HTM", nil))
	assert.False(t, rule.Matches("index.ts", nil))
}

func TestHTMLContainerRule_Extract(t *testing.T) {
	qm, err := tsquery.NewQueryManager(tsquery.ContainerQueries())
	require.NoError(t, err)
	defer qm.Close()

	rule := framework.NewHTMLContainerRule(qm)
	source := []byte(`<!doctype html>
<html>
  <head>
    <style>body { color: red; }</style>
  </head>
  <body>
    <script>console.log("hi")</script>
  </body>
</html>`)

	units, err := rule.Extract("index.html", source)
	require.NoError(t, err)
	require.NotEmpty(t, units)

	var sawScript, sawStyle bool
	for _, u := range units {
		assert.Equal(t, "index.html", u.ContainerID)
		switch u.SourceType {
		case graph.JavaScript:
			sawScript = true
			assert.Contains(t, string(u.Content), "console.log")
		case graph.Css:
			sawStyle = true
			assert.Contains(t, string(u.Content), "color: red")
		}
	}
	assert.True(t, sawScript)
	assert.True(t, sawStyle)
}
