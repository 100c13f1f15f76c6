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

package analyzer

import (
	"github.com/foxworth-uni/fob/framework"
	"github.com/foxworth-uni/fob/graph/builder"
)

// Config is the set of knobs an Analyzer carries once it has at least one
// entry. Entries are deduplicated by path/output-name (set-based, per
// the typestate's configuration contract).
type Config struct {
	Externals      []string
	Aliases        map[string]string
	Limits         builder.Limits
	FrameworkRules []framework.FrameworkRule
	ComputeUsage   bool
	Metrics        MetricsCollector
}

func (c Config) metricsOrDefault() MetricsCollector {
	if c.Metrics != nil {
		return c.Metrics
	}
	return NoOpMetricsCollector{}
}
