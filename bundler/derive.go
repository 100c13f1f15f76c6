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

package bundler

import (
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/target"
)

// deriveTarget resolves the effective DeploymentTarget for cfg (spec §4.6
// step 2's first half). Callers run this only after Validate has already
// rejected a platform/target conflict.
func deriveTarget(cfg graph.BuildConfig) (target.Target, error) {
	dt, err := target.Resolve(cfg.Target, cfg.Platform)
	if err != nil {
		return target.Target{}, err
	}
	return dt.Resolve(), nil
}

// deriveResolverOptions builds the resolver.Options the graph builder
// resolves every specifier against: user-supplied Conditions/MainFields
// win when set, otherwise the resolved target's own values apply. Node
// builtins policy always comes from the target — it isn't a per-build
// override surface (spec §4.5).
//
// Externals are passed through as the user configured them; a Node
// builtin is externalized (or polyfilled, or rejected) separately by
// resolver.Resolver's own step 6 according to tgt.NodeBuiltins, so there
// is no separate "merge user externals with target builtins" list to
// build here — a user external pattern that happens to also name a
// builtin simply matches at step 3, before step 6 is ever reached, which
// is exactly "the user pattern wins" (open question (b)).
func deriveResolverOptions(cfg graph.BuildConfig, tgt target.Target) resolver.Options {
	conditions := cfg.Resolution.Conditions
	if len(conditions) == 0 {
		conditions = tgt.ExportConditions
	}
	mainFields := cfg.Resolution.MainFields
	if len(mainFields) == 0 {
		mainFields = tgt.MainFields
	}
	return resolver.Options{
		Aliases:      cfg.Resolution.Aliases,
		Externals:    cfg.Resolution.Externals,
		VirtualFiles: cfg.VirtualFiles,
		Conditions:   conditions,
		MainFields:   mainFields,
		NodeBuiltins: tgt.NodeBuiltins,
	}
}
