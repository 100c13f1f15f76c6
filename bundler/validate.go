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
	"fmt"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/target"
)

// Validate checks a BuildConfig against spec §4.6 step 1's six rules plus
// the target/platform conflict check, each producing a distinct
// validation kind so callers can switch on
// identity rather than message text — the same stability
// validate/errors.go's ErrorIDRegistry gives schema errors. Every rule is
// checked (not short-circuited), so a single Validate call surfaces every
// problem in one pass.
func Validate(cfg graph.BuildConfig) *ferrors.MultiError {
	var errs []*ferrors.Error

	if len(cfg.Entries) == 0 {
		errs = append(errs, ferrors.NewValidationKind("entries_empty", "at least one entry is required"))
	}

	if cfg.Outfile != "" && len(cfg.Entries) > 1 {
		errs = append(errs, ferrors.NewValidationKind("outfile_requires_single_entry",
			fmt.Sprintf("outfile is only valid with exactly one entry, got %d", len(cfg.Entries))))
	}

	if cfg.Optimization.Splitting && !cfg.Bundle {
		errs = append(errs, ferrors.NewValidationKind("splitting_requires_bundle", "splitting requires bundle to be enabled"))
	}

	for i, e := range cfg.Entries {
		hasPath := e.Path != ""
		hasInline := e.Inline != ""
		if hasPath == hasInline {
			errs = append(errs, ferrors.NewValidationKind("entry_path_xor_inline",
				fmt.Sprintf("entry %d must be either a path or inline content, never both or neither", i)))
			continue
		}
		if hasInline && e.OutputName == "" {
			errs = append(errs, ferrors.NewValidationKind("inline_entry_needs_output_name",
				fmt.Sprintf("entry %d is inline content and must carry an output name", i)))
		}
	}

	for key := range cfg.Resolution.Aliases {
		if key == "" {
			errs = append(errs, ferrors.NewValidationKind("alias_key_empty", "alias keys must be non-empty"))
			break
		}
	}

	if _, err := target.Resolve(cfg.Target, cfg.Platform); err != nil {
		errs = append(errs, ferrors.NewValidationKind("platform_target_conflict", err.Error()))
	}

	return ferrors.NewMultiError(errs)
}
