package bundler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/bundler"
	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph"
)

func assertHasKind(t *testing.T, verrs *ferrors.MultiError, kind string) {
	t.Helper()
	for _, e := range verrs.All() {
		if e.Fields != nil && e.Fields["kind"] == kind {
			return
		}
	}
	t.Fatalf("expected a validation error with kind %q, got %v", kind, verrs.All())
}

func TestValidate_RejectsEmptyEntries(t *testing.T) {
	verrs := bundler.Validate(graph.BuildConfig{})
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "entries_empty")
}

func TestValidate_OutfileRequiresSingleEntry(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Path: "a.ts"}, {Path: "b.ts"}},
		Outfile: "out.js",
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "outfile_requires_single_entry")
}

func TestValidate_SplittingRequiresBundle(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries:      []graph.EntryPoint{{Path: "a.ts"}},
		Bundle:       false,
		Optimization: graph.OptimizationSettings{Splitting: true},
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "splitting_requires_bundle")
}

func TestValidate_EntryMustBePathXorInline(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Path: "a.ts", Inline: "export {}"}},
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "entry_path_xor_inline")
}

func TestValidate_NeitherPathNorInlineAlsoRejected(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{}},
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "entry_path_xor_inline")
}

func TestValidate_InlineEntryNeedsOutputName(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Inline: "export {}"}},
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "inline_entry_needs_output_name")
}

func TestValidate_AliasKeysMustBeNonEmpty(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Path: "a.ts"}},
		Resolution: graph.ResolutionSettings{
			Aliases: map[string]string{"": "./src"},
		},
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "alias_key_empty")
}

func TestValidate_PlatformTargetConflictIsRejected(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries:  []graph.EntryPoint{{Path: "a.ts"}},
		Target:   "browser",
		Platform: "node",
	}
	verrs := bundler.Validate(cfg)
	require.NotNil(t, verrs)
	assertHasKind(t, verrs, "platform_target_conflict")
}

func TestValidate_AcceptsAWellFormedConfig(t *testing.T) {
	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Path: "a.ts"}},
		Target:  "browser",
	}
	verrs := bundler.Validate(cfg)
	assert.Nil(t, verrs)
}
