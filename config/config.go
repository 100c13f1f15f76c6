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

// Package config loads fob's BuildConfig from YAML/JSON files, the
// environment, and CLI flags, merged the way the teacher's cmd/config and
// cmd/root.go merge CemConfig: viper layers flag > env > config file >
// default, then Unmarshal into a mapstructure-tagged Go struct.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/foxworth-uni/fob/graph"
)

// OptimizationConfig mirrors graph.OptimizationSettings with config tags;
// kept as a separate type (rather than tagging OptimizationSettings
// directly) so the graph package stays free of config-loading concerns.
type OptimizationConfig struct {
	Minify       bool   `mapstructure:"minify" yaml:"minify"`
	SourceMap    string `mapstructure:"sourceMap" yaml:"sourceMap"`
	Splitting    bool   `mapstructure:"splitting" yaml:"splitting"`
	TreeShaking  bool   `mapstructure:"treeShaking" yaml:"treeShaking"`
	MinImports   int    `mapstructure:"minImports" yaml:"minImports"`
	MinSizeBytes int    `mapstructure:"minSizeBytes" yaml:"minSizeBytes"`
}

// ResolutionConfig mirrors graph.ResolutionSettings with config tags.
type ResolutionConfig struct {
	Aliases    map[string]string `mapstructure:"aliases" yaml:"aliases"`
	Externals  []string          `mapstructure:"externals" yaml:"externals"`
	Conditions []string          `mapstructure:"conditions" yaml:"conditions"`
	MainFields []string          `mapstructure:"mainFields" yaml:"mainFields"`
}

// EntryConfig mirrors graph.EntryPoint with config tags. LoaderHint is a
// loader name string ("ts", "tsx", "jsx", "css", "json"); empty defers to
// extension-based classification.
type EntryConfig struct {
	Path       string `mapstructure:"path" yaml:"path"`
	Inline     string `mapstructure:"inline" yaml:"inline"`
	OutputName string `mapstructure:"outputName" yaml:"outputName"`
	LoaderHint string `mapstructure:"loaderHint" yaml:"loaderHint"`
}

// FobConfig is the full on-disk/CLI/env shape of a fob build request,
// Unmarshal'd out of viper the way CemConfig is in the teacher.
type FobConfig struct {
	ProjectDir string `mapstructure:"projectDir" yaml:"projectDir"`
	ConfigFile string `mapstructure:"configFile" yaml:"configFile"`
	Verbose    bool   `mapstructure:"verbose" yaml:"verbose"`

	Entries      []EntryConfig      `mapstructure:"entries" yaml:"entries"`
	Outfile      string             `mapstructure:"outfile" yaml:"outfile"`
	OutDir       string             `mapstructure:"outDir" yaml:"outDir"`
	Format       string             `mapstructure:"format" yaml:"format"`
	Bundle       bool               `mapstructure:"bundle" yaml:"bundle"`
	Platform     string             `mapstructure:"platform" yaml:"platform"`
	Target       string             `mapstructure:"target" yaml:"target"`
	Resolution   ResolutionConfig   `mapstructure:"resolution" yaml:"resolution"`
	Optimization OptimizationConfig `mapstructure:"optimization" yaml:"optimization"`
	VirtualFiles map[string]string  `mapstructure:"virtualFiles" yaml:"virtualFiles"`
	Plugins      []string           `mapstructure:"plugins" yaml:"plugins"`
	EntryMode    string             `mapstructure:"entryMode" yaml:"entryMode"`
}

// Defaults returns a FobConfig seeded with spec §4.6's documented
// optimization defaults, mirroring graph.DefaultOptimizationSettings.
func Defaults() *FobConfig {
	return &FobConfig{
		Optimization: OptimizationConfig{
			TreeShaking:  true,
			MinImports:   2,
			MinSizeBytes: 20000,
		},
	}
}

// NewViper builds a viper instance configured the way cmd/root.go's
// initConfig configures the package-global viper: yaml config named
// "fob" searched under <projectDir>/.config, then <projectDir>, with
// automatic environment variable binding under the FOB_ prefix. The
// top-level scalar keys are also bound explicitly (FOB_BUNDLE, FOB_TARGET,
// ...) so Load's Unmarshal sees them; nested keys are not bound that way.
func NewViper(projectDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("fob")
	v.AddConfigPath(filepath.Join(projectDir, ".config"))
	v.AddConfigPath(projectDir)
	v.SetEnvPrefix("FOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"projectDir", "configFile", "verbose", "outfile", "outDir", "format", "bundle", "platform", "target", "entryMode"} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads whatever config file NewViper's search path finds (a missing
// file is not an error — defaults and flags/env still apply), then
// unmarshals into a FobConfig seeded with Defaults().
func Load(v *viper.Viper) (*FobConfig, error) {
	cfg := Defaults()
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}

// ToBuildConfig converts the loaded, merged FobConfig into the
// graph.BuildConfig the bundler package consumes.
func (c *FobConfig) ToBuildConfig() graph.BuildConfig {
	entries := make([]graph.EntryPoint, len(c.Entries))
	for i, e := range c.Entries {
		entries[i] = graph.EntryPoint{
			Path:       e.Path,
			Inline:     e.Inline,
			OutputName: e.OutputName,
			LoaderHint: loaderHintFromString(e.LoaderHint),
		}
	}
	return graph.BuildConfig{
		Entries:  entries,
		Outfile:  c.Outfile,
		OutDir:   c.OutDir,
		Format:   formatFromString(c.Format),
		Bundle:   c.Bundle,
		Platform: c.Platform,
		Target:   c.Target,
		Resolution: graph.ResolutionSettings{
			Aliases:    c.Resolution.Aliases,
			Externals:  c.Resolution.Externals,
			Conditions: c.Resolution.Conditions,
			MainFields: c.Resolution.MainFields,
		},
		Optimization: graph.OptimizationSettings{
			Minify:       c.Optimization.Minify,
			SourceMap:    sourceMapFromString(c.Optimization.SourceMap),
			Splitting:    c.Optimization.Splitting,
			TreeShaking:  c.Optimization.TreeShaking,
			MinImports:   c.Optimization.MinImports,
			MinSizeBytes: c.Optimization.MinSizeBytes,
		},
		VirtualFiles: c.VirtualFiles,
		Plugins:      c.Plugins,
		EntryMode:    entryModeFromString(c.EntryMode),
	}
}

func loaderHintFromString(s string) graph.SourceType {
	switch strings.ToLower(s) {
	case "ts", "typescript":
		return graph.TypeScript
	case "tsx":
		return graph.Tsx
	case "jsx":
		return graph.Jsx
	case "js", "javascript":
		return graph.JavaScript
	case "mdx":
		return graph.Mdx
	case "css":
		return graph.Css
	case "json":
		return graph.Json
	default:
		return graph.Unknown
	}
}

func formatFromString(s string) graph.OutputFormat {
	switch strings.ToLower(s) {
	case "cjs", "commonjs":
		return graph.Cjs
	case "iife":
		return graph.Iife
	default:
		return graph.Esm
	}
}

func sourceMapFromString(s string) graph.SourceMapMode {
	switch strings.ToLower(s) {
	case "inline":
		return graph.SourceMapInline
	case "external":
		return graph.SourceMapExternal
	case "hidden":
		return graph.SourceMapHidden
	default:
		return graph.SourceMapNone
	}
}

func entryModeFromString(s string) graph.EntryMode {
	if strings.ToLower(s) == "isolated" {
		return graph.IsolatedEntryMode
	}
	return graph.SharedEntryMode
}
