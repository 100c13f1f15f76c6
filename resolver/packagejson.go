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

package resolver

import (
	"path"
	"strings"

	A "github.com/IBM/fp-go/array"
	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"
)

// resolveBare implements spec §4.2 step 5: walk outward from importerDir
// looking for node_modules/<package>, read its package.json, and select a
// file via the active export conditions, falling back to main_fields.
func (r *Resolver) resolveBare(importerDir, spec string) (string, bool) {
	pkgName, subpath := splitBareSpecifier(spec)

	dir := importerDir
	for {
		pkgDir := path.Join(dir, "node_modules", pkgName)
		pkgJSONPath := path.Join(pkgDir, "package.json")
		if r.rt.Exists(pkgJSONPath) {
			if target, ok := r.resolveWithinPackage(pkgDir, pkgJSONPath, subpath); ok {
				return target, true
			}
		}
		if dir == "/" || dir == "." || dir == "" {
			break
		}
		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// splitBareSpecifier separates an npm package name (including an optional
// scope and an optional @version/range suffix) from its subpath, e.g.
// "@scope/pkg@^2.0.0/util" -> ("@scope/pkg", "util"), version "^2.0.0".
// The version range itself only matters to FetchRuntime-backed resolution
// (selecting a registry tag); node_modules resolution ignores it, since
// the installed tree already pinned one version.
func splitBareSpecifier(spec string) (pkgName, subpath string) {
	segments := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") {
		if len(segments) < 2 {
			return spec, ""
		}
		pkgName = segments[0] + "/" + stripVersion(segments[1])
		subpath = strings.Join(segments[2:], "/")
		return pkgName, subpath
	}
	pkgName = stripVersion(segments[0])
	subpath = strings.Join(segments[1:], "/")
	return pkgName, subpath
}

func stripVersion(segment string) string {
	if i := strings.IndexByte(segment, '@'); i > 0 {
		return segment[:i]
	}
	return segment
}

// ResolveRegistryTag picks the concrete version a "^range" or "~range"
// specifier should fetch, given the sorted (ascending) list of available
// tags a registry reports. Used only by FetchRuntime-backed resolution,
// where no installed tree exists to disambiguate.
func ResolveRegistryTag(rangeSpec string, available []string) (string, bool) {
	rangeSpec = strings.TrimSpace(rangeSpec)
	if rangeSpec == "" || rangeSpec == "latest" {
		if len(available) == 0 {
			return "", false
		}
		return available[len(available)-1], true
	}
	best := ""
	for _, tag := range available {
		v := "v" + strings.TrimPrefix(tag, "v")
		if !semver.IsValid(v) {
			continue
		}
		if satisfiesRange(v, rangeSpec) && (best == "" || semver.Compare(v, "v"+strings.TrimPrefix(best, "v")) > 0) {
			best = tag
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// satisfiesRange supports the two range operators package.json dependency
// fields actually use in the overwhelming common case: caret (^) and tilde
// (~). An exact version or anything else is matched literally.
func satisfiesRange(v, rangeSpec string) bool {
	switch {
	case strings.HasPrefix(rangeSpec, "^"):
		base := "v" + strings.TrimPrefix(strings.TrimPrefix(rangeSpec, "^"), "v")
		if !semver.IsValid(base) {
			return false
		}
		return semver.Compare(v, base) >= 0 && semver.Major(v) == semver.Major(base)
	case strings.HasPrefix(rangeSpec, "~"):
		base := "v" + strings.TrimPrefix(strings.TrimPrefix(rangeSpec, "~"), "v")
		if !semver.IsValid(base) {
			return false
		}
		return semver.Compare(v, base) >= 0 && semver.MajorMinor(v) == semver.MajorMinor(base)
	default:
		base := "v" + strings.TrimPrefix(rangeSpec, "v")
		return semver.Compare(v, base) == 0
	}
}

func (r *Resolver) resolveWithinPackage(pkgDir, pkgJSONPath, subpath string) (string, bool) {
	data, err := r.rt.ReadFile(pkgJSONPath)
	if err != nil {
		return "", false
	}

	if target, ok := r.resolveExportsField(pkgDir, data, subpath); ok {
		return target, true
	}
	return r.resolveMainFields(pkgDir, data)
}

// resolveExportsField selects a file via the package.json "exports" map
// using the active condition order (spec §4.2 step 5). Condition objects
// are tried as: exports["."] / exports["./<subpath>"] first as a direct
// string, then as a condition map walked in r.opts.Conditions order, with
// "default" always considered last regardless of position.
func (r *Resolver) resolveExportsField(pkgDir string, packageJSON []byte, subpath string) (string, bool) {
	key := "."
	if subpath != "" {
		key = "./" + subpath
	}

	exports := gjson.GetBytes(packageJSON, "exports")
	if !exports.Exists() {
		return "", false
	}

	var entry gjson.Result
	switch {
	case exports.Type == gjson.String:
		// exports: "./index.js" — a bare string is always the root entry.
		if key != "." {
			return "", false
		}
		entry = exports
	case exports.IsObject() && looksLikeConditionsMap(exports):
		// exports: {"import": "...", "default": "..."} — conditions map
		// for the root entry only; subpaths are unreachable.
		if key != "." {
			return "", false
		}
		entry = exports
	case exports.IsObject():
		// exports: {"./a": "...", ".": "..."} — subpath map.
		entry = exports.Get(escapeGjsonKey(key))
	}

	if !entry.Exists() {
		return "", false
	}

	if entry.Type == gjson.String {
		return joinPkg(pkgDir, entry.String()), true
	}

	if entry.IsObject() {
		for _, cond := range append(append([]string{}, r.opts.Conditions...), "default") {
			if v := entry.Get(escapeGjsonKey(cond)); v.Exists() && v.Type == gjson.String {
				return joinPkg(pkgDir, v.String()), true
			}
		}
	}
	return "", false
}

// looksLikeConditionsMap distinguishes exports = {"import": "...", "require": "..."}
// (a conditions map for the root entry) from exports = {"./a": "...", "./b": "..."}
// (a subpath map): the former's keys never start with ".".
func looksLikeConditionsMap(exports gjson.Result) bool {
	isConditions := true
	exports.ForEach(func(key, _ gjson.Result) bool {
		if strings.HasPrefix(key.String(), ".") {
			isConditions = false
			return false
		}
		return true
	})
	return isConditions
}

func (r *Resolver) resolveMainFields(pkgDir string, packageJSON []byte) (string, bool) {
	for _, field := range r.opts.MainFields {
		v := gjson.GetBytes(packageJSON, field)
		if !v.Exists() || v.Type != gjson.String || v.String() == "" {
			continue
		}
		base := joinPkg(pkgDir, v.String())
		withExt := A.Map(func(ext string) string { return base + ext })(permittedExtensions)
		candidates := append([]string{base}, withExt...)
		for _, candidate := range candidates {
			if r.rt.Exists(candidate) {
				return candidate, true
			}
		}
	}
	// Final fallback: package.json absent any recognized field, try index.js.
	candidate := path.Join(pkgDir, "index.js")
	if r.rt.Exists(candidate) {
		return candidate, true
	}
	return "", false
}

func joinPkg(pkgDir, rel string) string {
	rel = strings.TrimPrefix(rel, "./")
	return path.Join(pkgDir, rel)
}

func escapeGjsonKey(key string) string {
	return strings.ReplaceAll(key, ".", `\.`)
}
