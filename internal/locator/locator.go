// Package locator finds rendering-engine binaries on disk.
//
// A Table is built once at process start from the platform defaults, then
// merged with user configuration. Lookups go through three stages in order:
// explicit name→path entries, well-known search directories, and finally a
// fallback Resolver (typically the engine's own PATH lookup).
package locator

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Chrome is the logical name of the headless browser used for rendering.
const Chrome = "chrome"

// Resolver maps a logical binary name to an executable path.
type Resolver interface {
	Resolve(name string) (path string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (string, bool)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) (string, bool) { return f(name) }

// Table is a static name→path mapping with search directories and a fallback.
// The zero value resolves nothing.
type Table struct {
	// Names maps a logical name to an explicit path. An entry only wins if
	// the file exists.
	Names map[string]string

	// Binaries lists the file names (relative to each search dir) tried for
	// a logical name.
	Binaries map[string][]string

	// SearchDirs are probed in order.
	SearchDirs []string

	// Fallback is consulted when nothing else matched. May be nil.
	Fallback Resolver

	stat func(string) (fs.FileInfo, error)
}

// Resolve returns the first existing candidate for name, then the fallback.
func (t Table) Resolve(name string) (string, bool) {
	for _, p := range t.Candidates(name) {
		if t.isFile(p) {
			return p, true
		}
	}
	if t.Fallback != nil {
		return t.Fallback.Resolve(name)
	}
	return "", false
}

// Candidates lists every path Resolve would probe for name, in order,
// excluding the fallback.
func (t Table) Candidates(name string) []string {
	var out []string
	if p, ok := t.Names[name]; ok && p != "" {
		out = append(out, p)
	}
	for _, dir := range t.SearchDirs {
		for _, bin := range t.Binaries[name] {
			out = append(out, filepath.Join(dir, bin))
		}
	}
	return out
}

// Merge returns a copy of t where names override existing entries and dirs
// are searched before the platform defaults. Empty values are ignored.
func (t Table) Merge(names map[string]string, dirs []string) Table {
	merged := t
	merged.Names = make(map[string]string, len(t.Names)+len(names))
	for k, v := range t.Names {
		merged.Names[k] = v
	}
	for k, v := range names {
		if v != "" {
			merged.Names[k] = v
		}
	}

	merged.SearchDirs = make([]string, 0, len(dirs)+len(t.SearchDirs))
	for _, d := range dirs {
		if d != "" {
			merged.SearchDirs = append(merged.SearchDirs, d)
		}
	}
	merged.SearchDirs = append(merged.SearchDirs, t.SearchDirs...)
	return merged
}

// WithFallback returns a copy of t using r as the last resort.
func (t Table) WithFallback(r Resolver) Table {
	t.Fallback = r
	return t
}

func (t Table) isFile(path string) bool {
	stat := t.stat
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(path)
	return err == nil && !info.IsDir()
}
