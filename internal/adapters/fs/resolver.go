// Package fs implements module path resolution and file hashing on the local filesystem.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleResolver = (*Resolver)(nil)

// probeExtensions are tried in order after the literal path.
var probeExtensions = []string{".ts", ".tsx", ".jsx", ".js"}

// indexFiles are tried in order inside a path treated as a directory.
var indexFiles = []string{"index.ts", "index.tsx", "index.jsx", "index.js"}

// Resolver implements ports.ModuleResolver.
type Resolver struct {
	externals map[string]struct{}
	prefixes  []string
}

// NewResolver creates a Resolver that rejects the given external specifiers.
// An entry ending in "*" rejects every specifier with that prefix.
func NewResolver(externals []string) *Resolver {
	r := &Resolver{externals: make(map[string]struct{}, len(externals))}
	for _, ext := range externals {
		if prefix, ok := strings.CutSuffix(ext, "*"); ok {
			r.prefixes = append(r.prefixes, prefix)
			continue
		}
		r.externals[ext] = struct{}{}
	}
	return r
}

// IsExternal reports whether specifier is provided by the host runtime.
func (r *Resolver) IsExternal(specifier string) bool {
	if _, ok := r.externals[specifier]; ok {
		return true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(specifier, prefix) {
			return true
		}
	}
	return false
}

// ResolveEntry resolves the entry specifier relative to root to a canonical path.
func (r *Resolver) ResolveEntry(root, specifier string) (string, error) {
	path := specifier
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	resolved, ok := probe(path)
	if !ok {
		return "", zerr.With(domain.ErrEntryNotFound, "entry", specifier)
	}
	return resolved, nil
}

// Resolve resolves a specifier imported by the module at from.
func (r *Resolver) Resolve(from, specifier string) (string, bool) {
	if r.IsExternal(specifier) {
		return "", false
	}

	switch {
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"):
		return probe(filepath.Join(filepath.Dir(from), specifier))
	case filepath.IsAbs(specifier):
		return probe(specifier)
	case strings.HasPrefix(specifier, "."):
		return "", false
	default:
		return resolveNodeModule(filepath.Dir(from), specifier)
	}
}

// resolveNodeModule walks up from dir looking for node_modules/<specifier>.
func resolveNodeModule(dir, specifier string) (string, bool) {
	for {
		if resolved, ok := probe(filepath.Join(dir, "node_modules", specifier)); ok {
			return resolved, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// probe returns the canonical path of the first candidate that is a regular file.
func probe(path string) (string, bool) {
	for _, candidate := range candidates(path) {
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		canonical, err := Canonicalize(candidate)
		if err != nil {
			continue
		}
		return canonical, true
	}
	return "", false
}

func candidates(path string) []string {
	out := make([]string, 0, 1+len(probeExtensions)+len(indexFiles))
	out = append(out, path)
	for _, ext := range probeExtensions {
		out = append(out, withExtension(path, ext))
	}
	for _, index := range indexFiles {
		out = append(out, filepath.Join(path, index))
	}
	return out
}

// withExtension replaces the extension of the last path element, or appends one.
func withExtension(path, ext string) string {
	base := filepath.Base(path)
	if old := filepath.Ext(base); old != "" && old != base {
		path = strings.TrimSuffix(path, old)
	}
	return path + ext
}

// Canonicalize returns the absolute, symlink-free form of path.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
