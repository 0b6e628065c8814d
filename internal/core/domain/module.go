package domain

import "slices"

// CachedModule is the persisted unit of cache state for one source file.
// It is valid only while the file at Path exists with the same ModTime.
type CachedModule struct {
	Path                 string   `json:"path"`
	Source               string   `json:"source"`
	ModTime              int64    `json:"mtime"`
	ContentHash          string   `json:"content_hash"`
	TransformedCode      string   `json:"transformed_code"`
	Dependencies         []string `json:"dependencies"`
	ResolvedDependencies []string `json:"resolved_dependencies"`
}

// Clone returns a deep copy of the entry.
func (m *CachedModule) Clone() *CachedModule {
	c := *m
	c.Dependencies = slices.Clone(m.Dependencies)
	c.ResolvedDependencies = slices.Clone(m.ResolvedDependencies)
	return &c
}

// SyntaxTree is an opaque handle to a transformed module owned by the toolchain.
type SyntaxTree interface {
	// Dialect reports the grammar the tree was produced from.
	Dialect() Dialect
}

// ParsedModule is a module produced during one discovery run.
type ParsedModule struct {
	Path         string
	Source       string
	Tree         SyntaxTree
	Dependencies []string
	// Resolved holds canonical dependency paths. It is filled by the discovery coordinator.
	Resolved []string
	ModTime  int64
	// FromCache marks modules restored from the module cache instead of parsed.
	FromCache bool
}

// CacheStats summarizes the state of the module cache.
type CacheStats struct {
	MemoryCount int  `json:"memory_count"`
	DiskCount   int  `json:"disk_count"`
	Enabled     bool `json:"enabled"`
}
