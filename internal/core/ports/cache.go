package ports

import "go.trai.ch/weld/internal/core/domain"

// ModuleCache stores transformed modules across runs together with their dependency graph.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ModuleCache interface {
	// Get returns a copy of the fresh entry for path.
	// Stale or unreadable entries are evicted and reported as a miss.
	Get(path string) (*domain.CachedModule, bool)

	// Put stores the entry in memory and writes it through to disk.
	// Disk failures are logged and do not affect the in-memory entry.
	Put(path string, entry *domain.CachedModule)

	// Graph exposes the owned dependency graph.
	Graph() *domain.DependencyGraph

	// Affected returns path and every module that transitively imports it.
	Affected(path string) []string

	// SaveGraph persists the dependency graph.
	SaveGraph() error

	// Clear drops every entry and empties the cache directory.
	Clear() error

	// Stats reports entry counts.
	Stats() (domain.CacheStats, error)

	// Enabled reports whether the cache serves and stores entries.
	Enabled() bool
}
