// Package cas implements the content-addressed module cache.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleCache = (*Store)(nil)

// Options configures a Store.
type Options struct {
	// Dir is the cache root directory.
	Dir string
	// Enabled turns the cache on. A disabled store never reads or writes disk.
	Enabled bool
}

// Store implements ports.ModuleCache with an in-memory tier in front of
// one JSON file per module.
type Store struct {
	dir     string
	enabled bool
	logger  ports.Logger

	mu     sync.RWMutex
	memory map[string]*domain.CachedModule
	graph  *domain.DependencyGraph
}

// NewStore creates a Store rooted at opts.Dir and loads the persisted dependency graph.
func NewStore(opts Options, logger ports.Logger) (*Store, error) {
	s := &Store{
		dir:     opts.Dir,
		enabled: opts.Enabled,
		logger:  logger,
		memory:  make(map[string]*domain.CachedModule),
		graph:   domain.NewDependencyGraph(),
	}

	if !s.enabled {
		return s, nil
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.dir)
	}

	if err := s.loadGraph(); err != nil {
		s.logger.Error(err)
	}

	return s, nil
}

// Enabled reports whether the cache serves and stores entries.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Dir returns the cache root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns a copy of the fresh entry for path.
// The lock only guards the memory map; freshness checks and disk reads run without it.
func (s *Store) Get(path string) (*domain.CachedModule, bool) {
	if !s.enabled {
		return nil, false
	}

	s.mu.RLock()
	cached, ok := s.memory[path]
	s.mu.RUnlock()

	if ok {
		if isFresh(path, cached) {
			return cached.Clone(), true
		}
		s.mu.Lock()
		if s.memory[path] == cached {
			delete(s.memory, path)
		}
		s.mu.Unlock()
	}

	filename := s.entryPath(path)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false
	}

	var loaded domain.CachedModule
	if err := json.Unmarshal(data, &loaded); err != nil || !isFresh(path, &loaded) {
		s.removeUnlessReplaced(path, filename)
		return nil, false
	}

	s.mu.Lock()
	if _, replaced := s.memory[path]; !replaced {
		s.memory[path] = &loaded
	}
	s.mu.Unlock()

	return loaded.Clone(), true
}

// removeUnlessReplaced deletes an unusable entry file unless a Put for the
// same path has landed in the meantime.
func (s *Store) removeUnlessReplaced(path, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, replaced := s.memory[path]; replaced {
		return
	}
	_ = os.Remove(filename)
}

// Put stores entry in memory and writes it through to disk.
func (s *Store) Put(path string, entry *domain.CachedModule) {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	s.memory[path] = entry.Clone()
	s.mu.Unlock()

	if err := s.writeEntry(path, entry); err != nil {
		s.logger.Error(err)
	}
}

func (s *Store) writeEntry(path string, entry *domain.CachedModule) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error()), "module", path)
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.dir)
	}

	filename := s.entryPath(path)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "module", path)
	}

	return nil
}

// Graph exposes the owned dependency graph.
func (s *Store) Graph() *domain.DependencyGraph {
	return s.graph
}

// Affected returns path and every module that transitively imports it.
func (s *Store) Affected(path string) []string {
	return s.graph.Affected(path)
}

// SaveGraph persists the dependency graph as graph.json.
func (s *Store) SaveGraph() error {
	if !s.enabled {
		return nil
	}

	data, err := json.MarshalIndent(s.graph, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrGraphMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.dir)
	}

	//nolint:gosec // Path is constructed from trusted directory
	if err := os.WriteFile(s.graphPath(), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrGraphWriteFailed.Error()), "file", s.graphPath())
	}

	return nil
}

// loadGraph replaces the in-memory graph with graph.json.
// A missing file leaves the graph empty.
func (s *Store) loadGraph() error {
	data, err := os.ReadFile(s.graphPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrGraphReadFailed.Error()), "file", s.graphPath())
	}

	graph := domain.NewDependencyGraph()
	if err := json.Unmarshal(data, graph); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrGraphUnmarshalFailed.Error()), "file", s.graphPath())
	}

	s.graph = graph
	return nil
}

// Clear drops every entry and the graph, then recreates an empty cache directory.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.memory)
	s.graph.Clear()

	if _, err := os.Stat(s.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrCacheClearFailed.Error()), "dir", s.dir)
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheClearFailed.Error()), "dir", s.dir)
	}
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.dir)
	}

	return nil
}

// Stats reports the number of entries in memory and on disk.
func (s *Store) Stats() (domain.CacheStats, error) {
	s.mu.RLock()
	stats := domain.CacheStats{
		MemoryCount: len(s.memory),
		Enabled:     s.enabled,
	}
	s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, nil
		}
		return stats, zerr.With(zerr.Wrap(err, domain.ErrCacheListFailed.Error()), "dir", s.dir)
	}

	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && name != domain.GraphFileName && strings.HasSuffix(name, domain.CacheEntryExt) {
			stats.DiskCount++
		}
	}

	return stats, nil
}

// entryPath names a module's cache file after the leading hex digits of the
// SHA-256 digest of its canonical path.
func (s *Store) entryPath(path string) string {
	hash := sha256.Sum256([]byte(path))
	key := hex.EncodeToString(hash[:])[:domain.CacheKeyLength]
	return filepath.Join(s.dir, key+domain.CacheEntryExt)
}

func (s *Store) graphPath() string {
	return filepath.Join(s.dir, domain.GraphFileName)
}

// isFresh reports whether the file at path still has the recorded modification time.
func isFresh(path string, cached *domain.CachedModule) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.ModTime().UnixNano() == cached.ModTime
}
