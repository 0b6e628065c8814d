package domain

import "go.trai.ch/zerr"

var (
	// ErrEntryNotFound is returned when the entry specifier cannot be resolved to a file.
	ErrEntryNotFound = zerr.New("entry module not found")

	// ErrNoEntrySpecified is returned when neither the command line nor the config names an entry.
	ErrNoEntrySpecified = zerr.New("no entry module specified")

	// ErrDiscoveryAborted is returned when discovery stops before every queued module was processed.
	ErrDiscoveryAborted = zerr.New("module discovery aborted")

	// ErrSourceReadFailed is returned when a module's source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read module source")

	// ErrSourceStatFailed is returned when a module's source file cannot be stat'ed.
	ErrSourceStatFailed = zerr.New("failed to stat module source")

	// ErrParseFailed is returned when the toolchain rejects a module.
	ErrParseFailed = zerr.New("failed to parse module")

	// ErrCycleDetected is returned when the discovered modules cannot be fully ordered.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrEmitFailed is returned when a module's transformed tree cannot be serialized.
	ErrEmitFailed = zerr.New("failed to emit module")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create module cache directory")

	// ErrCacheMarshalFailed is returned when a cache entry cannot be encoded.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheClearFailed is returned when the cache directory cannot be removed.
	ErrCacheClearFailed = zerr.New("failed to clear module cache")

	// ErrCacheListFailed is returned when the cache directory cannot be listed.
	ErrCacheListFailed = zerr.New("failed to list module cache")

	// ErrGraphReadFailed is returned when the persisted dependency graph cannot be read.
	ErrGraphReadFailed = zerr.New("failed to read dependency graph")

	// ErrGraphUnmarshalFailed is returned when the persisted dependency graph cannot be decoded.
	ErrGraphUnmarshalFailed = zerr.New("failed to unmarshal dependency graph")

	// ErrGraphMarshalFailed is returned when the dependency graph cannot be encoded.
	ErrGraphMarshalFailed = zerr.New("failed to marshal dependency graph")

	// ErrGraphWriteFailed is returned when the dependency graph cannot be written.
	ErrGraphWriteFailed = zerr.New("failed to write dependency graph")

	// ErrGraphExportFailed is returned when the dependency graph cannot be rendered.
	ErrGraphExportFailed = zerr.New("failed to export dependency graph")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidWorkers is returned when the configured worker count is negative.
	ErrInvalidWorkers = zerr.New("workers must not be negative")

	// ErrCacheDirUnavailable is returned when no default cache directory can be determined.
	ErrCacheDirUnavailable = zerr.New("failed to determine cache directory")

	// ErrOutputWriteFailed is returned when the bundle cannot be written to its destination.
	ErrOutputWriteFailed = zerr.New("failed to write bundle output")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrBundleFailed is returned when a bundle run fails.
	ErrBundleFailed = zerr.New("bundle failed")
)
