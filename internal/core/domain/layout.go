package domain

import "path/filepath"

const (
	// AppDirName is the name of the per-user application directory.
	AppDirName = "weld"

	// BundlerDirName is the name of the bundler directory below the application directory.
	BundlerDirName = "bundler"

	// CacheDirName is the name of the module cache directory.
	CacheDirName = "cache"

	// GraphFileName is the name of the persisted dependency graph inside the cache directory.
	GraphFileName = "graph.json"

	// CacheEntryExt is the extension of a cached module entry.
	CacheEntryExt = ".json"

	// CacheKeyLength is the number of hex characters of the path digest used as a cache file name.
	CacheKeyLength = 16

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "weld.yaml"

	// CacheEnvVar is the environment variable that toggles the module cache.
	CacheEnvVar = "WELD_CACHE"

	// ModuleMarkerPrefix precedes each module's path in the assembled bundle.
	ModuleMarkerPrefix = "// Module: "

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the module cache directory below the given user config directory.
// It joins weld, bundler, and cache.
func DefaultCachePath(userConfigDir string) string {
	return filepath.Join(userConfigDir, AppDirName, BundlerDirName, CacheDirName)
}
