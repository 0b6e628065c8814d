// Package config loads the bundler configuration from weld.yaml and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the weld.yaml schema version this loader understands.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger        ports.Logger
	getenv        func(string) string
	userConfigDir func() (string, error)
}

// Option customizes a Loader.
type Option func(*Loader)

// WithGetenv replaces the environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(l *Loader) { l.getenv = getenv }
}

// WithUserConfigDir replaces the lookup of the per-user configuration directory.
func WithUserConfigDir(fn func() (string, error)) Option {
	return func(l *Loader) { l.userConfigDir = fn }
}

// NewLoader creates a Loader reading the process environment.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		Logger:        logger,
		getenv:        os.Getenv,
		userConfigDir: os.UserConfigDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the configuration for cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := &domain.Config{
		Root:            cwd,
		Cache:           domain.CacheConfig{Enabled: true},
		Externals:       domain.DefaultExternals(),
		JSXImportSource: domain.DefaultJSXImportSource,
	}

	configPath, found := findConfiguration(cwd)
	if found {
		var file Weldfile
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "file", configPath)
		}
		if err := l.apply(cfg, configPath, &file); err != nil {
			return nil, err
		}
	}

	if !cacheEnabledByEnv(l.getenv(domain.CacheEnvVar)) {
		cfg.Cache.Enabled = false
	}

	if cfg.Cache.Dir == "" {
		base, err := l.userConfigDir()
		if err != nil {
			if cfg.Cache.Enabled {
				return nil, zerr.Wrap(err, domain.ErrCacheDirUnavailable.Error())
			}
		} else {
			cfg.Cache.Dir = domain.DefaultCachePath(base)
		}
	}

	return cfg, nil
}

func (l *Loader) apply(cfg *domain.Config, configPath string, file *Weldfile) error {
	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, file.Version, SupportedVersion))
	}

	if file.Workers < 0 {
		return zerr.With(zerr.With(domain.ErrInvalidWorkers, "workers", file.Workers), "file", configPath)
	}

	dir := filepath.Dir(configPath)
	cfg.Root = resolvePath(dir, file.Root)
	cfg.Entry = file.Entry
	cfg.Workers = file.Workers

	if file.Out != "" {
		cfg.Out = resolvePath(dir, file.Out)
	}
	if file.Cache.Enabled != nil {
		cfg.Cache.Enabled = *file.Cache.Enabled
	}
	if file.Cache.Dir != "" {
		cfg.Cache.Dir = resolvePath(dir, file.Cache.Dir)
	}
	for _, ext := range file.Externals {
		if !slices.Contains(cfg.Externals, ext) {
			cfg.Externals = append(cfg.Externals, ext)
		}
	}
	if file.JSX.ImportSource != "" {
		cfg.JSXImportSource = file.JSX.ImportSource
	}

	return nil
}

// findConfiguration returns the nearest weld.yaml in cwd or its parents.
func findConfiguration(cwd string) (string, bool) {
	current := cwd
	for {
		candidate := filepath.Join(current, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// cacheEnabledByEnv reports whether the WELD_CACHE value leaves the cache on.
func cacheEnabledByEnv(value string) bool {
	switch strings.TrimSpace(value) {
	case "0", "false":
		return false
	default:
		return true
	}
}

func resolvePath(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
