package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/config"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, env map[string]string, opts ...config.Option) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	base := []config.Option{
		config.WithGetenv(func(k string) string { return env[k] }),
		config.WithUserConfigDir(func() (string, error) { return "/home/me/.config", nil }),
	}
	return config.NewLoader(logger, append(base, opts...)...), logger
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm))
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	loader, _ := newLoader(t, nil)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Empty(t, cfg.Entry)
	assert.Empty(t, cfg.Out)
	assert.Zero(t, cfg.Workers)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, domain.DefaultCachePath("/home/me/.config"), cfg.Cache.Dir)
	assert.Equal(t, domain.DefaultExternals(), cfg.Externals)
	assert.Equal(t, domain.DefaultJSXImportSource, cfg.JSXImportSource)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: "1"
root: web
entry: src/main.tsx
out: dist/bundle.js
workers: 4
cache:
  enabled: true
  dir: .weld-cache
externals:
  - lodash
  - react
jsx:
  importSource: preact
`)

	loader, _ := newLoader(t, nil)
	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "web"), cfg.Root)
	assert.Equal(t, "src/main.tsx", cfg.Entry)
	assert.Equal(t, filepath.Join(dir, "dist", "bundle.js"), cfg.Out)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, filepath.Join(dir, ".weld-cache"), cfg.Cache.Dir)
	assert.Equal(t, append(domain.DefaultExternals(), "lodash"), cfg.Externals)
	assert.Equal(t, "preact", cfg.JSXImportSource)
}

func TestLoad_WalksUpToConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "entry: main.ts\n")

	nested := filepath.Join(dir, "packages", "app")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	loader, _ := newLoader(t, nil)
	cfg, err := loader.Load(nested)
	require.NoError(t, err)

	assert.Equal(t, "main.ts", cfg.Entry)
	// Paths are relative to the file, not the working directory.
	assert.Equal(t, dir, cfg.Root)
}

func TestLoad_AbsolutePathsAreKept(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	writeConfig(t, dir, "cache:\n  dir: "+cacheDir+"\n")

	loader, _ := newLoader(t, nil)
	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cacheDir, cfg.Cache.Dir)
}

func TestLoad_CacheDisabledInFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cache:\n  enabled: false\n")

	loader, _ := newLoader(t, nil)
	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_CacheEnvironmentToggle(t *testing.T) {
	tests := []struct {
		value   string
		enabled bool
	}{
		{value: "", enabled: true},
		{value: "1", enabled: true},
		{value: "true", enabled: true},
		{value: "0", enabled: false},
		{value: "false", enabled: false},
		{value: " 0 ", enabled: false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			loader, _ := newLoader(t, map[string]string{domain.CacheEnvVar: tt.value})
			cfg, err := loader.Load(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.enabled, cfg.Cache.Enabled)
		})
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cache:\n  enabled: true\n")

	loader, _ := newLoader(t, map[string]string{domain.CacheEnvVar: "0"})
	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "workers: -2\n")

	loader, _ := newLoader(t, nil)
	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidWorkers.Error())
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "entry: [unterminated\n")

	loader, _ := newLoader(t, nil)
	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoad_VersionMismatchWarns(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: \"2\"\nentry: main.ts\n")

	loader, logger := newLoader(t, nil)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, `"2"`)
	})

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "main.ts", cfg.Entry)
}

func TestLoad_UserConfigDirUnavailable(t *testing.T) {
	failing := config.WithUserConfigDir(func() (string, error) {
		return "", errors.New("$HOME is not defined")
	})

	t.Run("cache enabled", func(t *testing.T) {
		loader, _ := newLoader(t, nil, failing)
		_, err := loader.Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrCacheDirUnavailable.Error())
	})

	t.Run("cache disabled", func(t *testing.T) {
		loader, _ := newLoader(t, map[string]string{domain.CacheEnvVar: "0"}, failing)
		cfg, err := loader.Load(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.Cache.Dir)
	})

	t.Run("configured dir", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "cache:\n  dir: cache\n")

		loader, _ := newLoader(t, nil, failing)
		cfg, err := loader.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "cache"), cfg.Cache.Dir)
	})
}
