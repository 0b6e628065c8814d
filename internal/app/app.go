// Package app implements the application layer for weld.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/weld/internal/adapters/cas"
	"go.trai.ch/weld/internal/adapters/detector"
	"go.trai.ch/weld/internal/adapters/dot"
	"go.trai.ch/weld/internal/adapters/fs"
	"go.trai.ch/weld/internal/adapters/telemetry"
	"go.trai.ch/weld/internal/adapters/toolchain"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/engine/bundler"
	"go.trai.ch/weld/internal/engine/discovery"
	"go.trai.ch/weld/internal/ui/style"
	"go.trai.ch/zerr"
)

// CacheFactory opens the module cache for a configuration.
type CacheFactory func(cfg *domain.Config, logger ports.Logger) (ports.ModuleCache, error)

// ResolverFactory creates the module resolver for a configuration.
type ResolverFactory func(cfg *domain.Config) ports.ModuleResolver

// CompilerFactory creates the toolchain for a configuration.
type CompilerFactory func(cfg *domain.Config) ports.Compiler

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	hasher       ports.Hasher
	tracer       ports.Tracer

	workDir     string
	newCache    CacheFactory
	newResolver ResolverFactory
	newCompiler CompilerFactory
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, hasher ports.Hasher, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		hasher:       hasher,
		tracer:       tracer,
		newCache:     openStore,
		newResolver: func(cfg *domain.Config) ports.ModuleResolver {
			return fs.NewResolver(cfg.Externals)
		},
		newCompiler: func(cfg *domain.Config) ports.Compiler {
			return toolchain.NewCompiler(cfg.JSXImportSource)
		},
	}
}

func openStore(cfg *domain.Config, logger ports.Logger) (ports.ModuleCache, error) {
	return cas.NewStore(cas.Options{Dir: cfg.Cache.Dir, Enabled: cfg.Cache.Enabled}, logger)
}

// WithWorkDir sets the directory configuration is loaded from.
// The process working directory is used by default.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithCacheFactory replaces how the module cache is opened.
func (a *App) WithCacheFactory(f CacheFactory) *App {
	a.newCache = f
	return a
}

// WithResolverFactory replaces how the module resolver is created.
func (a *App) WithResolverFactory(f ResolverFactory) *App {
	a.newResolver = f
	return a
}

// WithCompilerFactory replaces how the toolchain is created.
func (a *App) WithCompilerFactory(f CompilerFactory) *App {
	a.newCompiler = f
	return a
}

// logConfigurer is implemented by loggers whose output can be redirected.
type logConfigurer interface {
	Configure(w io.Writer, format detector.LogFormat)
}

// ConfigureLogging applies the --log-format flag to the logger.
func (a *App) ConfigureLogging(w io.Writer, format string) {
	lc, ok := a.logger.(logConfigurer)
	if !ok {
		return
	}
	lc.Configure(w, detector.Resolve(detector.Detect(), format))
}

// BundleOptions configures a bundle run. Zero values keep the configured settings.
type BundleOptions struct {
	Entry    string
	Out      string
	Root     string
	CacheDir string
	Workers  int
	NoCache  bool
	Trace    bool
	// Stdout receives the bundle when no output file is configured.
	Stdout io.Writer
}

// Bundle builds the entry module and writes the result.
func (a *App) Bundle(ctx context.Context, opts BundleOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := applyBundleOptions(cfg, opts); err != nil {
		return err
	}

	if opts.Trace {
		shutdown := telemetry.Install(telemetry.NewTimings(a.logger))
		defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()
	}

	cache, err := a.newCache(cfg, a.logger)
	if err != nil {
		return err
	}
	compiler := a.newCompiler(cfg)
	processor := NewCachedProcessor(cache, compiler, a.tracer)
	engine := discovery.New(a.newResolver(cfg), processor, a.logger, cfg.Workers)

	res, err := bundler.New(cfg.Root, engine, compiler, a.tracer).Build(ctx, cfg.Entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrBundleFailed.Error())
	}

	a.persist(cache, compiler, res.Modules)

	if cfg.Out == "" {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, res.Code); err != nil {
			return zerr.Wrap(err, domain.ErrOutputWriteFailed.Error())
		}
		return nil
	}

	written, err := a.writeOutput(cfg.Out, res.Code)
	if err != nil {
		return err
	}
	if !written {
		a.logger.Info(fmt.Sprintf("%s is up to date", cfg.Out))
		return nil
	}
	a.logger.Info(fmt.Sprintf("%s bundled %d modules into %s", style.Check, len(res.Order), cfg.Out))
	return nil
}

func applyBundleOptions(cfg *domain.Config, opts BundleOptions) error {
	if opts.Workers < 0 {
		return zerr.With(domain.ErrInvalidWorkers, "workers", opts.Workers)
	}
	if opts.Entry != "" {
		cfg.Entry = opts.Entry
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.Out != "" {
		cfg.Out = opts.Out
	}
	if opts.CacheDir != "" {
		cfg.Cache.Dir = opts.CacheDir
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.NoCache {
		cfg.Cache.Enabled = false
	}
	if cfg.Entry == "" {
		return domain.ErrNoEntrySpecified
	}
	return nil
}

// persist writes freshly compiled modules through the cache and records the
// import edges of every discovered module.
func (a *App) persist(cache ports.ModuleCache, compiler ports.Compiler, modules map[string]*domain.ParsedModule) {
	if !cache.Enabled() {
		return
	}

	graph := cache.Graph()
	for path, module := range modules {
		graph.SetDependencies(path, module.Resolved)
		if module.FromCache {
			continue
		}

		code, err := compiler.Emit(module.Tree)
		if err != nil {
			a.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "module", path))
			continue
		}
		cache.Put(path, &domain.CachedModule{
			Path:                 path,
			Source:               module.Source,
			ModTime:              module.ModTime,
			ContentHash:          a.hasher.ContentHash(module.Source),
			TransformedCode:      code,
			Dependencies:         module.Dependencies,
			ResolvedDependencies: module.Resolved,
		})
	}

	if err := cache.SaveGraph(); err != nil {
		a.logger.Error(err)
	}
}

// writeOutput writes code to out unless the file already holds the same bytes.
func (a *App) writeOutput(out, code string) (bool, error) {
	current, err := a.hasher.FileFingerprint(out)
	if err != nil {
		return false, err
	}
	if current != "" && current == a.hasher.Fingerprint([]byte(code)) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(out), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "file", out)
	}
	//nolint:gosec // bundles are meant to be readable
	if err := os.WriteFile(out, []byte(code), domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "file", out)
	}
	return true, nil
}

// CacheReport describes the module cache.
type CacheReport struct {
	Dir            string
	Stats          domain.CacheStats
	GraphModules   int
	GraphEdgeCount int
}

// CacheStats reports the state of the configured module cache.
func (a *App) CacheStats(_ context.Context) (*CacheReport, error) {
	cfg, cache, err := a.openCache()
	if err != nil {
		return nil, err
	}

	stats, err := cache.Stats()
	if err != nil {
		return nil, err
	}

	graph := cache.Graph()
	return &CacheReport{
		Dir:            cfg.Cache.Dir,
		Stats:          stats,
		GraphModules:   graph.Len(),
		GraphEdgeCount: len(graph.Edges()),
	}, nil
}

// ClearCache removes every cached module and the persisted graph.
func (a *App) ClearCache(_ context.Context) error {
	cfg, cache, err := a.openCache()
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removing module cache at %s...", cfg.Cache.Dir))
	if err := cache.Clear(); err != nil {
		return err
	}
	a.logger.Info("removed module cache")
	return nil
}

// Affected lists the module at path and every cached module that transitively imports it.
func (a *App) Affected(_ context.Context, path string) ([]string, error) {
	_, cache, err := a.openCache()
	if err != nil {
		return nil, err
	}

	target, err := fs.Canonicalize(a.absolute(path))
	if err != nil {
		target = a.absolute(path)
	}
	return cache.Affected(target), nil
}

// Graph writes the cached dependency graph to w in DOT format.
func (a *App) Graph(_ context.Context, w io.Writer) error {
	_, cache, err := a.openCache()
	if err != nil {
		return err
	}
	return dot.Write(w, cache.Graph())
}

func (a *App) openCache() (*domain.Config, ports.ModuleCache, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cache, err := a.newCache(cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cache, nil
}

func (a *App) loadConfig() (*domain.Config, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		dir = wd
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) absolute(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	base := a.workDir
	if base == "" {
		base, _ = os.Getwd()
	}
	return filepath.Join(base, path)
}
