package app

import (
	"context"
	"os"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Processor = (*CachedProcessor)(nil)

// CachedProcessor serves fresh cache entries and compiles everything else.
type CachedProcessor struct {
	cache    ports.ModuleCache
	compiler ports.Compiler
	tracer   ports.Tracer
}

// NewCachedProcessor creates a CachedProcessor.
func NewCachedProcessor(cache ports.ModuleCache, compiler ports.Compiler, tracer ports.Tracer) *CachedProcessor {
	return &CachedProcessor{cache: cache, compiler: compiler, tracer: tracer}
}

// Process returns the parsed module at path.
func (p *CachedProcessor) Process(ctx context.Context, path string) (*domain.ParsedModule, error) {
	_, span := p.tracer.Start(ctx, ports.SpanProcess, ports.WithAttribute(ports.AttrModule, path))
	defer span.End()

	if cached, ok := p.cache.Get(path); ok {
		span.SetAttribute(ports.AttrCached, true)
		return &domain.ParsedModule{
			Path:         path,
			Source:       cached.Source,
			Tree:         p.compiler.Restore(path, cached.TransformedCode),
			Dependencies: cached.Dependencies,
			ModTime:      cached.ModTime,
			FromCache:    true,
		}, nil
	}
	span.SetAttribute(ports.AttrCached, false)

	module, err := p.compile(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return module, nil
}

func (p *CachedProcessor) compile(path string) (*domain.ParsedModule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceStatFailed.Error()), "module", path)
	}

	//nolint:gosec // path is a canonical module path produced by the resolver
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "module", path)
	}

	tree, deps, err := p.compiler.Compile(path, string(source), domain.DialectFromPath(path))
	if err != nil {
		return nil, err
	}

	return &domain.ParsedModule{
		Path:         path,
		Source:       string(source),
		Tree:         tree,
		Dependencies: deps,
		ModTime:      info.ModTime().UnixNano(),
	}, nil
}
