// Package bundler orders discovered modules and concatenates their emitted code.
package bundler

import (
	"context"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// Discoverer finds the module set reachable from an entry.
type Discoverer interface {
	Discover(ctx context.Context, root, entry string) (map[string]*domain.ParsedModule, error)
}

// Result is the outcome of one bundle run.
type Result struct {
	// Code is the concatenated output.
	Code string
	// Order lists the emitted modules in output order.
	Order []string
	// Modules holds every discovered module keyed by canonical path.
	Modules map[string]*domain.ParsedModule
}

// Bundler runs discovery, ordering and emission.
type Bundler struct {
	root       string
	discoverer Discoverer
	compiler   ports.Compiler
	tracer     ports.Tracer
}

// New creates a Bundler resolving entries relative to root.
func New(root string, discoverer Discoverer, compiler ports.Compiler, tracer ports.Tracer) *Bundler {
	return &Bundler{
		root:       root,
		discoverer: discoverer,
		compiler:   compiler,
		tracer:     tracer,
	}
}

// Bundle returns the concatenated output for entry.
func (b *Bundler) Bundle(ctx context.Context, entry string) (string, error) {
	res, err := b.Build(ctx, entry)
	if err != nil {
		return "", err
	}
	return res.Code, nil
}

// Build runs a full bundle and returns the output with the module set behind it.
// It returns either a complete result or an error, never partial output.
func (b *Bundler) Build(ctx context.Context, entry string) (*Result, error) {
	ctx, span := b.tracer.Start(ctx, ports.SpanBundle, ports.WithAttribute(ports.AttrEntry, entry))
	defer span.End()

	res, err := b.build(ctx, entry)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute(ports.AttrModuleCount, len(res.Order))
	return res, nil
}

func (b *Bundler) build(ctx context.Context, entry string) (*Result, error) {
	discoverCtx, span := b.tracer.Start(ctx, ports.SpanDiscover)
	modules, err := b.discoverer.Discover(discoverCtx, b.root, entry)
	span.End()
	if err != nil {
		return nil, err
	}

	orderCtx, span := b.tracer.Start(ctx, ports.SpanOrder)
	order, err := domain.Order(modules)
	if err == nil {
		b.tracer.EmitModules(orderCtx, order)
	}
	span.End()
	if err != nil {
		return nil, err
	}

	_, span = b.tracer.Start(ctx, ports.SpanEmit)
	code, err := Assemble(b.compiler, order, modules)
	span.End()
	if err != nil {
		return nil, err
	}

	return &Result{Code: code, Order: order, Modules: modules}, nil
}

// Assemble emits each module in order, preceded by a "// Module: <path>" marker
// and followed by a blank line.
func Assemble(compiler ports.Compiler, order []string, modules map[string]*domain.ParsedModule) (string, error) {
	var out strings.Builder
	for _, path := range order {
		code, err := compiler.Emit(modules[path].Tree)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "module", path)
		}

		out.WriteString(domain.ModuleMarkerPrefix)
		out.WriteString(path)
		out.WriteString("\n")
		out.WriteString(code)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}
