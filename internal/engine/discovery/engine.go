// Package discovery finds the transitive module set of an entry point with a
// pool of workers and a single coordinator.
package discovery

import (
	"context"
	"runtime"
	"slices"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine discovers modules. Workers run the processor; the coordinator alone
// resolves specifiers and decides what gets processed.
type Engine struct {
	resolver  ports.ModuleResolver
	processor ports.Processor
	logger    ports.Logger
	workers   int
}

// New creates an Engine. A workers value below one means one worker per CPU.
func New(resolver ports.ModuleResolver, processor ports.Processor, logger ports.Logger, workers int) *Engine {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		resolver:  resolver,
		processor: processor,
		logger:    logger,
		workers:   workers,
	}
}

// Workers returns the size of the worker pool.
func (e *Engine) Workers() int {
	return e.workers
}

type result struct {
	path   string
	module *domain.ParsedModule
	err    error
}

// Discover resolves entry against root and returns every module reachable
// from it, keyed by canonical path. Modules that fail to process are logged
// and left out.
func (e *Engine) Discover(ctx context.Context, root, entry string) (map[string]*domain.ParsedModule, error) {
	if entry == "" {
		return nil, domain.ErrNoEntrySpecified
	}

	entryPath, err := e.resolver.ResolveEntry(root, entry)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan string)
	results := make(chan result)

	for range e.workers {
		g.Go(func() error {
			return e.runWorker(gctx, work, results)
		})
	}

	state := &runState{
		e:       e,
		ctx:     gctx,
		work:    work,
		results: results,
		seen:    map[string]struct{}{entryPath: {}},
		queue:   []string{entryPath},
		pending: 1,
		modules: make(map[string]*domain.ParsedModule),
	}

	loopErr := state.runLoop()
	close(work)
	waitErr := g.Wait()

	if loopErr != nil {
		return nil, loopErr
	}
	if waitErr != nil {
		return nil, zerr.Wrap(waitErr, domain.ErrDiscoveryAborted.Error())
	}
	return state.modules, nil
}

func (e *Engine) runWorker(ctx context.Context, work <-chan string, results chan<- result) error {
	for path := range work {
		module, err := e.processor.Process(ctx, path)
		select {
		case results <- result{path: path, module: module, err: err}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// runState is owned by the coordinator goroutine.
type runState struct {
	e       *Engine
	ctx     context.Context
	work    chan<- string
	results <-chan result

	seen    map[string]struct{}
	queue   []string
	pending int
	modules map[string]*domain.ParsedModule
}

// runLoop hands out queued paths and folds in results until every enqueued
// path has produced a result.
func (s *runState) runLoop() error {
	for s.pending > 0 {
		if err := s.ctx.Err(); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrDiscoveryAborted.Error()), "pending", s.pending)
		}

		var (
			send chan<- string
			next string
		)
		if len(s.queue) > 0 {
			send = s.work
			next = s.queue[0]
		}

		select {
		case send <- next:
			s.queue = s.queue[1:]
		case res := <-s.results:
			s.pending--
			s.handleResult(res)
		case <-s.ctx.Done():
		}
	}

	if err := s.ctx.Err(); err != nil {
		return zerr.Wrap(err, domain.ErrDiscoveryAborted.Error())
	}
	return nil
}

func (s *runState) handleResult(res result) {
	if res.err != nil {
		s.e.logger.Error(zerr.With(res.err, "module", res.path))
		return
	}

	module := res.module
	if module.Path == "" {
		module.Path = res.path
	}

	resolved := make([]string, 0, len(module.Dependencies))
	for _, spec := range module.Dependencies {
		target, ok := s.e.resolver.Resolve(res.path, spec)
		if !ok {
			continue
		}
		if !slices.Contains(resolved, target) {
			resolved = append(resolved, target)
		}
		s.enqueue(target)
	}

	module.Resolved = resolved
	s.modules[res.path] = module
}

func (s *runState) enqueue(path string) {
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.queue = append(s.queue, path)
	s.pending++
}
