package discovery_test

import (
	"context"
	"errors"
	"path"
	"strings"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports/mocks"
	"go.trai.ch/weld/internal/engine/discovery"
	"go.uber.org/mock/gomock"
)

// project maps absolute module paths to the specifiers they import.
// A specifier "./x" or "./x.ts" resolves to /p/x.ts when that module exists.
type project map[string][]string

type testEnv struct {
	resolver  *mocks.MockModuleResolver
	processor *mocks.MockProcessor
	logger    *mocks.MockLogger
}

func setupEngineTest(t *testing.T, p project) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		resolver:  mocks.NewMockModuleResolver(ctrl),
		processor: mocks.NewMockProcessor(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	env.resolver.EXPECT().ResolveEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(root, spec string) (string, error) {
			target := path.Join(root, spec)
			if _, ok := p[target]; !ok {
				return "", domain.ErrEntryNotFound
			}
			return target, nil
		}).AnyTimes()

	env.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_, spec string) (string, bool) {
			target := "/p/" + strings.TrimSuffix(strings.TrimPrefix(spec, "./"), ".ts") + ".ts"
			_, ok := p[target]
			return target, ok
		}).AnyTimes()

	return env
}

func (env *testEnv) expectProcessOnce(p project) {
	for modulePath, deps := range p {
		env.processor.EXPECT().Process(gomock.Any(), modulePath).Return(&domain.ParsedModule{
			Path:         modulePath,
			Dependencies: deps,
		}, nil).Times(1)
	}
}

func TestDiscover_DiamondIsProcessedOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := project{
			"/p/main.ts": {"./a", "./b"},
			"/p/a.ts":    {"./util"},
			"/p/b.ts":    {"./util.ts", "./a"},
			"/p/util.ts": nil,
		}
		env := setupEngineTest(t, p)
		env.expectProcessOnce(p)

		engine := discovery.New(env.resolver, env.processor, env.logger, 4)
		modules, err := engine.Discover(context.Background(), "/p", "main.ts")
		require.NoError(t, err)

		require.Len(t, modules, 4)
		assert.Equal(t, []string{"/p/a.ts", "/p/b.ts"}, modules["/p/main.ts"].Resolved)
		assert.Equal(t, []string{"/p/util.ts", "/p/a.ts"}, modules["/p/b.ts"].Resolved)
		assert.Empty(t, modules["/p/util.ts"].Resolved)
	})
}

func TestDiscover_DuplicateSpecifiersResolveOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := project{
			"/p/main.ts": {"./util", "./util.ts", "./util"},
			"/p/util.ts": nil,
		}
		env := setupEngineTest(t, p)
		env.expectProcessOnce(p)

		modules, err := discovery.New(env.resolver, env.processor, env.logger, 2).
			Discover(context.Background(), "/p", "main.ts")
		require.NoError(t, err)
		assert.Equal(t, []string{"/p/util.ts"}, modules["/p/main.ts"].Resolved)
	})
}

func TestDiscover_UnresolvableSpecifierIsDropped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := project{
			"/p/main.ts": {"react", "./missing", "./ok"},
			"/p/ok.ts":   nil,
		}
		env := setupEngineTest(t, p)
		env.expectProcessOnce(p)

		modules, err := discovery.New(env.resolver, env.processor, env.logger, 2).
			Discover(context.Background(), "/p", "main.ts")
		require.NoError(t, err)
		assert.Len(t, modules, 2)
		assert.Equal(t, []string{"/p/ok.ts"}, modules["/p/main.ts"].Resolved)
	})
}

func TestDiscover_FailedModuleIsLoggedAndOmitted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := project{
			"/p/main.ts": {"./x", "./y"},
			"/p/x.ts":    nil,
			"/p/y.ts":    {"./z"},
			"/p/z.ts":    nil,
		}
		env := setupEngineTest(t, p)
		env.expectProcessOnce(project{"/p/main.ts": p["/p/main.ts"], "/p/x.ts": nil})
		env.processor.EXPECT().Process(gomock.Any(), "/p/y.ts").
			Return(nil, domain.ErrParseFailed).Times(1)
		env.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorContains(t, err, domain.ErrParseFailed.Error())
		}).Times(1)

		modules, err := discovery.New(env.resolver, env.processor, env.logger, 3).
			Discover(context.Background(), "/p", "main.ts")
		require.NoError(t, err)

		assert.Len(t, modules, 2)
		assert.Contains(t, modules, "/p/x.ts")
		assert.NotContains(t, modules, "/p/y.ts")
		assert.NotContains(t, modules, "/p/z.ts")
	})
}

func TestDiscover_EntryNotFound(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := setupEngineTest(t, project{})

		modules, err := discovery.New(env.resolver, env.processor, env.logger, 2).
			Discover(context.Background(), "/p", "missing.ts")
		require.Error(t, err)
		assert.Nil(t, modules)
		assert.True(t, errors.Is(err, domain.ErrEntryNotFound))
	})
}

func TestDiscover_NoEntry(t *testing.T) {
	env := setupEngineTest(t, project{})

	_, err := discovery.New(env.resolver, env.processor, env.logger, 1).
		Discover(context.Background(), "/p", "")
	assert.True(t, errors.Is(err, domain.ErrNoEntrySpecified))
}

func TestDiscover_EntryFailureYieldsEmptySet(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := setupEngineTest(t, project{"/p/main.ts": nil})
		env.processor.EXPECT().Process(gomock.Any(), "/p/main.ts").Return(nil, domain.ErrParseFailed)
		env.logger.EXPECT().Error(gomock.Any())

		modules, err := discovery.New(env.resolver, env.processor, env.logger, 1).
			Discover(context.Background(), "/p", "main.ts")
		require.NoError(t, err)
		assert.Empty(t, modules)
	})
}

func TestDiscover_CancelledContextAborts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := project{"/p/main.ts": nil}
		env := setupEngineTest(t, p)
		env.logger.EXPECT().Error(gomock.Any()).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		env.processor.EXPECT().Process(gomock.Any(), "/p/main.ts").DoAndReturn(
			func(ctx context.Context, _ string) (*domain.ParsedModule, error) {
				cancel()
				<-ctx.Done()
				return nil, ctx.Err()
			}).MaxTimes(1)

		modules, err := discovery.New(env.resolver, env.processor, env.logger, 2).
			Discover(ctx, "/p", "main.ts")
		require.Error(t, err)
		assert.Nil(t, modules)
		assert.ErrorContains(t, err, domain.ErrDiscoveryAborted.Error())
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestDiscover_Deterministic(t *testing.T) {
	p := project{
		"/p/main.ts":   {"./c", "./b", "./a"},
		"/p/a.ts":      {"./shared"},
		"/p/b.ts":      {"./shared", "./c"},
		"/p/c.ts":      {"./a"},
		"/p/shared.ts": nil,
	}

	var first map[string][]string
	for range 10 {
		synctest.Test(t, func(t *testing.T) {
			env := setupEngineTest(t, p)
			env.expectProcessOnce(p)

			modules, err := discovery.New(env.resolver, env.processor, env.logger, 4).
				Discover(context.Background(), "/p", "main.ts")
			require.NoError(t, err)

			got := make(map[string][]string, len(modules))
			for k, m := range modules {
				got[k] = m.Resolved
			}
			if first == nil {
				first = got
				return
			}
			assert.Equal(t, first, got)
		})
	}
}

func TestNew_DefaultsWorkersToCPUCount(t *testing.T) {
	env := setupEngineTest(t, project{})
	assert.Positive(t, discovery.New(env.resolver, env.processor, env.logger, 0).Workers())
}
