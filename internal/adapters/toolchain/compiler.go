// Package toolchain adapts esbuild to the parse, transform and emit port.
package toolchain

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

var runtimeDeps = []string{"/jsx-runtime", "/jsx-dev-runtime"}

const verbatimTS = `{"compilerOptions":{"verbatimModuleSyntax":true}}`

// Tree is the transformed form of one module.
type Tree struct {
	code    string
	dialect domain.Dialect
}

// Dialect reports the grammar the tree was produced from.
func (t *Tree) Dialect() domain.Dialect {
	return t.dialect
}

// Compiler runs esbuild's transform API on single modules and reads their
// import records through a build plugin.
type Compiler struct {
	jsxImportSource string
}

// NewCompiler creates a Compiler lowering JSX to the automatic runtime of importSource.
func NewCompiler(importSource string) *Compiler {
	if importSource == "" {
		importSource = domain.DefaultJSXImportSource
	}
	return &Compiler{jsxImportSource: importSource}
}

// Compile transforms source and returns the tree with the specifiers it imports,
// in statement order.
func (c *Compiler) Compile(path, source string, dialect domain.Dialect) (domain.SyntaxTree, []string, error) {
	result := api.Transform(source, c.options(path, dialect))
	if len(result.Errors) > 0 {
		return nil, nil, parseError(path, result.Errors[0])
	}

	specs, err := c.imports(path, source, dialect)
	if err != nil {
		return nil, nil, err
	}
	return &Tree{code: string(result.Code), dialect: dialect}, specs, nil
}

// Restore wraps cached output back into a tree without reparsing it.
func (c *Compiler) Restore(path, code string) domain.SyntaxTree {
	return &Tree{code: code, dialect: domain.DialectFromPath(path)}
}

// Emit returns the code of a tree produced by this compiler.
func (c *Compiler) Emit(tree domain.SyntaxTree) (string, error) {
	t, ok := tree.(*Tree)
	if !ok || t == nil {
		return "", zerr.Wrap(errors.New("unsupported syntax tree"), domain.ErrEmitFailed.Error())
	}
	return t.code, nil
}

func (c *Compiler) options(path string, dialect domain.Dialect) api.TransformOptions {
	opts := api.TransformOptions{
		Sourcefile: path,
		Format:     api.FormatESModule,
		Loader:     loader(dialect),
	}

	if dialect.IsTypeScript() {
		// Value imports survive type stripping even when only used as types.
		opts.TsconfigRaw = verbatimTS
	}
	if dialect.HasJSX() {
		opts.JSX = api.JSXAutomatic
		opts.JSXImportSource = c.jsxImportSource
	}

	return opts
}

// imports returns the import statement sources esbuild records for source,
// in statement order. Every import is marked external so nothing else is read.
// Dynamic imports and the JSX runtime import added by lowering are not
// dependencies written by the author.
func (c *Compiler) imports(path, source string, dialect domain.Dialect) ([]string, error) {
	var (
		mu    sync.Mutex
		specs []string
	)

	collector := api.Plugin{
		Name: "weld-imports",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if args.Kind == api.ResolveJSImportStatement && !c.isRuntimeImport(args.Path) {
					mu.Lock()
					specs = append(specs, args.Path)
					mu.Unlock()
				}
				return api.OnResolveResult{Path: args.Path, External: true}, nil
			})
		},
	}

	opts := api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   source,
			ResolveDir: filepath.Dir(path),
			Sourcefile: path,
			Loader:     loader(dialect),
		},
		Bundle:   true,
		Write:    false,
		Format:   api.FormatESModule,
		LogLevel: api.LogLevelSilent,
		Plugins:  []api.Plugin{collector},
	}
	if dialect.IsTypeScript() {
		opts.TsconfigRaw = verbatimTS
	}
	if dialect.HasJSX() {
		opts.JSX = api.JSXAutomatic
		opts.JSXImportSource = c.jsxImportSource
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return nil, parseError(path, result.Errors[0])
	}
	if specs == nil {
		specs = []string{}
	}
	return specs, nil
}

func (c *Compiler) isRuntimeImport(spec string) bool {
	rest, ok := strings.CutPrefix(spec, c.jsxImportSource)
	if !ok {
		return false
	}
	return slices.Contains(runtimeDeps, rest)
}

func loader(dialect domain.Dialect) api.Loader {
	switch dialect {
	case domain.DialectTypeScript:
		return api.LoaderTS
	case domain.DialectJSX:
		return api.LoaderJSX
	case domain.DialectTypeScriptJSX:
		return api.LoaderTSX
	case domain.DialectScript:
	}
	return api.LoaderJS
}

func parseError(path string, msg api.Message) error {
	err := zerr.With(zerr.Wrap(errors.New(msg.Text), domain.ErrParseFailed.Error()), "module", path)
	if msg.Location != nil {
		err = zerr.With(err, "line", msg.Location.Line)
		err = zerr.With(err, "column", msg.Location.Column)
	}
	return err
}
