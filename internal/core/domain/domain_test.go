package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/weld/internal/core/domain"
)

func TestDialectFromPath(t *testing.T) {
	tests := []struct {
		path       string
		want       domain.Dialect
		typeScript bool
		jsx        bool
	}{
		{path: "/src/a.js", want: domain.DialectScript},
		{path: "/src/a.mjs", want: domain.DialectScript},
		{path: "/src/a", want: domain.DialectScript},
		{path: "/src/a.ts", want: domain.DialectTypeScript, typeScript: true},
		{path: "/src/a.MTS", want: domain.DialectTypeScript, typeScript: true},
		{path: "/src/a.jsx", want: domain.DialectJSX, jsx: true},
		{path: "/src/a.tsx", want: domain.DialectTypeScriptJSX, typeScript: true, jsx: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := domain.DialectFromPath(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.typeScript, got.IsTypeScript())
			assert.Equal(t, tt.jsx, got.HasJSX())
		})
	}
}

func TestCachedModule_CloneIsDeep(t *testing.T) {
	original := &domain.CachedModule{
		Path:                 "/src/a.ts",
		Dependencies:         []string{"./b"},
		ResolvedDependencies: []string{"/src/b.ts"},
	}

	clone := original.Clone()
	clone.Dependencies[0] = "./changed"
	clone.ResolvedDependencies = append(clone.ResolvedDependencies, "/src/c.ts")

	assert.Equal(t, []string{"./b"}, original.Dependencies)
	assert.Equal(t, []string{"/src/b.ts"}, original.ResolvedDependencies)
}

func TestDefaultCachePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/home/me/.config", "weld", "bundler", "cache"),
		domain.DefaultCachePath("/home/me/.config"),
	)
}
