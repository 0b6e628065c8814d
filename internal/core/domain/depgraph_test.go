package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/core/domain"
)

func TestDependencyGraph_AddEdgeMirrors(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddEdge("/a.ts", "/b.ts")
	g.AddEdge("/a.ts", "/c.ts")
	g.AddEdge("/b.ts", "/c.ts")

	assert.Equal(t, []string{"/b.ts", "/c.ts"}, g.Dependencies("/a.ts"))
	assert.Equal(t, []string{"/a.ts", "/b.ts"}, g.Dependents("/c.ts"))
	assert.Equal(t, []string{"/a.ts"}, g.Dependents("/b.ts"))
	assert.Empty(t, g.Dependents("/a.ts"))
	assert.Equal(t, 3, g.Len())

	for _, e := range g.Edges() {
		assert.Contains(t, g.Dependents(e[1]), e[0], "edge %s -> %s has no reverse", e[0], e[1])
	}
}

func TestDependencyGraph_SetDependenciesReplacesEdges(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.SetDependencies("/a.ts", []string{"/b.ts", "/c.ts"})
	g.SetDependencies("/a.ts", []string{"/c.ts", "/d.ts"})

	assert.Equal(t, []string{"/c.ts", "/d.ts"}, g.Dependencies("/a.ts"))
	assert.Empty(t, g.Dependents("/b.ts"))
	assert.Equal(t, []string{"/a.ts"}, g.Dependents("/d.ts"))

	g.SetDependencies("/leaf.ts", nil)
	assert.Contains(t, g.Nodes(), "/leaf.ts")
}

func TestDependencyGraph_Affected(t *testing.T) {
	// main -> app -> util, main -> util, other -> util, unrelated -> lib
	g := domain.NewDependencyGraph()
	g.AddEdge("/main.ts", "/app.ts")
	g.AddEdge("/app.ts", "/util.ts")
	g.AddEdge("/main.ts", "/util.ts")
	g.AddEdge("/other.ts", "/util.ts")
	g.AddEdge("/unrelated.ts", "/lib.ts")

	t.Run("includes start and transitive importers", func(t *testing.T) {
		got := g.Affected("/util.ts")
		assert.Equal(t, "/util.ts", got[0])
		assert.ElementsMatch(t, []string{"/util.ts", "/app.ts", "/main.ts", "/other.ts"}, got)
	})

	t.Run("closed under importers", func(t *testing.T) {
		for _, start := range g.Nodes() {
			affected := g.Affected(start)
			assert.Contains(t, affected, start)
			for _, n := range affected {
				for _, importer := range g.Dependents(n) {
					assert.Contains(t, affected, importer)
				}
			}
		}
	})

	t.Run("unknown path yields only itself", func(t *testing.T) {
		assert.Equal(t, []string{"/missing.ts"}, g.Affected("/missing.ts"))
	})
}

func TestDependencyGraph_AffectedTerminatesOnCycle(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddEdge("/a.ts", "/b.ts")
	g.AddEdge("/b.ts", "/c.ts")
	g.AddEdge("/c.ts", "/a.ts")

	assert.ElementsMatch(t, []string{"/a.ts", "/b.ts", "/c.ts"}, g.Affected("/a.ts"))
}

func TestDependencyGraph_JSONShape(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddEdge("/a.ts", "/c.ts")
	g.AddEdge("/a.ts", "/b.ts")

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"forward": {"/a.ts": ["/b.ts", "/c.ts"]},
		"reverse": {"/b.ts": ["/a.ts"], "/c.ts": ["/a.ts"]}
	}`, string(data))
}

func TestDependencyGraph_UnmarshalRestoresMirror(t *testing.T) {
	// A snapshot with only reverse edges still yields a consistent graph.
	g := domain.NewDependencyGraph()
	err := json.Unmarshal([]byte(`{"forward":{},"reverse":{"/b.ts":["/a.ts"]}}`), g)
	require.NoError(t, err)

	assert.Equal(t, []string{"/b.ts"}, g.Dependencies("/a.ts"))
	assert.Equal(t, []string{"/a.ts"}, g.Dependents("/b.ts"))
}

func TestDependencyGraph_Clear(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddEdge("/a.ts", "/b.ts")
	g.Clear()

	assert.Zero(t, g.Len())
	assert.Empty(t, g.Edges())
}
