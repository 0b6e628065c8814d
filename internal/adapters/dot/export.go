// Package dot renders the dependency graph in Graphviz DOT format.
package dot

import (
	"errors"
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/zerr"
)

// Build converts the dependency graph into a directed graph keyed by module path.
// Edges point from importer to imported module.
func Build(deps *domain.DependencyGraph) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, node := range deps.Nodes() {
		if err := g.AddVertex(node); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, zerr.With(err, "module", node)
		}
	}
	for _, edge := range deps.Edges() {
		if err := g.AddEdge(edge[0], edge[1]); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, zerr.With(zerr.With(err, "from", edge[0]), "to", edge[1])
		}
	}

	return g, nil
}

// Write renders deps as DOT to w.
func Write(w io.Writer, deps *domain.DependencyGraph) error {
	g, err := Build(deps)
	if err != nil {
		return zerr.Wrap(err, domain.ErrGraphExportFailed.Error())
	}

	if err := draw.DOT(g, w, draw.GraphAttribute("rankdir", "LR")); err != nil {
		return zerr.Wrap(err, domain.ErrGraphExportFailed.Error())
	}
	return nil
}
