// Package domain contains the module model, the dependency graph and the
// bundle ordering rules.
package domain

import (
	"encoding/json"
	"slices"
)

type pathSet map[InternedString]struct{}

// DependencyGraph is a bidirectional index of import edges between modules.
// Every forward edge A -> B has the mirrored reverse edge B -> A.
// It is not safe for concurrent mutation.
type DependencyGraph struct {
	forward map[InternedString]pathSet
	reverse map[InternedString]pathSet
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		forward: make(map[InternedString]pathSet),
		reverse: make(map[InternedString]pathSet),
	}
}

// AddEdge records that from imports to, updating both directions.
func (g *DependencyGraph) AddEdge(from, to string) {
	f := NewInternedString(from)
	t := NewInternedString(to)
	link(g.forward, f, t)
	link(g.reverse, t, f)
}

// SetDependencies replaces every forward edge of from with edges to deps.
// The module is kept as a node even when deps is empty.
func (g *DependencyGraph) SetDependencies(from string, deps []string) {
	f := NewInternedString(from)
	for old := range g.forward[f] {
		unlink(g.reverse, old, f)
	}
	g.forward[f] = make(pathSet, len(deps))
	for _, dep := range deps {
		g.AddEdge(from, dep)
	}
}

// Dependencies returns the sorted paths that path imports.
func (g *DependencyGraph) Dependencies(path string) []string {
	return sortedStrings(g.forward[NewInternedString(path)])
}

// Dependents returns the sorted paths that import path.
func (g *DependencyGraph) Dependents(path string) []string {
	return sortedStrings(g.reverse[NewInternedString(path)])
}

// Affected returns every module that must be rebuilt when changed changes:
// changed itself followed by its transitive importers in breadth-first order.
func (g *DependencyGraph) Affected(changed string) []string {
	start := NewInternedString(changed)
	visited := pathSet{start: {}}
	queue := []InternedString{start}
	out := make([]string, 0, 1)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		out = append(out, current.String())

		for _, dep := range sortedStrings(g.reverse[current]) {
			key := NewInternedString(dep)
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, key)
		}
	}

	return out
}

// Nodes returns every module mentioned by an edge or registered through SetDependencies, sorted.
func (g *DependencyGraph) Nodes() []string {
	all := make(pathSet, len(g.forward)+len(g.reverse))
	for k := range g.forward {
		all[k] = struct{}{}
	}
	for k := range g.reverse {
		all[k] = struct{}{}
	}
	return sortedStrings(all)
}

// Len returns the number of nodes.
func (g *DependencyGraph) Len() int {
	return len(g.Nodes())
}

// Clear drops every edge.
func (g *DependencyGraph) Clear() {
	clear(g.forward)
	clear(g.reverse)
}

type graphSnapshot struct {
	Forward map[string][]string `json:"forward"`
	Reverse map[string][]string `json:"reverse"`
}

// MarshalJSON encodes both edge maps with sorted adjacency lists.
func (g *DependencyGraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphSnapshot{
		Forward: snapshot(g.forward),
		Reverse: snapshot(g.reverse),
	})
}

// UnmarshalJSON replaces the graph with the decoded snapshot.
// Edges found in either map are mirrored into the other.
func (g *DependencyGraph) UnmarshalJSON(data []byte) error {
	var snap graphSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	*g = *NewDependencyGraph()
	for from, deps := range snap.Forward {
		if _, ok := g.forward[NewInternedString(from)]; !ok {
			g.forward[NewInternedString(from)] = make(pathSet)
		}
		for _, to := range deps {
			g.AddEdge(from, to)
		}
	}
	for to, importers := range snap.Reverse {
		for _, from := range importers {
			g.AddEdge(from, to)
		}
	}
	return nil
}

func snapshot(m map[InternedString]pathSet) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		out[k.String()] = sortedStrings(set)
	}
	return out
}

func link(m map[InternedString]pathSet, from, to InternedString) {
	set, ok := m[from]
	if !ok {
		set = make(pathSet)
		m[from] = set
	}
	set[to] = struct{}{}
}

func unlink(m map[InternedString]pathSet, from, to InternedString) {
	set, ok := m[from]
	if !ok {
		return
	}
	delete(set, to)
	if len(set) == 0 {
		delete(m, from)
	}
}

// Edges returns every forward edge as (from, to) pairs, sorted by from then to.
func (g *DependencyGraph) Edges() [][2]string {
	var edges [][2]string
	froms := make([]string, 0, len(g.forward))
	for k := range g.forward {
		froms = append(froms, k.String())
	}
	slices.Sort(froms)
	for _, from := range froms {
		for _, to := range g.Dependencies(from) {
			edges = append(edges, [2]string{from, to})
		}
	}
	return edges
}
