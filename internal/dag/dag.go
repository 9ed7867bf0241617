package dag

import (
	"fmt"
	"sort"

	"github.com/vk/scrapec/internal/nodeid"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[nodeid.Index]*node),
	}
}

// Build creates a graph with one vertex per key of deps and an edge from
// every listed target to its key.
func Build(deps map[nodeid.Index][]nodeid.Index) *Graph {
	g := New()
	for id := range deps {
		g.AddNode(id)
	}
	for id, targets := range deps {
		for _, target := range targets {
			// id is a vertex, so AddEdge cannot fail.
			_ = g.AddEdge(target, id)
		}
	}
	return g
}

// AddNode adds a vertex. Adding an existing vertex does nothing.
func (g *Graph) AddNode(id nodeid.Index) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[nodeid.Index]struct{}),
		dependents: make(map[nodeid.Index]struct{}),
	}
}

// AddEdge records that toID depends on fromID. toID must be a vertex;
// fromID may be any index, including nodeid.Unresolved. A self edge is kept
// and makes its vertex impossible to order.
func (g *Graph) AddEdge(fromID, toID nodeid.Index) error {
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %d", toID)
	}

	toNode.deps[fromID] = struct{}{}
	if fromNode, ok := g.nodes[fromID]; ok {
		fromNode.dependents[toID] = struct{}{}
	}
	return nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all vertices in ascending order.
func (g *Graph) Nodes() []nodeid.Index {
	ids := make([]nodeid.Index, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sortIndices(ids)
	return ids
}

// Dependencies returns the sorted indices the given vertex depends on.
func (g *Graph) Dependencies(id nodeid.Index) ([]nodeid.Index, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %d", id)
	}
	return sortedKeys(n.deps), nil
}

// DetectCycles checks the graph for cycles among its vertices. It returns a
// non-nil error naming a vertex on the first cycle found. Vertices are
// visited in ascending order, so the result is deterministic.
func (g *Graph) DetectCycles() error {
	// permanent: fully visited and not part of a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[nodeid.Index]bool)
	temporary := make(map[nodeid.Index]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%d'", n.id)
		}

		temporary[n.id] = true
		for _, id := range sortedKeys(n.dependents) {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.Nodes() {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(set map[nodeid.Index]struct{}) []nodeid.Index {
	ids := make([]nodeid.Index, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sortIndices(ids)
	return ids
}

func sortIndices(ids []nodeid.Index) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
