package dag

import "github.com/vk/scrapec/internal/nodeid"

// Graph is a set of vertices and their dependencies. It is not safe for
// concurrent mutation.
type Graph struct {
	// nodes stores all vertices, keyed by index.
	nodes map[nodeid.Index]*node
}

// node represents a single vertex in the graph.
type node struct {
	id nodeid.Index
	// deps holds every index this vertex depends on, vertex or not.
	deps map[nodeid.Index]struct{}
	// dependents holds the vertices that depend on this one.
	dependents map[nodeid.Index]struct{}
}
