package dag

import (
	"container/heap"
	"errors"

	"github.com/vk/scrapec/internal/nodeid"
)

// ErrIncomplete is returned when some vertices can never be ordered, either
// because they sit on a cycle or because they depend on an index that is
// neither a vertex nor part of the seed.
var ErrIncomplete = errors.New("graph cannot be fully ordered")

// Order returns the vertices in build order. Seed indices count as already
// visited and are not part of the result. At each step the smallest vertex
// whose dependencies are all visited is taken next.
//
// When some vertices cannot be ordered, Order returns the prefix it managed
// to build together with ErrIncomplete.
func (g *Graph) Order(seed []nodeid.Index) ([]nodeid.Index, error) {
	visited := make(map[nodeid.Index]bool, len(seed)+len(g.nodes))
	for _, id := range seed {
		visited[id] = true
	}

	// pending counts the unvisited dependencies of every unvisited vertex.
	pending := make(map[nodeid.Index]int, len(g.nodes))
	frontier := &indexHeap{}
	done := 0
	for id, n := range g.nodes {
		if visited[id] {
			done++
			continue
		}
		count := 0
		for dep := range n.deps {
			if !visited[dep] {
				count++
			}
		}
		pending[id] = count
		if count == 0 {
			*frontier = append(*frontier, id)
		}
	}
	heap.Init(frontier)

	order := make([]nodeid.Index, 0, len(pending))
	for frontier.Len() > 0 {
		id := heap.Pop(frontier).(nodeid.Index)
		visited[id] = true
		order = append(order, id)
		done++

		for dependent := range g.nodes[id].dependents {
			if visited[dependent] {
				continue
			}
			pending[dependent]--
			if pending[dependent] == 0 {
				heap.Push(frontier, dependent)
			}
		}
	}

	if done < len(g.nodes) {
		return order, ErrIncomplete
	}
	return order, nil
}

// indexHeap is a min-heap of indices.
type indexHeap []nodeid.Index

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *indexHeap) Push(x any) {
	*h = append(*h, x.(nodeid.Index))
}

func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
