package dag

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/scrapec/internal/nodeid"
)

func TestOrder(t *testing.T) {
	testCases := []struct {
		name    string
		deps    map[nodeid.Index][]nodeid.Index
		seed    []nodeid.Index
		want    []nodeid.Index
		wantErr bool
	}{
		{
			name: "empty graph",
			deps: map[nodeid.Index][]nodeid.Index{},
			want: []nodeid.Index{},
		},
		{
			name: "independent vertices ascend",
			deps: map[nodeid.Index][]nodeid.Index{5: {}, 1: {}, 3: {}},
			want: []nodeid.Index{1, 3, 5},
		},
		{
			name: "successor comes first",
			deps: map[nodeid.Index][]nodeid.Index{1: {2}, 2: {3}, 3: {}},
			want: []nodeid.Index{3, 2, 1},
		},
		{
			name: "smallest available wins after each step",
			// 4 is free, 1 waits on 4, 3 waits on nothing, 2 waits on 3.
			deps: map[nodeid.Index][]nodeid.Index{1: {4}, 2: {3}, 3: {}, 4: {}},
			want: []nodeid.Index{3, 2, 4, 1},
		},
		{
			name: "seed satisfies container targets",
			deps: map[nodeid.Index][]nodeid.Index{2: {0, 1}, 3: {0}},
			seed: []nodeid.Index{0, 1},
			want: []nodeid.Index{2, 3},
		},
		{
			name:    "container target without seed",
			deps:    map[nodeid.Index][]nodeid.Index{2: {0}},
			want:    []nodeid.Index{},
			wantErr: true,
		},
		{
			name:    "unresolved pointer",
			deps:    map[nodeid.Index][]nodeid.Index{1: {}, 2: {nodeid.Unresolved}},
			want:    []nodeid.Index{1},
			wantErr: true,
		},
		{
			name:    "cycle keeps the orderable prefix",
			deps:    map[nodeid.Index][]nodeid.Index{0: {}, 1: {2}, 2: {1}, 3: {0}},
			want:    []nodeid.Index{0, 3},
			wantErr: true,
		},
		{
			name:    "self edge",
			deps:    map[nodeid.Index][]nodeid.Index{0: {0}},
			want:    []nodeid.Index{},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Build(tc.deps).Order(tc.seed)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrIncomplete)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

// randomDAG builds an acyclic dependency map over vertices seedCount..n-1,
// with container indices 0..seedCount-1 available as targets.
func randomDAG(n, seedCount int, seed int64) (map[nodeid.Index][]nodeid.Index, []nodeid.Index) {
	rng := rand.New(rand.NewSource(seed))

	containers := make([]nodeid.Index, 0, seedCount)
	for i := 0; i < seedCount; i++ {
		containers = append(containers, nodeid.Index(i))
	}

	vertices := make([]nodeid.Index, 0, n)
	for i := seedCount; i < seedCount+n; i++ {
		vertices = append(vertices, nodeid.Index(i))
	}
	// A random rank decides who may depend on whom, so index order and
	// dependency order are unrelated.
	rng.Shuffle(len(vertices), func(i, j int) { vertices[i], vertices[j] = vertices[j], vertices[i] })

	deps := make(map[nodeid.Index][]nodeid.Index, n)
	for rank, v := range vertices {
		deps[v] = []nodeid.Index{}
		for _, lower := range vertices[:rank] {
			if rng.Intn(3) == 0 {
				deps[v] = append(deps[v], lower)
			}
		}
		for _, c := range containers {
			if rng.Intn(4) == 0 {
				deps[v] = append(deps[v], c)
			}
		}
	}
	return deps, containers
}

// rescanOrder repeatedly scans for the smallest available vertex.
func rescanOrder(deps map[nodeid.Index][]nodeid.Index, seed []nodeid.Index) []nodeid.Index {
	visited := make(map[nodeid.Index]bool)
	for _, s := range seed {
		visited[s] = true
	}
	order := []nodeid.Index{}
	for {
		best := nodeid.Unresolved
		for v, targets := range deps {
			if visited[v] {
				continue
			}
			ready := true
			for _, t := range targets {
				if !visited[t] {
					ready = false
					break
				}
			}
			if ready && (best == nodeid.Unresolved || v < best) {
				best = v
			}
		}
		if best == nodeid.Unresolved {
			return order
		}
		visited[best] = true
		order = append(order, best)
	}
}

func TestOrder_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every dependency precedes its dependent", prop.ForAll(
		func(n, seedCount int, seed int64) bool {
			deps, containers := randomDAG(n, seedCount, seed)
			order, err := Build(deps).Order(containers)
			if err != nil || len(order) != n {
				return false
			}

			position := make(map[nodeid.Index]int, len(order))
			for i, v := range order {
				position[v] = i
			}
			for v, targets := range deps {
				for _, target := range targets {
					if target < nodeid.Index(seedCount) {
						continue
					}
					if position[target] >= position[v] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 25),
		gen.IntRange(0, 5),
		gen.Int64(),
	))

	properties.Property("order matches the smallest-available rescan", prop.ForAll(
		func(n, seedCount int, seed int64) bool {
			deps, containers := randomDAG(n, seedCount, seed)
			order, err := Build(deps).Order(containers)
			if err != nil {
				return false
			}
			want := rescanOrder(deps, containers)
			if len(order) != len(want) {
				return false
			}
			for i := range order {
				if order[i] != want[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 25),
		gen.IntRange(0, 5),
		gen.Int64(),
	))

	properties.Property("a back edge always makes ordering incomplete", prop.ForAll(
		func(n int, seed int64) bool {
			deps, containers := randomDAG(n, 0, seed)
			// The smallest vertex depends on the largest and vice versa.
			first, last := nodeid.Index(0), nodeid.Index(n-1)
			deps[first] = append(deps[first], last)
			deps[last] = append(deps[last], first)

			_, err := Build(deps).Order(containers)
			return err == ErrIncomplete
		},
		gen.IntRange(2, 20),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
