package ir

import (
	"sort"

	"github.com/vk/scrapec/internal/nodeid"
	"github.com/vk/scrapec/internal/reference"
)

// Document is the compiled program.
type Document struct {
	Container  Container              `json:"container"`
	Blocks     map[nodeid.Index]Block `json:"blocks"`
	Start      nodeid.Index           `json:"start"`
	IDs        int                    `json:"ids"`
	BuildOrder []nodeid.Index         `json:"build_order"`
}

// Container holds the global variables and lists.
type Container struct {
	Variables map[nodeid.Index]string `json:"variables"`
	Lists     map[nodeid.Index]any    `json:"lists"`
}

// Block is a resolved node.
type Block struct {
	Opcode string                         `json:"opcode"`
	Next   nodeid.Index                   `json:"next"`
	Parent nodeid.Index                   `json:"parent"`
	Inputs map[string]reference.Reference `json:"inputs"`
	Fields map[string]reference.Reference `json:"fields"`
}

// NewDocument returns a document with every collection allocated, so empty
// collections encode as {} and [] rather than null.
func NewDocument() *Document {
	return &Document{
		Container: Container{
			Variables: make(map[nodeid.Index]string),
			Lists:     make(map[nodeid.Index]any),
		},
		Blocks:     make(map[nodeid.Index]Block),
		Start:      nodeid.Unresolved,
		BuildOrder: []nodeid.Index{},
	}
}

// Targets returns the sorted, distinct indices b depends on: every pointer
// among its inputs and fields, and its successor when that resolves. Parent
// is never a dependency. Unresolved pointer targets are kept.
func (b Block) Targets() []nodeid.Index {
	seen := make(map[nodeid.Index]struct{})
	collect := func(refs map[string]reference.Reference) {
		for _, ref := range refs {
			if target, ok := ref.Target(); ok {
				seen[target] = struct{}{}
			}
		}
	}
	collect(b.Inputs)
	collect(b.Fields)
	if b.Next.Valid() {
		seen[b.Next] = struct{}{}
	}

	targets := make([]nodeid.Index, 0, len(seen))
	for t := range seen {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// ContainerIndices returns the sorted indices of all variables and lists.
func (d *Document) ContainerIndices() []nodeid.Index {
	indices := make([]nodeid.Index, 0, len(d.Container.Variables)+len(d.Container.Lists))
	for i := range d.Container.Variables {
		indices = append(indices, i)
	}
	for i := range d.Container.Lists {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}
