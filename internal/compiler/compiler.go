package compiler

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/scrapec/internal/ctxlog"
	"github.com/vk/scrapec/internal/dag"
	"github.com/vk/scrapec/internal/ir"
	"github.com/vk/scrapec/internal/nodeid"
	"github.com/vk/scrapec/internal/project"
	"github.com/vk/scrapec/internal/reference"
	"github.com/vk/scrapec/internal/registry"
	"github.com/vk/scrapec/internal/value"
)

// Compile compiles the sprite named sprite of p against the operations known
// to reg.
func Compile(ctx context.Context, p *project.Project, sprite string, reg *registry.Registry) (*ir.Document, error) {
	ctx = ctxlog.With(ctx, "sprite", sprite)
	logger := ctxlog.FromContext(ctx)

	stage, target, err := selectTargets(p, sprite)
	if err != nil {
		return nil, err
	}

	nodes, err := decodeNodes(target)
	if err != nil {
		return nil, err
	}
	logger.Debug("Node records decoded.", "records", len(nodes), "entries", len(target.Blocks))

	ids := canonicalIDs(stage, nodes, reg)
	logger.Debug("Canonical indices assigned.", "ids", ids.Len())

	doc := ir.NewDocument()
	doc.IDs = ids.Len()
	if err := convertContainers(doc, stage, ids); err != nil {
		return nil, err
	}

	start, err := resolveNodes(ctx, doc, nodes, ids, reg)
	if err != nil {
		return nil, err
	}
	doc.Start = start

	order, err := buildOrder(ctx, doc, ids)
	if err != nil {
		return nil, err
	}
	doc.BuildOrder = order

	logger.Debug("Compilation finished.", "blocks", len(doc.Blocks), "start", doc.Start.String())
	return doc, nil
}

// record is a decoded node together with its identifier.
type record struct {
	id   string
	node *project.NodeRecord
}

func selectTargets(p *project.Project, sprite string) (stage, target *project.Target, err error) {
	if p == nil {
		return nil, nil, fmt.Errorf("%w: project is nil", ErrUnknownTarget)
	}
	target, ok := p.Sprite(sprite)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no sprite named %q, found %q", ErrUnknownTarget, sprite, p.TargetNames())
	}
	stage, ok = p.Stage()
	if !ok {
		return nil, nil, fmt.Errorf("%w: the project has no stage", ErrUnknownTarget)
	}
	return stage, target, nil
}

// decodeNodes returns the object-shaped entries of the block table in
// ascending identifier order.
func decodeNodes(target *project.Target) ([]record, error) {
	ids := target.ObjectBlockIDs()
	nodes := make([]record, 0, len(ids))
	for _, id := range ids {
		node, ok, err := target.Node(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStructuralInconsistency, err)
		}
		if ok {
			nodes = append(nodes, record{id: id, node: node})
		}
	}
	return nodes, nil
}

// canonicalIDs indexes every variable, list and non-entry node.
func canonicalIDs(stage *project.Target, nodes []record, reg *registry.Registry) *nodeid.Map {
	ids := make([]string, 0, len(stage.Variables)+len(stage.Lists)+len(nodes))
	for id := range stage.Variables {
		ids = append(ids, id)
	}
	for id := range stage.Lists {
		ids = append(ids, id)
	}
	for _, r := range nodes {
		if !reg.IsEntry(r.node.Opcode) {
			ids = append(ids, r.id)
		}
	}
	return nodeid.NewMap(ids...)
}

func convertContainers(doc *ir.Document, stage *project.Target, ids *nodeid.Map) error {
	for id, entry := range stage.Variables {
		if len(entry) < 2 {
			return fmt.Errorf("%w: variable %q has no value", ErrStructuralInconsistency, id)
		}
		text, err := value.Text(entry[1])
		if err != nil {
			return fmt.Errorf("%w: variable %q: %v", ErrStructuralInconsistency, id, err)
		}
		doc.Container.Variables[ids.Lookup(id)] = text
	}
	for id, entry := range stage.Lists {
		if len(entry) < 2 {
			return fmt.Errorf("%w: list %q has no contents", ErrStructuralInconsistency, id)
		}
		doc.Container.Lists[ids.Lookup(id)] = entry[1]
	}
	return nil
}

// resolveNodes validates every node, emits the non-entry ones and returns
// the resolved successor of the single entry node.
func resolveNodes(ctx context.Context, doc *ir.Document, nodes []record, ids *nodeid.Map, reg *registry.Registry) (nodeid.Index, error) {
	logger := ctxlog.FromContext(ctx)

	var (
		entries int
		start   any
	)
	for _, r := range nodes {
		if reg.IsEntry(r.node.Opcode) {
			entries++
			start = r.node.Next
			logger.Debug("Entry node found.", "id", r.id)
			continue
		}
		if err := reg.CheckNode(r.node.Opcode, r.node.InputNames()); err != nil {
			return nodeid.Unresolved, fmt.Errorf("block %q: %w", r.id, err)
		}

		block, err := resolveBlock(r.node, ids)
		if err != nil {
			return nodeid.Unresolved, fmt.Errorf("block %q: %w", r.id, err)
		}
		doc.Blocks[ids.Lookup(r.id)] = block
	}

	if entries != 1 {
		return nodeid.Unresolved, fmt.Errorf("%w: the project must have exactly one %s block, found %d",
			ErrEntryCountMismatch, reg.EntryOpcode(), entries)
	}
	return reference.ResolveID(ids, start), nil
}

func resolveBlock(node *project.NodeRecord, ids *nodeid.Map) (ir.Block, error) {
	block := ir.Block{
		Opcode: node.Opcode,
		Next:   reference.ResolveID(ids, node.Next),
		Parent: reference.ResolveID(ids, node.Parent),
		Inputs: make(map[string]reference.Reference, len(node.Inputs)),
		Fields: make(map[string]reference.Reference, len(node.Fields)),
	}

	for _, name := range sortedNames(node.Inputs) {
		ref, err := reference.ResolveInput(ids, node.Inputs[name])
		if err != nil {
			return ir.Block{}, fmt.Errorf("input %q: %w", name, err)
		}
		block.Inputs[name] = ref
	}
	for _, name := range sortedNames(node.Fields) {
		ref, err := reference.ResolveField(ids, node.Fields[name])
		if err != nil {
			return ir.Block{}, fmt.Errorf("field %q: %w", name, err)
		}
		block.Fields[name] = ref
	}
	return block, nil
}

func buildOrder(ctx context.Context, doc *ir.Document, ids *nodeid.Map) ([]nodeid.Index, error) {
	logger := ctxlog.FromContext(ctx)

	deps := make(map[nodeid.Index][]nodeid.Index, len(doc.Blocks))
	for id, block := range doc.Blocks {
		deps[id] = block.Targets()
	}
	graph := dag.Build(deps)
	logger.Debug("Dependency graph built.", "node_count", graph.Len())

	order, err := graph.Order(doc.ContainerIndices())
	if err != nil {
		if errors.Is(err, dag.ErrIncomplete) {
			logger.Debug("Build order is incomplete.",
				"ordered", len(order),
				"nodes", graph.Len(),
				"cycle", cycleReport(graph),
			)
			logUnordered(ctx, graph, order, ids)
		}
		return nil, fmt.Errorf("%w: %w", ErrStructuralInconsistency, err)
	}
	return order, nil
}

// logUnordered names every node left out of the build order together with
// the dependencies holding it back.
func logUnordered(ctx context.Context, g *dag.Graph, order []nodeid.Index, ids *nodeid.Map) {
	logger := ctxlog.FromContext(ctx)

	ordered := make(map[nodeid.Index]bool, len(order))
	for _, i := range order {
		ordered[i] = true
	}
	for _, i := range g.Nodes() {
		if ordered[i] {
			continue
		}
		deps, err := g.Dependencies(i)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(deps))
		for _, d := range deps {
			if name, ok := ids.Identifier(d); ok {
				names = append(names, name)
			} else {
				names = append(names, "<unresolved>")
			}
		}
		name, _ := ids.Identifier(i)
		logger.Debug("Node cannot be ordered.", "id", name, "index", i.String(), "depends_on", names)
	}
}

func cycleReport(g *dag.Graph) string {
	if err := g.DetectCycles(); err != nil {
		return err.Error()
	}
	return "none"
}

func sortedNames(m map[string][]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
