package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Project is the decoded project.json document.
type Project struct {
	Targets []*Target `json:"targets"`
}

// Target is a stage or a sprite.
type Target struct {
	Name    string `json:"name"`
	IsStage bool   `json:"isStage"`

	// Variables maps an identifier to [displayName, value, ...].
	Variables map[string][]any `json:"variables"`
	// Lists maps an identifier to [displayName, [values...]].
	Lists map[string][]any `json:"lists"`
	// Blocks maps a node identifier to a node record or to another shape,
	// such as a top-level reporter array. Use Node to decode an entry.
	Blocks map[string]json.RawMessage `json:"blocks"`
}

// NodeRecord is an object-shaped entry of a target's block table.
type NodeRecord struct {
	Opcode string           `json:"opcode"`
	Next   any              `json:"next"`
	Parent any              `json:"parent"`
	Inputs map[string][]any `json:"inputs"`
	Fields map[string][]any `json:"fields"`
}

// InputNames returns the sorted input names of the record.
func (n *NodeRecord) InputNames() []string {
	names := make([]string, 0, len(n.Inputs))
	for name := range n.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stage returns the first target flagged as the stage.
func (p *Project) Stage() (*Target, bool) {
	for _, t := range p.Targets {
		if t.IsStage {
			return t, true
		}
	}
	return nil, false
}

// Sprite returns the non-stage target with the given name.
func (p *Project) Sprite(name string) (*Target, bool) {
	for _, t := range p.Targets {
		if !t.IsStage && t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// TargetNames returns the names of all targets in document order.
func (p *Project) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		names = append(names, t.Name)
	}
	return names
}

// BlockIDs returns the identifiers of every block table entry, sorted.
func (t *Target) BlockIDs() []string {
	ids := make([]string, 0, len(t.Blocks))
	for id := range t.Blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Node decodes the block table entry id. ok is false when the entry is
// missing or is not an object.
func (t *Target) Node(id string) (node *NodeRecord, ok bool, err error) {
	raw, found := t.Blocks[id]
	if !found || !isObject(raw) {
		return nil, false, nil
	}

	node = &NodeRecord{}
	if err := decodeJSON(raw, node); err != nil {
		return nil, false, fmt.Errorf("decode block %q: %w", id, err)
	}
	return node, true, nil
}

// ObjectBlockIDs returns the sorted identifiers whose entries are objects.
func (t *Target) ObjectBlockIDs() []string {
	ids := make([]string, 0, len(t.Blocks))
	for _, id := range t.BlockIDs() {
		if isObject(t.Blocks[id]) {
			ids = append(ids, id)
		}
	}
	return ids
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
