package registry

import (
	"fmt"

	"github.com/vk/scrapec/internal/config"
)

// Registry is an immutable view over a validated rule set.
type Registry struct {
	entry     string
	supported map[string]struct{}
	required  map[string][]string
}

// New validates the rules and creates a Registry from them. The rules are
// copied, so later changes to them do not leak into the registry.
func New(rules *config.Rules) (*Registry, error) {
	if rules == nil {
		return nil, fmt.Errorf("registry: rules are nil")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	r := &Registry{
		entry:     rules.EntryOpcode,
		supported: make(map[string]struct{}, len(rules.Supported)),
		required:  make(map[string][]string, len(rules.RequiredInputs)),
	}
	for op := range rules.Supported {
		r.supported[op] = struct{}{}
	}
	for op, inputs := range rules.RequiredInputs {
		r.required[op] = append([]string(nil), inputs...)
	}
	return r, nil
}

// EntryOpcode returns the operation code that marks the program start.
func (r *Registry) EntryOpcode() string {
	return r.entry
}

// IsEntry reports whether opcode marks the program start.
func (r *Registry) IsEntry(opcode string) bool {
	return opcode == r.entry
}

// Supports reports whether opcode is part of the supported set.
func (r *Registry) Supports(opcode string) bool {
	_, ok := r.supported[opcode]
	return ok
}

// Len returns the number of supported operation codes.
func (r *Registry) Len() int {
	return len(r.supported)
}
