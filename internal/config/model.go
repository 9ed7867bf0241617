package config

import (
	"fmt"
	"sort"
)

// DefaultEntryOpcode marks the node that starts the program.
const DefaultEntryOpcode = "event_whenflagclicked"

// Rules is the set of operations the downstream runtime can execute, with
// the inputs each of them cannot run without.
type Rules struct {
	// EntryOpcode is the operation code of the program entry node.
	EntryOpcode string
	// Supported holds every accepted operation code, the entry opcode included.
	Supported map[string]struct{}
	// RequiredInputs maps an operation code to its mandatory input names.
	// Only operations with mandatory inputs appear here.
	RequiredInputs map[string][]string
}

// NewRules returns an empty rule set with the given entry opcode.
func NewRules(entry string) *Rules {
	r := &Rules{
		EntryOpcode:    entry,
		Supported:      make(map[string]struct{}),
		RequiredInputs: make(map[string][]string),
	}
	if entry != "" {
		r.Supported[entry] = struct{}{}
	}
	return r
}

// Add registers an operation code with its mandatory inputs. Adding the same
// opcode again replaces its required inputs.
func (r *Rules) Add(opcode string, required ...string) {
	r.Supported[opcode] = struct{}{}
	if len(required) == 0 {
		delete(r.RequiredInputs, opcode)
		return
	}
	r.RequiredInputs[opcode] = append([]string(nil), required...)
}

// Opcodes returns all supported operation codes in sorted order.
func (r *Rules) Opcodes() []string {
	out := make([]string, 0, len(r.Supported))
	for op := range r.Supported {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

// Merge folds other into r. Opcodes declared by other replace those of r.
// A differing, non-empty entry opcode is an error.
func (r *Rules) Merge(other *Rules) error {
	if other == nil {
		return nil
	}
	if other.EntryOpcode != "" {
		if r.EntryOpcode != "" && r.EntryOpcode != other.EntryOpcode {
			return fmt.Errorf("conflicting entry opcodes %q and %q", r.EntryOpcode, other.EntryOpcode)
		}
		r.EntryOpcode = other.EntryOpcode
		r.Supported[other.EntryOpcode] = struct{}{}
	}
	// A redeclared opcode takes the later declaration as a whole, including
	// an empty set of required inputs.
	for op := range other.Supported {
		r.Supported[op] = struct{}{}
		inputs, ok := other.RequiredInputs[op]
		if !ok || len(inputs) == 0 {
			delete(r.RequiredInputs, op)
			continue
		}
		r.RequiredInputs[op] = append([]string(nil), inputs...)
	}
	return nil
}

// Validate checks that the rule set is usable by the compiler.
func (r *Rules) Validate() error {
	if r.EntryOpcode == "" {
		return fmt.Errorf("rules do not declare an entry opcode")
	}
	for op := range r.RequiredInputs {
		if _, ok := r.Supported[op]; !ok {
			return fmt.Errorf("required inputs declared for unsupported opcode %q", op)
		}
	}
	return nil
}
