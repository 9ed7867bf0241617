package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnsupported is returned for operation codes outside the supported set.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrMissingInputs is returned when a node lacks mandatory inputs.
	ErrMissingInputs = errors.New("missing required input")
)

// UnsupportedError names an operation code the runtime does not know.
type UnsupportedError struct {
	Opcode string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not a supported block yet", e.Opcode)
}

// Is makes errors.Is(err, ErrUnsupported) match.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// MissingInputsError names the operation and the inputs it lacks.
type MissingInputsError struct {
	Opcode  string
	Missing []string
}

func (e *MissingInputsError) Error() string {
	return fmt.Sprintf("one of the %s blocks has some input(s) missing: %s", e.Opcode, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrMissingInputs) match.
func (e *MissingInputsError) Is(target error) bool {
	return target == ErrMissingInputs
}

// CheckNode validates a non-entry node: its operation code must be supported
// and its input names must cover the operation's required inputs. The entry
// opcode itself always passes.
func (r *Registry) CheckNode(opcode string, inputs []string) error {
	if !r.Supports(opcode) {
		return &UnsupportedError{Opcode: opcode}
	}

	required := r.required[opcode]
	if len(required) == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(inputs))
	for _, name := range inputs {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingInputsError{Opcode: opcode, Missing: missing}
	}
	return nil
}
