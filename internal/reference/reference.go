package reference

import (
	"encoding/json"
	"fmt"

	"github.com/vk/scrapec/internal/nodeid"
)

// Tag is the discriminant written in front of every reference in the
// compiled document.
type Tag int

const (
	// TagPointer marks an index reference.
	TagPointer Tag = 1
	// TagLiteral marks an inline literal value.
	TagLiteral Tag = 2
)

// Reference is either Literal(value) or Pointer(index). The zero value is a
// literal holding nil.
type Reference struct {
	pointer bool
	value   any
	target  nodeid.Index
}

// Literal returns a reference that carries v inline.
func Literal(v any) Reference {
	return Reference{value: v, target: nodeid.Unresolved}
}

// Pointer returns a reference to the given canonical index. The index may be
// nodeid.Unresolved; such a pointer can never be satisfied when ordering.
func Pointer(target nodeid.Index) Reference {
	return Reference{pointer: true, target: target}
}

// IsPointer reports whether r points at an index.
func (r Reference) IsPointer() bool {
	return r.pointer
}

// Target returns the pointed-at index. ok is false for literals.
func (r Reference) Target() (target nodeid.Index, ok bool) {
	if !r.pointer {
		return nodeid.Unresolved, false
	}
	return r.target, true
}

// Value returns the literal value. It is nil for pointers.
func (r Reference) Value() any {
	if r.pointer {
		return nil
	}
	return r.value
}

// Tag returns the discriminant used in the compiled document.
func (r Reference) Tag() Tag {
	if r.pointer {
		return TagPointer
	}
	return TagLiteral
}

// String renders the reference for log output.
func (r Reference) String() string {
	if r.pointer {
		if !r.target.Valid() {
			return "pointer(unresolved)"
		}
		return fmt.Sprintf("pointer(%d)", r.target)
	}
	return fmt.Sprintf("literal(%v)", r.value)
}

// MarshalJSON encodes r as [1, index] or [2, value].
func (r Reference) MarshalJSON() ([]byte, error) {
	if r.pointer {
		return json.Marshal([]any{TagPointer, r.target})
	}
	return json.Marshal([]any{TagLiteral, r.value})
}
