package reference

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/scrapec/internal/nodeid"
)

// literalKind is the input discriminant for an inline value
// (a shadow block that holds its own value).
const literalKind = 1

var (
	// ErrNullLiteral is returned when a literal-tagged input has no payload.
	ErrNullLiteral = errors.New("a block contains a null value in one of its inputs")
	// ErrMalformed is returned when a pair does not have the expected shape.
	ErrMalformed = errors.New("malformed reference")
)

// ResolveID maps a raw identifier to its canonical index. A compound
// encoding such as [12, "name", "id"] resolves the identifier stored at
// position 2; the nested value itself is not unwrapped any further.
// Everything that does not name a known identifier resolves to
// nodeid.Unresolved.
func ResolveID(m *nodeid.Map, raw any) nodeid.Index {
	if compound, ok := raw.([]any); ok {
		if len(compound) < 3 {
			return nodeid.Unresolved
		}
		raw = compound[2]
	}
	id, ok := raw.(string)
	if !ok {
		return nodeid.Unresolved
	}
	return m.Lookup(id)
}

// ResolveInput resolves an input pair [kind, payload, ...]. A literal kind
// requires a [placeholder, value] payload; any other kind is a pointer whose
// payload is the raw identifier.
func ResolveInput(m *nodeid.Map, pair []any) (Reference, error) {
	if len(pair) == 0 {
		return Reference{}, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	var payload any
	if len(pair) > 1 {
		payload = pair[1]
	}

	if !isLiteralKind(pair[0]) {
		return Pointer(ResolveID(m, payload)), nil
	}

	if payload == nil {
		return Reference{}, ErrNullLiteral
	}
	shadow, ok := payload.([]any)
	if !ok || len(shadow) < 2 {
		return Reference{}, fmt.Errorf("%w: literal input payload must be [placeholder, value], got %v", ErrMalformed, payload)
	}
	return Literal(shadow[1]), nil
}

// ResolveField resolves a field pair [value, refOrNull]. A missing or null
// second element makes the field a literal.
func ResolveField(m *nodeid.Map, pair []any) (Reference, error) {
	if len(pair) == 0 {
		return Reference{}, fmt.Errorf("%w: empty field", ErrMalformed)
	}
	if len(pair) < 2 || pair[1] == nil {
		return Literal(pair[0]), nil
	}
	return Pointer(ResolveID(m, pair[1])), nil
}

// isLiteralKind accepts the discriminant in any numeric form produced by a
// JSON decoder.
func isLiteralKind(kind any) bool {
	switch k := kind.(type) {
	case json.Number:
		n, err := k.Int64()
		return err == nil && n == literalKind
	case float64:
		return k == literalKind
	case int:
		return k == literalKind
	case int64:
		return k == literalKind
	default:
		return false
	}
}
