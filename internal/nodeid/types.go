// internal/nodeid/types.go
package nodeid

import "strconv"

// Index is the canonical position of an identifier in a Map.
type Index int

// Unresolved is returned for identifiers that are not part of a Map.
const Unresolved Index = -1

// Valid reports whether the index refers to an identifier.
func (i Index) Valid() bool {
	return i >= 0
}

// String returns the decimal form used as a key in the compiled document.
// Unresolved renders as an empty string.
func (i Index) String() string {
	if !i.Valid() {
		return ""
	}
	return strconv.Itoa(int(i))
}

// MarshalJSON encodes a valid index as a decimal string and Unresolved as null.
func (i Index) MarshalJSON() ([]byte, error) {
	if !i.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(i.String())), nil
}
