// internal/nodeid/canonical.go
package nodeid

import "sort"

// Map is an immutable bijection between identifiers and dense indices.
type Map struct {
	ids   []string
	index map[string]Index
}

// NewMap collects the given identifiers into a set, sorts them and assigns
// indices 0..N-1 in sorted order. Duplicates collapse to a single index.
func NewMap(ids ...string) *Map {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	index := make(map[string]Index, len(unique))
	for i, id := range unique {
		index[id] = Index(i)
	}
	return &Map{ids: unique, index: index}
}

// Lookup returns the index of id, or Unresolved if id is not in the map.
func (m *Map) Lookup(id string) Index {
	if m == nil {
		return Unresolved
	}
	if i, ok := m.index[id]; ok {
		return i
	}
	return Unresolved
}

// Identifier returns the identifier that owns index i.
func (m *Map) Identifier(i Index) (string, bool) {
	if m == nil || !i.Valid() || int(i) >= len(m.ids) {
		return "", false
	}
	return m.ids[i], true
}

// Len returns the number of indices in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}
