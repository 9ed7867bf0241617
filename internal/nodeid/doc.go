// internal/nodeid/doc.go

/*
Package nodeid provides the canonical, dense numeric namespace for every
referenceable identifier of a compiled project: variables, lists and
non-entry nodes.

Identifiers are collected into a set, sorted by byte order and numbered
0..N-1 in that order, so identical identifier sets always produce identical
index assignments no matter in which order they were discovered. Identifiers
that are not part of the map resolve to Unresolved, never to index 0.
*/
package nodeid
