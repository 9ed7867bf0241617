// Package dag builds the dependency graph of a compiled program and orders
// it.
//
// Vertices are the canonical indices of emitted nodes. An edge from t to n
// records that n depends on t: t is an input or field target of n, or n's
// successor. A dependency target need not be a vertex; container indices
// are satisfied by the seed passed to Order, and unresolved targets are
// never satisfied.
//
// Order is a Kahn traversal that always takes the numerically smallest
// available vertex, which makes the result a pure function of the graph.
package dag
