// Package compiler turns a decoded project into the compiled document.
//
// Compile runs in a fixed sequence: it assigns canonical indices, converts
// the stage containers, validates and resolves every node of the selected
// sprite, checks that there is exactly one entry node, and orders the nodes
// so every dependency is built before its dependents. Any failure aborts
// the run and no document is returned.
package compiler
