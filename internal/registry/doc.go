// Package registry holds the operations a compiled program may use.
//
// The Registry is built once per compilation run from a config.Rules value
// and is read-only afterwards. The compiler asks it whether a node's
// operation code marks the program entry, whether the code is supported,
// and whether the node carries every input the operation cannot run
// without.
package registry
