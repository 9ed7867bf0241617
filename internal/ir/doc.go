// Package ir defines the compiled document consumed by the runtime and
// writes it out.
//
// Every index in the document is a decimal string, and an index that does
// not resolve is null. References are two-element arrays tagged 1 for an
// index and 2 for an inline literal.
package ir
