// Package reference rewrites the loosely typed input and field pairs of a
// project's node records into explicit references: either an inline literal
// or a pointer to a canonical index.
//
// Inputs and fields flag literals in opposite ways. An input pair carries a
// discriminant in its first element, while a field pair marks a literal with
// a null second element. The two encodings are resolved by separate
// functions, ResolveInput and ResolveField.
package reference
