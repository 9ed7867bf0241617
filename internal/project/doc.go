// Package project reads a visual-blocks project and decodes the parts the
// compiler needs.
//
// A project is either a .sb3 archive, which is a zip file holding a
// project.json member, or the raw project.json itself. Before decoding, the
// JSON is checked against an embedded schema so shape errors surface as a
// readable validation message instead of a type assertion deep in the
// compiler. Numbers are kept as json.Number so literal values reach the
// compiled document unchanged.
package project
