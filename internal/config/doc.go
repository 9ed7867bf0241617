// Package config defines the format-agnostic rules model for the compiler,
// along with the RulesLoader interface for reading rules from files.
//
// The `config.Rules` value is the single source of truth for the registry
// and the compiler. It is built once per compilation run and never mutated
// afterwards. Concrete loaders, such as for HCL and YAML, are provided in
// separate packages.
package config
