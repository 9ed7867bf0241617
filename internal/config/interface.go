package config

import (
	"context"
)

// RulesLoader is the interface for a format-specific rules loader.
type RulesLoader interface {
	// Load reads every given file and merges the rules they declare into a
	// single value.
	Load(ctx context.Context, paths ...string) (*Rules, error)

	// Extensions lists the file extensions the loader understands,
	// including the leading dot.
	Extensions() []string
}
