package compiler

import (
	"errors"

	"github.com/vk/scrapec/internal/reference"
	"github.com/vk/scrapec/internal/registry"
)

// Every error returned by Compile matches one of these with errors.Is.
var (
	// ErrUnknownTarget: the requested sprite or the stage is missing.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrUnsupportedOperation: a node uses an operation outside the rules.
	ErrUnsupportedOperation = registry.ErrUnsupported
	// ErrMissingRequiredInput: a node lacks a mandatory input.
	ErrMissingRequiredInput = registry.ErrMissingInputs
	// ErrNullLiteralReference: a literal input carries null.
	ErrNullLiteralReference = reference.ErrNullLiteral
	// ErrMalformedReference: a reference pair has the wrong shape.
	ErrMalformedReference = reference.ErrMalformed
	// ErrEntryCountMismatch: the sprite has zero or several entry nodes.
	ErrEntryCountMismatch = errors.New("entry count mismatch")
	// ErrStructuralInconsistency: the nodes cannot be ordered, or the
	// project is otherwise not self-consistent.
	ErrStructuralInconsistency = errors.New("there is something wrong with the provided project file")
)
