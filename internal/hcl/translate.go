package hcl

import (
	"context"
	"fmt"

	"github.com/vk/scrapec/internal/config"
	"github.com/vk/scrapec/internal/ctxlog"
)

// translateRules converts the HCL-specific schema into the agnostic model.
func translateRules(ctx context.Context, root *fileRoot) (*config.Rules, error) {
	logger := ctxlog.FromContext(ctx)

	entry := ""
	if root.Entry != nil {
		entry = *root.Entry
	}
	rules := config.NewRules(entry)

	seen := make(map[string]struct{}, len(root.Opcodes))
	for _, op := range root.Opcodes {
		if op.Name == "" {
			return nil, fmt.Errorf("opcode block with an empty name")
		}
		if _, dup := seen[op.Name]; dup {
			return nil, fmt.Errorf("opcode %q is declared more than once", op.Name)
		}
		seen[op.Name] = struct{}{}

		for _, in := range op.RequiredInputs {
			if in == "" {
				return nil, fmt.Errorf("opcode %q declares an empty required input name", op.Name)
			}
		}
		rules.Add(op.Name, op.RequiredInputs...)

		description := ""
		if op.Description != nil {
			description = *op.Description
		}
		logger.Debug("Translated opcode block.",
			"opcode", op.Name,
			"required_inputs", op.RequiredInputs,
			"description", description,
		)
	}
	return rules, nil
}
