package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/scrapec/internal/config"
	"github.com/vk/scrapec/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.RulesLoader interface.
type Loader struct{}

// NewLoader creates a new HCL rules loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.RulesLoader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses every given file and merges the declared rules. Files are
// merged in the order given; a later opcode block replaces an earlier one.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Rules, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL rules loader started.", "file_count", len(paths))

	rules := config.NewRules("")
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", path, err)
		}
		fileRules, err := l.LoadBytes(ctx, src, path)
		if err != nil {
			return nil, err
		}
		if err := rules.Merge(fileRules); err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", path, err)
		}
		logger.Debug("Loaded rules from HCL file.", "file", path, "opcodes", len(fileRules.Supported))
	}

	logger.Debug("HCL rules loading complete.", "opcodes", len(rules.Supported), "entry", rules.EntryOpcode)
	return rules, nil
}

// LoadBytes decodes rules from in-memory HCL source. The filename is only
// used in diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Rules, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	rules, err := l.decode(ctx, file.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return rules, nil
}

func (l *Loader) decode(ctx context.Context, body hcl.Body) (*config.Rules, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	return translateRules(ctx, &root)
}
