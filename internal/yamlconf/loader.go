// Package yamlconf provides the YAML implementation of the config.RulesLoader
// interface.
//
// A rules file looks like:
//
//	entry: event_whenflagclicked
//	opcodes:
//	  control_repeat: [TIMES, SUBSTACK]
//	  sensing_timer: []
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/scrapec/internal/config"
	"github.com/vk/scrapec/internal/ctxlog"
)

// rulesFile is the on-disk layout of a YAML rules file.
type rulesFile struct {
	Entry   string              `yaml:"entry"`
	Opcodes map[string][]string `yaml:"opcodes"`
}

// Loader is the YAML-specific implementation of the config.RulesLoader interface.
type Loader struct{}

// NewLoader creates a new YAML rules loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.RulesLoader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads and merges every given YAML file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Rules, error) {
	logger := ctxlog.FromContext(ctx)
	rules := config.NewRules("")

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load rules %q: %w", path, err)
		}
		fileRules, err := l.LoadBytes(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("parse rules %q: %w", path, err)
		}
		if err := rules.Merge(fileRules); err != nil {
			return nil, fmt.Errorf("in rules %q: %w", path, err)
		}
		logger.Debug("Loaded rules from YAML file.", "file", path, "opcodes", len(fileRules.Supported))
	}
	return rules, nil
}

// LoadBytes decodes rules from in-memory YAML. Unknown keys are rejected.
func (l *Loader) LoadBytes(_ context.Context, data []byte) (*config.Rules, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rulesFile
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	rules := config.NewRules(raw.Entry)
	for op, inputs := range raw.Opcodes {
		if op == "" {
			return nil, fmt.Errorf("opcode with an empty name")
		}
		for _, in := range inputs {
			if in == "" {
				return nil, fmt.Errorf("opcode %q declares an empty required input name", op)
			}
		}
		rules.Add(op, inputs...)
	}
	return rules, nil
}
