package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/scrapec/internal/config"
	"github.com/vk/scrapec/internal/ctxlog"
	"github.com/vk/scrapec/internal/fsutil"
)

// loadRules returns the built-in rules when path is empty. Otherwise it
// collects every rules file under path, hands each file to the loader that
// owns its extension and merges the results. Rules that name no entry
// opcode use the default one.
func loadRules(ctx context.Context, path string, loaders []config.RulesLoader) (*config.Rules, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No rules path given, using built-in rules.")
		return config.DefaultRules(), nil
	}

	byExt := make(map[string]config.RulesLoader)
	var extensions []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[strings.ToLower(ext)] = l
			extensions = append(extensions, ext)
		}
	}

	files, err := fsutil.FindFilesByExtension(path, extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rules files (%s) found in %s", strings.Join(extensions, ", "), path)
	}
	logger.Debug("Rules files found.", "path", path, "count", len(files))

	// Group files per loader, keeping the sorted order within each group.
	var order []config.RulesLoader
	groups := make(map[config.RulesLoader][]string)
	for _, f := range files {
		l := byExt[strings.ToLower(filepath.Ext(f))]
		if _, seen := groups[l]; !seen {
			order = append(order, l)
		}
		groups[l] = append(groups[l], f)
	}

	rules := config.NewRules("")
	for _, l := range order {
		loaded, err := l.Load(ctx, groups[l]...)
		if err != nil {
			return nil, err
		}
		if err := rules.Merge(loaded); err != nil {
			return nil, err
		}
	}

	if rules.EntryOpcode == "" {
		logger.Debug("Rules name no entry opcode, using the default.", "entry", config.DefaultEntryOpcode)
		if err := rules.Merge(config.NewRules(config.DefaultEntryOpcode)); err != nil {
			return nil, err
		}
	}
	return rules, nil
}
