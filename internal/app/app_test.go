package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/scrapec/internal/compiler"
	"github.com/vk/scrapec/internal/config"
	"github.com/vk/scrapec/internal/testutil"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{InputPath: "game.sb3"})
		require.NoError(t, err)
		assert.Equal(t, DefaultSprite, cfg.Sprite)
	})

	t.Run("input is required", func(t *testing.T) {
		_, err := NewConfig(Config{})
		assert.ErrorContains(t, err, "InputPath")
	})

	t.Run("canonical excludes indent", func(t *testing.T) {
		_, err := NewConfig(Config{InputPath: "x", Canonical: true, Indent: "  "})
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, ok := ParseLevel(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	got, ok := ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, got)
}

func TestNewLogger(t *testing.T) {
	buf := &testutil.SafeBuffer{}
	newLogger("warn", "json", buf).Info("hidden")
	newLogger("warn", "json", buf).Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "v", line["k"])
}

func TestLoadRules(t *testing.T) {
	ctx := context.Background()
	loaders := DefaultLoaders()

	t.Run("built-in rules without a path", func(t *testing.T) {
		rules, err := loadRules(ctx, "", loaders)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultRules(), rules)
	})

	t.Run("hcl and yaml files merge", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "base.hcl"), `
entry = "event_whenflagclicked"

opcode "looks_say" {
  required_inputs = ["MESSAGE"]
}
`)
		writeFile(t, filepath.Join(dir, "nested", "extra.yaml"), `
opcodes:
  sensing_timer: []
  operator_add: [NUM1, NUM2]
`)
		writeFile(t, filepath.Join(dir, "README.md"), "ignored")

		rules, err := loadRules(ctx, dir, loaders)
		require.NoError(t, err)
		assert.Equal(t, "event_whenflagclicked", rules.EntryOpcode)
		assert.Equal(t, []string{"event_whenflagclicked", "looks_say", "operator_add", "sensing_timer"}, rules.Opcodes())
		assert.Equal(t, []string{"NUM1", "NUM2"}, rules.RequiredInputs["operator_add"])
	})

	t.Run("missing entry falls back to the default", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "rules.yml"), "opcodes:\n  looks_say: [MESSAGE]\n")
		rules, err := loadRules(ctx, path, loaders)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultEntryOpcode, rules.EntryOpcode)
		assert.Contains(t, rules.Supported, config.DefaultEntryOpcode)
	})

	t.Run("conflicting entries", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.hcl"), `entry = "event_whenflagclicked"`)
		writeFile(t, filepath.Join(dir, "b.yaml"), "entry: event_whenkeypressed\n")
		_, err := loadRules(ctx, dir, loaders)
		assert.ErrorContains(t, err, "conflicting entry opcodes")
	})

	t.Run("no rules files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "notes.txt"), "nothing here")
		_, err := loadRules(ctx, dir, loaders)
		assert.ErrorContains(t, err, "no rules files")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := loadRules(ctx, filepath.Join(t.TempDir(), "nope"), loaders)
		assert.ErrorContains(t, err, "error accessing path")
	})
}

func TestNewApp(t *testing.T) {
	t.Run("default rules", func(t *testing.T) {
		buf := &testutil.SafeBuffer{}
		a, err := NewApp(buf, &Config{InputPath: "x", LogLevel: "debug", LogFormat: "text"})
		require.NoError(t, err)
		assert.Equal(t, 49, a.Registry().Len())
		assert.NotEmpty(t, a.RunID())
		assert.Contains(t, buf.String(), "run_id="+a.RunID())
	})

	t.Run("broken rules file", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "rules.hcl"), `opcode "x" {`)
		_, err := NewApp(&testutil.SafeBuffer{}, &Config{InputPath: "x", RulesPath: path})
		assert.ErrorContains(t, err, "failed to load rules")
	})
}

func TestRun(t *testing.T) {
	t.Run("archive to explicit output", func(t *testing.T) {
		dir := t.TempDir()
		input := testutil.AcceptanceProject().WriteArchive(t, dir, "game.sb3")
		output := filepath.Join(dir, "out.scrape")

		buf := &testutil.SafeBuffer{}
		a, err := NewApp(buf, &Config{InputPath: input, Sprite: DefaultSprite, OutputPath: output, LogFormat: "text"})
		require.NoError(t, err)
		require.NoError(t, a.Run(context.Background()))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "0", doc["start"])
		assert.Equal(t, float64(2), doc["ids"])
		assert.Contains(t, buf.String(), "Compilation finished.")
		assert.Contains(t, buf.String(), "digest=")
	})

	t.Run("raw json with canonical output", func(t *testing.T) {
		dir := t.TempDir()
		input := testutil.AcceptanceProject().WriteJSON(t, dir, "project.json")
		output := filepath.Join(dir, "canonical.scrape")

		a, err := NewApp(&testutil.SafeBuffer{}, &Config{
			InputPath: input, RawJSON: true, Sprite: DefaultSprite, OutputPath: output, Canonical: true,
		})
		require.NoError(t, err)
		require.NoError(t, a.Run(context.Background()))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, `{"blocks":{"0":{"fields":{"VARIABLE":[1,"1"]},"inputs":{"VALUE":[2,"5"]},"next":null,"opcode":"data_setvariableto","parent":null}},"build_order":["0"],"container":{"lists":{},"variables":{"1":"0"}},"ids":2,"start":"0"}`, string(data))
	})

	t.Run("failure leaves no output", func(t *testing.T) {
		dir := t.TempDir()
		input := testutil.AcceptanceProject().WriteArchive(t, dir, "game.sb3")
		output := filepath.Join(dir, "out.scrape")

		a, err := NewApp(&testutil.SafeBuffer{}, &Config{InputPath: input, Sprite: "Nobody", OutputPath: output})
		require.NoError(t, err)
		err = a.Run(context.Background())
		assert.ErrorIs(t, err, compiler.ErrUnknownTarget)

		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))
	})
	t.Run("unencodable list value leaves no output", func(t *testing.T) {
		dir := t.TempDir()
		input := testutil.AcceptanceProject().
			List("big", "huge", json.Number("1e999")).
			WriteArchive(t, dir, "game.sb3")
		output := filepath.Join(dir, "out.scrape")

		a, err := NewApp(&testutil.SafeBuffer{}, &Config{InputPath: input, Sprite: DefaultSprite, OutputPath: output})
		require.NoError(t, err)
		err = a.Run(context.Background())
		assert.ErrorContains(t, err, "canonicalize document")

		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".scrape-")
		}
	})
}
