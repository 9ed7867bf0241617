// Package testutil builds project fixtures for tests.
package testutil

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/scrapec/internal/project"
)

// StageName is the name given to the stage target of built projects.
const StageName = "Stage"

// Block describes one node record. Empty Next and Parent encode as null.
type Block struct {
	Opcode string
	Next   string
	Parent string
	Inputs map[string][]any
	Fields map[string][]any
}

func (b Block) toJSON() map[string]any {
	inputs := b.Inputs
	if inputs == nil {
		inputs = map[string][]any{}
	}
	fields := b.Fields
	if fields == nil {
		fields = map[string][]any{}
	}
	return map[string]any{
		"opcode":   b.Opcode,
		"next":     nullable(b.Next),
		"parent":   nullable(b.Parent),
		"inputs":   inputs,
		"fields":   fields,
		"shadow":   false,
		"topLevel": b.Parent == "",
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ProjectBuilder assembles a project.json document.
type ProjectBuilder struct {
	variables map[string][]any
	lists     map[string][]any
	sprites   []*SpriteBuilder
}

// SpriteBuilder collects the block table of one sprite.
type SpriteBuilder struct {
	name   string
	blocks map[string]any
}

// NewProject returns a builder with an empty stage and no sprites.
func NewProject() *ProjectBuilder {
	return &ProjectBuilder{
		variables: map[string][]any{},
		lists:     map[string][]any{},
	}
}

// Variable declares a stage variable.
func (p *ProjectBuilder) Variable(id, name string, value any) *ProjectBuilder {
	p.variables[id] = []any{name, value}
	return p
}

// List declares a stage list.
func (p *ProjectBuilder) List(id, name string, values ...any) *ProjectBuilder {
	if values == nil {
		values = []any{}
	}
	p.lists[id] = []any{name, values}
	return p
}

// Sprite adds a sprite target and returns its builder.
func (p *ProjectBuilder) Sprite(name string) *SpriteBuilder {
	s := &SpriteBuilder{name: name, blocks: map[string]any{}}
	p.sprites = append(p.sprites, s)
	return s
}

// Block adds a node record.
func (s *SpriteBuilder) Block(id string, b Block) *SpriteBuilder {
	s.blocks[id] = b.toJSON()
	return s
}

// Raw adds a block table entry verbatim, such as a top-level reporter array.
func (s *SpriteBuilder) Raw(id string, v any) *SpriteBuilder {
	s.blocks[id] = v
	return s
}

// Map returns the document as generic JSON values.
func (p *ProjectBuilder) Map() map[string]any {
	targets := []any{
		map[string]any{
			"name":      StageName,
			"isStage":   true,
			"variables": p.variables,
			"lists":     p.lists,
			"blocks":    map[string]any{},
		},
	}
	for _, s := range p.sprites {
		targets = append(targets, map[string]any{
			"name":      s.name,
			"isStage":   false,
			"variables": map[string]any{},
			"lists":     map[string]any{},
			"blocks":    s.blocks,
		})
	}
	return map[string]any{
		"targets": targets,
		"meta":    map[string]any{"semver": "3.0.0"},
	}
}

// JSON returns the encoded project.json document.
func (p *ProjectBuilder) JSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(p.Map())
	require.NoError(t, err)
	return data
}

// Project decodes the document the way the loader does.
func (p *ProjectBuilder) Project(t *testing.T) *project.Project {
	t.Helper()
	proj, err := project.Decode(p.JSON(t))
	require.NoError(t, err)
	return proj
}

// WriteJSON writes the document as a raw project.json file and returns its path.
func (p *ProjectBuilder) WriteJSON(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, p.JSON(t), 0o644))
	return path
}

// WriteArchive writes the document into a .sb3 archive and returns its path.
func (p *ProjectBuilder) WriteArchive(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteArchive(t, filepath.Join(dir, name), map[string][]byte{
		project.ArchiveMember: p.JSON(t),
	})
}

// WriteArchive writes a zip archive with the given members.
func WriteArchive(t *testing.T, path string, members map[string][]byte) string {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// AcceptanceProject returns the smallest valid program: an entry node whose
// successor sets one stage variable to a literal number.
func AcceptanceProject() *ProjectBuilder {
	p := NewProject().Variable("var", "my variable", json.Number("0"))
	p.Sprite("Sprite1").
		Block("flag", Block{Opcode: "event_whenflagclicked", Next: "set"}).
		Block("set", Block{
			Opcode: "data_setvariableto",
			Parent: "flag",
			Inputs: map[string][]any{"VALUE": {1, []any{10, "5"}}},
			Fields: map[string][]any{"VARIABLE": {"my variable", "var"}},
		})
	return p
}
