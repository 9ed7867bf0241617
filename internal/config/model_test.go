package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	require.NoError(t, r.Validate())

	assert.Equal(t, DefaultEntryOpcode, r.EntryOpcode)
	assert.Len(t, r.Supported, 49)
	assert.Contains(t, r.Supported, "event_whenflagclicked")
	assert.Equal(t, []string{"TIMES", "SUBSTACK"}, r.RequiredInputs["control_repeat"])
	assert.Equal(t, []string{"CONDITION", "SUBSTACK", "SUBSTACK2"}, r.RequiredInputs["control_if_else"])
	assert.NotContains(t, r.RequiredInputs, "sensing_timer")
}

func TestRules_Add(t *testing.T) {
	r := NewRules("start")
	r.Add("op", "A")
	r.Add("op", "B", "C")
	assert.Equal(t, []string{"B", "C"}, r.RequiredInputs["op"])

	r.Add("op")
	assert.NotContains(t, r.RequiredInputs, "op")
	assert.Equal(t, []string{"op", "start"}, r.Opcodes())
}

func TestRules_Merge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		base := NewRules("")
		base.Add("a", "X")

		other := NewRules("go")
		other.Add("b", "Y")

		require.NoError(t, base.Merge(other))
		assert.Equal(t, "go", base.EntryOpcode)
		assert.Equal(t, []string{"a", "b", "go"}, base.Opcodes())
		assert.Equal(t, []string{"Y"}, base.RequiredInputs["b"])
		require.NoError(t, base.Validate())
	})

	t.Run("later declaration without inputs clears requirements", func(t *testing.T) {
		base := NewRules("go")
		base.Add("say", "MESSAGE")
		base.Add("keep", "A")

		other := NewRules("")
		other.Add("say")

		require.NoError(t, base.Merge(other))
		assert.NotContains(t, base.RequiredInputs, "say")
		assert.Contains(t, base.Supported, "say")
		assert.Equal(t, []string{"A"}, base.RequiredInputs["keep"])
	})

	t.Run("later declaration replaces inputs", func(t *testing.T) {
		base := NewRules("go")
		base.Add("say", "MESSAGE", "SECS")

		other := NewRules("")
		other.Add("say", "TEXT")

		require.NoError(t, base.Merge(other))
		assert.Equal(t, []string{"TEXT"}, base.RequiredInputs["say"])
	})

	t.Run("conflicting entry", func(t *testing.T) {
		base := NewRules("one")
		err := base.Merge(NewRules("two"))
		assert.ErrorContains(t, err, "conflicting entry opcodes")
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		base := NewRules("one")
		assert.NoError(t, base.Merge(nil))
	})
}

func TestRules_Validate(t *testing.T) {
	t.Run("missing entry", func(t *testing.T) {
		assert.ErrorContains(t, NewRules("").Validate(), "entry opcode")
	})

	t.Run("required inputs for unknown opcode", func(t *testing.T) {
		r := NewRules("start")
		r.RequiredInputs["ghost"] = []string{"A"}
		assert.ErrorContains(t, r.Validate(), `"ghost"`)
	})
}
