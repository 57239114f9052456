package flags_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"gamebook-hub/internal/flags"
	"gamebook-hub/internal/models"
)

func TestApplyFlags(t *testing.T) {
	t.Run("Empty sets leaves flags untouched", func(t *testing.T) {
		current := json.RawMessage(`{"gold":10}`)
		assert.Equal(t, current, flags.ApplyFlags(current, ""))
		assert.Equal(t, current, flags.ApplyFlags(current, "   "))
	})

	t.Run("New keys are added", func(t *testing.T) {
		merged := flags.ApplyFlags(models.EmptyFlags, "gold=10; brave")

		parsed, ok := flags.ParseDocument(string(merged))
		assert.True(t, ok)
		v, _ := parsed.Get("gold")
		assert.Equal(t, flags.NumberValue(10), v)
		v, _ = parsed.Get("brave")
		assert.Equal(t, flags.BoolValue(true), v)
	})

	t.Run("Right-hand side overwrites existing keys", func(t *testing.T) {
		current := json.RawMessage(`{"gold":10,"title":"Knight"}`)
		merged := flags.ApplyFlags(current, "gold=3")

		parsed, _ := flags.ParseDocument(string(merged))
		v, _ := parsed.Get("gold")
		assert.Equal(t, flags.NumberValue(3), v)
		v, _ = parsed.Get("title")
		assert.Equal(t, flags.TextValue("Knight"), v)
	})

	t.Run("JSON sets document is accepted too", func(t *testing.T) {
		merged := flags.ApplyFlags(models.EmptyFlags, `{"cursed": true, "hp": 4}`)

		parsed, _ := flags.ParseDocument(string(merged))
		v, _ := parsed.Get("cursed")
		assert.Equal(t, flags.BoolValue(true), v)
		v, _ = parsed.Get("hp")
		assert.Equal(t, flags.NumberValue(4), v)
	})

	t.Run("Applying the same sets twice is idempotent", func(t *testing.T) {
		once := flags.ApplyFlags(models.EmptyFlags, "gold=10; brave")
		twice := flags.ApplyFlags(once, "gold=10; brave")
		assert.JSONEq(t, string(once), string(twice))
	})

	t.Run("Corrupted current flags degrade to sets only", func(t *testing.T) {
		merged := flags.ApplyFlags(json.RawMessage(`not json`), "gold=1")

		parsed, ok := flags.ParseDocument(string(merged))
		assert.True(t, ok)
		assert.Len(t, parsed, 1)
	})

	t.Run("Keys are canonicalized to lower case", func(t *testing.T) {
		merged := flags.ApplyFlags(json.RawMessage(`{"GOLD":1}`), "Gold=2")

		parsed, _ := flags.ParseDocument(string(merged))
		assert.Len(t, parsed, 1)
		v, _ := parsed.Get("gold")
		assert.Equal(t, flags.NumberValue(2), v)
	})
}
