package flags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gamebook-hub/internal/flags"
	"gamebook-hub/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func strengthSchema() []models.AttributeDefinition {
	return []models.AttributeDefinition{
		{
			Key:     "strength",
			Label:   "Сила",
			Type:    models.AttributeInteger,
			Default: floatPtr(8),
		},
		{
			Key:  "class",
			Type: models.AttributeText,
		},
	}
}

func TestSatisfies_EmptyRequirement(t *testing.T) {
	assert.True(t, flags.Satisfies(nil, flags.Map{}, ""))
	assert.True(t, flags.Satisfies(nil, flags.Map{}, "   "))
	// Полностью неразбираемый вход тоже не блокирует выбор.
	assert.True(t, flags.Satisfies(nil, flags.Map{}, ";;;"))
}

func TestSatisfies_AttributeThreshold(t *testing.T) {
	schema := strengthSchema()

	t.Run("Flag value meets threshold", func(t *testing.T) {
		playerFlags := flags.Parse(`{"strength": 12}`)
		assert.True(t, flags.Satisfies(schema, playerFlags, "strength>=10"))
	})

	t.Run("Flag value below threshold", func(t *testing.T) {
		playerFlags := flags.Parse(`{"strength": 9}`)
		assert.False(t, flags.Satisfies(schema, playerFlags, "strength>=10"))
	})

	t.Run("Falls back to schema default when flag unset", func(t *testing.T) {
		assert.True(t, flags.Satisfies(schema, flags.Map{}, "strength>=8"))
		assert.False(t, flags.Satisfies(schema, flags.Map{}, "strength>=9"))
	})

	t.Run("Attribute matched by label", func(t *testing.T) {
		playerFlags := flags.Parse(`{"strength": 12}`)
		assert.True(t, flags.Satisfies(schema, playerFlags, "Сила>=10"))
	})

	t.Run("Equality operator still means threshold for numbers", func(t *testing.T) {
		playerFlags := flags.Parse(`{"strength": 12}`)
		assert.True(t, flags.Satisfies(schema, playerFlags, "strength=10"))
	})

	t.Run("Numeric string in JSON requirement is a threshold", func(t *testing.T) {
		// {"strength": "5"} из JSON-документа приходит строкой, но сравнивается
		// как порог, а не как равенство строк.
		assert.True(t, flags.Satisfies(schema, flags.Map{}, `{"strength": "5"}`))
		assert.False(t, flags.Satisfies(schema, flags.Map{}, `{"strength": "9"}`))

		playerFlags := flags.Parse(`{"strength": 12}`)
		assert.True(t, flags.Satisfies(schema, playerFlags, `{"strength": "10"}`))
	})

	t.Run("No flag and no default fails", func(t *testing.T) {
		noDefault := []models.AttributeDefinition{{Key: "agility", Type: models.AttributeInteger}}
		assert.False(t, flags.Satisfies(noDefault, flags.Map{}, "agility>=1"))
	})
}

func TestSatisfies_AttributeEquality(t *testing.T) {
	schema := strengthSchema()

	t.Run("Non-numeric requirement on attribute compares as equality", func(t *testing.T) {
		playerFlags := flags.Parse(`{"class": "rogue"}`)
		assert.True(t, flags.Satisfies(schema, playerFlags, "class=Rogue"))
		assert.False(t, flags.Satisfies(schema, playerFlags, "class=Knight"))
	})

	t.Run("Bare attribute key is not a threshold", func(t *testing.T) {
		// "strength" без значения приводится к true и сравнивается как
		// равенство, а не как порог >= 1.
		playerFlags := flags.Parse(`{"strength": 12}`)
		assert.False(t, flags.Satisfies(schema, playerFlags, "strength"))
	})
}

func TestSatisfies_PlainFlags(t *testing.T) {
	t.Run("Bare flag requires stored true", func(t *testing.T) {
		playerFlags := flags.Parse(`{"has_key": true}`)
		assert.True(t, flags.Satisfies(nil, playerFlags, "has_key"))
		assert.False(t, flags.Satisfies(nil, flags.Map{}, "has_key"))
	})

	t.Run("Missing flag fails the whole requirement", func(t *testing.T) {
		playerFlags := flags.Parse(`{"gold": 10}`)
		assert.False(t, flags.Satisfies(nil, playerFlags, "gold=10; has_map"))
	})

	t.Run("Keys are case-insensitive", func(t *testing.T) {
		playerFlags := flags.Parse(`{"Has_Key": true}`)
		assert.True(t, flags.Satisfies(nil, playerFlags, "HAS_KEY"))
	})

	t.Run("Conjunction of requirements", func(t *testing.T) {
		playerFlags := flags.Parse(`{"gold": 10, "brave": true}`)
		assert.True(t, flags.Satisfies(nil, playerFlags, "gold=10; brave"))
		assert.False(t, flags.Satisfies(nil, playerFlags, "gold=11; brave"))
	})
}

func TestCurrentAttributeValue(t *testing.T) {
	def := &models.AttributeDefinition{Key: "strength", Default: floatPtr(8)}

	t.Run("Stored numeric flag wins over default", func(t *testing.T) {
		v, ok := flags.CurrentAttributeValue(def, flags.Parse(`{"strength": 12}`))
		assert.True(t, ok)
		assert.Equal(t, 12.0, v)
	})

	t.Run("Default when flag absent", func(t *testing.T) {
		v, ok := flags.CurrentAttributeValue(def, flags.Map{})
		assert.True(t, ok)
		assert.Equal(t, 8.0, v)
	})

	t.Run("Unset without default", func(t *testing.T) {
		bare := &models.AttributeDefinition{Key: "agility"}
		_, ok := flags.CurrentAttributeValue(bare, flags.Map{})
		assert.False(t, ok)
	})
}
