package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanaflash/internal/models"
)

func TestCharacterEntry_DecodesKana(t *testing.T) {
	var e models.CharacterEntry
	require.NoError(t, json.Unmarshal([]byte(`{"kana":"か","romaji":"ka"}`), &e))

	assert.Equal(t, models.KindKana, e.Kind)
	assert.Equal(t, "か", e.Prompt())
	assert.Equal(t, "ka", e.Answer())
}

func TestCharacterEntry_DecodesKanji(t *testing.T) {
	var e models.CharacterEntry
	require.NoError(t, json.Unmarshal([]byte(`{"kanji":"山","kana":"やま","meaning":"mountain","category":"Nature"}`), &e))

	assert.Equal(t, models.KindKanji, e.Kind)
	assert.Equal(t, "山", e.Prompt())
	assert.Equal(t, "やま", e.Answer(), "kanji cards are answered with their kana reading")
	assert.Equal(t, "mountain", e.Meaning)
	assert.Equal(t, "Nature", e.Category)
}

func TestCharacterEntry_RejectsUnknownShape(t *testing.T) {
	tests := []string{
		`{"english":"mountain"}`,
		`{"kanji":"山"}`,
		`{"romaji":"ka"}`,
		`"か"`,
	}
	for _, in := range tests {
		var e models.CharacterEntry
		assert.Error(t, json.Unmarshal([]byte(in), &e), in)
	}
}

func TestCharacterEntry_MarshalKeepsFileShape(t *testing.T) {
	out, err := json.Marshal([]models.CharacterEntry{
		models.NewKana("ア", "a"),
		models.NewKanji("水", "みず", "water", ""),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `[{"kana":"ア","romaji":"a"},{"kanji":"水","kana":"みず","meaning":"water"}]`, string(out))
}

func TestEntryKind_String(t *testing.T) {
	assert.Equal(t, "kana", models.KindKana.String())
	assert.Equal(t, "kanji", models.KindKanji.String())
	assert.Equal(t, "unknown", models.EntryKind(0).String())
}
