package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/kanaflash/internal/db"
	"github.com/vytor/kanaflash/internal/models"
)

// NewTestDB opens an in-memory catalog with all migrations applied.
// Callers close it with MustClose.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	catalog, err := db.OpenMemory()
	require.NoError(t, err)
	return catalog.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// HiraganaEntries returns n kana entries with distinct glyphs and romaji.
func HiraganaEntries(n int) []models.CharacterEntry {
	glyphs := []rune("あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわをん")
	romaji := []string{
		"a", "i", "u", "e", "o", "ka", "ki", "ku", "ke", "ko",
		"sa", "shi", "su", "se", "so", "ta", "chi", "tsu", "te", "to",
		"na", "ni", "nu", "ne", "no", "ha", "hi", "fu", "he", "ho",
		"ma", "mi", "mu", "me", "mo", "ya", "yu", "yo", "ra", "ri",
		"ru", "re", "ro", "wa", "wo", "n",
	}
	if n > len(romaji) {
		n = len(romaji)
	}
	out := make([]models.CharacterEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.NewKana(string(glyphs[i]), romaji[i]))
	}
	return out
}

// QuizItems returns n quiz items whose meanings are all distinct.
func QuizItems(n int) []models.QuizItem {
	out := make([]models.QuizItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.QuizItem{
			Glyph:   string(rune('一' + i)),
			Reading: string(rune('あ' + i)),
			Meaning: "meaning-" + string(rune('a'+i)),
		})
	}
	return out
}
