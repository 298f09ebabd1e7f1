package models

import (
	"encoding/json"
	"fmt"
)

// EntryKind tags a CharacterEntry as kana or kanji.
type EntryKind int

const (
	KindKana EntryKind = iota + 1
	KindKanji
)

func (k EntryKind) String() string {
	switch k {
	case KindKana:
		return "kana"
	case KindKanji:
		return "kanji"
	default:
		return "unknown"
	}
}

// CharacterEntry is one drillable unit. Kana entries carry Romaji; kanji
// entries carry Reading, Meaning and an optional Category.
type CharacterEntry struct {
	Kind     EntryKind `json:"-"`
	Glyph    string    `json:"glyph"`
	Romaji   string    `json:"romaji,omitempty"`
	Reading  string    `json:"reading,omitempty"`
	Meaning  string    `json:"meaning,omitempty"`
	Category string    `json:"category,omitempty"`
}

// NewKana builds a kana entry.
func NewKana(glyph, romaji string) CharacterEntry {
	return CharacterEntry{Kind: KindKana, Glyph: glyph, Romaji: romaji}
}

// NewKanji builds a kanji entry.
func NewKanji(glyph, reading, meaning, category string) CharacterEntry {
	return CharacterEntry{Kind: KindKanji, Glyph: glyph, Reading: reading, Meaning: meaning, Category: category}
}

// Prompt is the glyph shown on the card.
func (e CharacterEntry) Prompt() string {
	return e.Glyph
}

// Answer is the expected free-text answer: romaji for kana, the kana
// reading for kanji.
func (e CharacterEntry) Answer() string {
	if e.Kind == KindKana {
		return e.Romaji
	}
	return e.Reading
}

// rawEntry mirrors the dataset files: kana sets use {kana, romaji}, kanji
// sets use {kanji, kana, meaning, category}.
type rawEntry struct {
	Kana     string  `json:"kana"`
	Romaji   *string `json:"romaji"`
	Kanji    string  `json:"kanji"`
	Meaning  string  `json:"meaning"`
	Category string  `json:"category"`
}

// UnmarshalJSON decides the variant once, from the dataset shape.
func (e *CharacterEntry) UnmarshalJSON(data []byte) error {
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Romaji != nil && raw.Kana != "":
		*e = NewKana(raw.Kana, *raw.Romaji)
	case raw.Kanji != "" && raw.Kana != "":
		*e = NewKanji(raw.Kanji, raw.Kana, raw.Meaning, raw.Category)
	default:
		return fmt.Errorf("entry %s is neither a kana nor a kanji card", string(data))
	}
	return nil
}

// MarshalJSON writes the dataset file shape back out.
func (e CharacterEntry) MarshalJSON() ([]byte, error) {
	if e.Kind == KindKana {
		return json.Marshal(struct {
			Kana   string `json:"kana"`
			Romaji string `json:"romaji"`
		}{e.Glyph, e.Romaji})
	}
	return json.Marshal(struct {
		Kanji    string `json:"kanji"`
		Kana     string `json:"kana"`
		Meaning  string `json:"meaning"`
		Category string `json:"category,omitempty"`
	}{e.Glyph, e.Reading, e.Meaning, e.Category})
}

// ParseEntryKind is the inverse of EntryKind.String.
func ParseEntryKind(s string) (EntryKind, error) {
	switch s {
	case "kana":
		return KindKana, nil
	case "kanji":
		return KindKanji, nil
	default:
		return 0, fmt.Errorf("unknown entry kind %q", s)
	}
}
