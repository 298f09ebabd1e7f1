// Package charlist arranges a dataset's characters for the list view.
package charlist

import (
	"github.com/vytor/kanaflash/internal/config"
	"github.com/vytor/kanaflash/internal/models"
)

// RowWidth is the number of cells in a regular row and in each kanji
// category grid.
const RowWidth = 5

// Uncategorized heads kanji entries that carry no category.
const Uncategorized = "Uncategorized"

// SpecialGroups are the kana rows rendered after the regular characters,
// each sized to the members present.
var SpecialGroups = [][]string{
	{"ya", "yu", "yo"},
	{"wa", "wo", "n"},
	{"kya", "kyu", "kyo"},
	{"sha", "shu", "sho"},
	{"cha", "chu", "cho"},
	{"nya", "nyu", "nyo"},
	{"hya", "hyu", "hyo"},
	{"mya", "myu", "myo"},
	{"rya", "ryu", "ryo"},
	{"gya", "gyu", "gyo"},
	{"ja", "ju", "jo"},
	{"bya", "byu", "byo"},
	{"pya", "pyu", "pyo"},
}

// Group is one rendered block. Heading is set for kanji categories only.
type Group struct {
	Heading string                  `json:"heading,omitempty"`
	Columns int                     `json:"columns"`
	Entries []models.CharacterEntry `json:"entries"`
}

// List is the arranged view of one dataset.
type List struct {
	Dataset string        `json:"dataset"`
	Title   string        `json:"title"`
	Layout  config.Layout `json:"layout"`
	Count   int           `json:"count"`
	Groups  []Group       `json:"groups"`
}

// Build arranges entries according to the dataset's layout.
func Build(ds config.Dataset, entries []models.CharacterEntry) List {
	l := List{
		Dataset: ds.Name,
		Title:   ds.Title,
		Layout:  ds.Layout,
		Count:   len(entries),
		Groups:  []Group{},
	}
	switch ds.Layout {
	case config.LayoutKanji:
		l.Groups = ByCategory(entries)
	default:
		l.Groups = KanaRows(entries)
	}
	return l
}

func specialIndex(romaji string) int {
	for i, g := range SpecialGroups {
		for _, r := range g {
			if r == romaji {
				return i
			}
		}
	}
	return -1
}

// KanaRows splits entries into rows of RowWidth regular characters followed
// by the special groups in their fixed order.
func KanaRows(entries []models.CharacterEntry) []Group {
	var regular []models.CharacterEntry
	special := make([][]models.CharacterEntry, len(SpecialGroups))

	for _, e := range entries {
		if i := specialIndex(e.Romaji); i >= 0 {
			special[i] = append(special[i], e)
			continue
		}
		regular = append(regular, e)
	}

	groups := []Group{}
	for start := 0; start < len(regular); start += RowWidth {
		end := min(start+RowWidth, len(regular))
		groups = append(groups, Group{Columns: RowWidth, Entries: regular[start:end]})
	}
	for _, members := range special {
		if len(members) == 0 {
			continue
		}
		groups = append(groups, Group{Columns: len(members), Entries: members})
	}
	return groups
}

// ByCategory groups kanji entries by category in first-seen order.
func ByCategory(entries []models.CharacterEntry) []Group {
	groups := []Group{}
	index := make(map[string]int)

	for _, e := range entries {
		heading := e.Category
		if heading == "" {
			heading = Uncategorized
		}
		i, ok := index[heading]
		if !ok {
			i = len(groups)
			index[heading] = i
			groups = append(groups, Group{Heading: heading, Columns: RowWidth})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
