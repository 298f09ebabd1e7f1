package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Layout names the list-view grouping used for a flashcard dataset.
type Layout string

const (
	LayoutKana  Layout = "kana"
	LayoutKanji Layout = "kanji"
)

// Dataset is one selectable flashcard set.
type Dataset struct {
	Name   string `toml:"name"`
	Title  string `toml:"title"`
	Layout Layout `toml:"layout"`
}

// Datasets is the flashcard dataset registry, in display order.
type Datasets []Dataset

type datasetsFile struct {
	Flashcards Datasets `toml:"flashcards"`
}

var datasetNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultDatasets is the registry used when no datasets file exists.
func DefaultDatasets() Datasets {
	return Datasets{
		{Name: "hiragana", Title: "Hiragana", Layout: LayoutKana},
		{Name: "katakana", Title: "Katakana", Layout: LayoutKana},
		{Name: "kanji", Title: "Kanji", Layout: LayoutKanji},
	}
}

// LoadDatasets reads the flashcard dataset registry from a TOML file.
// A missing file is not an error and yields the defaults.
func LoadDatasets(path string) (Datasets, error) {
	if path == "" {
		return DefaultDatasets(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultDatasets(), nil
		}
		return nil, fmt.Errorf("failed to stat datasets file: %w", err)
	}

	var f datasetsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode datasets file: %w", err)
	}
	for i := range f.Flashcards {
		if f.Flashcards[i].Title == "" {
			f.Flashcards[i].Title = f.Flashcards[i].Name
		}
		if f.Flashcards[i].Layout == "" {
			f.Flashcards[i].Layout = LayoutKana
		}
	}
	if err := validateDatasets(f.Flashcards); err != nil {
		return nil, err
	}
	return f.Flashcards, nil
}

// Find looks up a registered dataset by name.
func (ds Datasets) Find(name string) (Dataset, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

// Names returns the registered dataset names in registry order.
func (ds Datasets) Names() []string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Name)
	}
	return names
}

func validateDatasets(ds Datasets) error {
	if len(ds) == 0 {
		return fmt.Errorf("DATASETS must register at least one flashcard set")
	}
	seen := make(map[string]bool, len(ds))
	for _, d := range ds {
		if !datasetNameRe.MatchString(d.Name) {
			return fmt.Errorf("DATASETS name %q must contain only letters, digits, '-' or '_'", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("DATASETS name %q registered twice", d.Name)
		}
		seen[d.Name] = true
		if d.Layout != LayoutKana && d.Layout != LayoutKanji {
			return fmt.Errorf("DATASETS layout %q for %s must be kana or kanji", d.Layout, d.Name)
		}
	}
	return nil
}
