package models

import "time"

// CharacterFilter narrows a catalog query. Zero values match everything.
type CharacterFilter struct {
	Dataset  string
	Kind     EntryKind
	Category string
}

// DatasetSummary describes one imported dataset.
type DatasetSummary struct {
	Name       string    `json:"name"`
	Count      int       `json:"count"`
	ImportedAt time.Time `json:"imported_at"`
}
