package worker

import (
	"context"

	"github.com/vytor/kanaflash/internal/models"
)

// EntryLoader loads flashcard datasets; satisfied by *loader.Loader.
type EntryLoader interface {
	LoadEntries(ctx context.Context, names []string) ([]models.CharacterEntry, error)
}
