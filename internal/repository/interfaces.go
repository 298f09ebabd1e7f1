package repository

import (
	"context"

	"github.com/vytor/kanaflash/internal/models"
)

// CharacterRepository handles catalog data access
type CharacterRepository interface {
	ReplaceDataset(ctx context.Context, dataset string, entries []models.CharacterEntry) error
	List(ctx context.Context, filter models.CharacterFilter) ([]models.CharacterEntry, error)
	Count(ctx context.Context, filter models.CharacterFilter) (int, error)
	Categories(ctx context.Context, dataset string) ([]string, error)
	Datasets(ctx context.Context) ([]models.DatasetSummary, error)
}
