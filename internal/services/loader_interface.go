package services

import (
	"context"

	"github.com/vytor/kanaflash/internal/models"
)

// DatasetLoader fetches flashcard and quiz data; satisfied by *loader.Loader.
type DatasetLoader interface {
	LoadEntries(ctx context.Context, names []string) ([]models.CharacterEntry, error)
	LoadQuiz(ctx context.Context, name string) ([]models.QuizItem, error)
}
