package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kanaflash/internal/models"
)

// MockDatasetLoader is a mock implementation of services.DatasetLoader
type MockDatasetLoader struct {
	mock.Mock
}

func (m *MockDatasetLoader) LoadEntries(ctx context.Context, names []string) ([]models.CharacterEntry, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CharacterEntry), args.Error(1)
}

func (m *MockDatasetLoader) LoadQuiz(ctx context.Context, name string) ([]models.QuizItem, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizItem), args.Error(1)
}
