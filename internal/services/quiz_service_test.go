package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/services"
	"github.com/vytor/kanaflash/internal/session"
	"github.com/vytor/kanaflash/internal/testutil"
	"github.com/vytor/kanaflash/internal/testutil/mocks"
)

func newQuizService(loader services.DatasetLoader) services.QuizService {
	return services.NewQuizService(
		loader,
		services.NewRegistry[*session.MultipleChoice]("quiz session", 8),
		services.NewRandFactory(3),
	)
}

func TestQuizService_Describe(t *testing.T) {
	loader := new(mocks.MockDatasetLoader)
	loader.On("LoadQuiz", mock.Anything, "N5-Lesson-01a").Return(testutil.QuizItems(6), nil)
	loader.On("LoadQuiz", mock.Anything, "big").Return(testutil.QuizItems(25), nil)

	svc := newQuizService(loader)

	d, err := svc.Describe(context.Background(), "N5-Lesson-01a")
	require.NoError(t, err)
	assert.Equal(t, 6, d.Items)
	assert.Equal(t, 6, d.DefaultCount)

	d, err = svc.Describe(context.Background(), "big")
	require.NoError(t, err)
	assert.Equal(t, 10, d.DefaultCount)
}

func TestQuizService_FullSession(t *testing.T) {
	ctx := context.Background()
	items := testutil.QuizItems(8)
	meanings := make(map[string]string, len(items))
	for _, it := range items {
		meanings[it.Glyph] = it.Meaning
	}

	loader := new(mocks.MockDatasetLoader)
	loader.On("LoadQuiz", mock.Anything, "lesson").Return(items, nil)

	svc := newQuizService(loader)
	start, err := svc.Start(ctx, "lesson", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 8, start.Total, "zero count uses the default")

	for i := 0; i < start.Total; i++ {
		q, err := svc.Next(ctx, start.ID)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Len(t, q.Options, session.OptionCount)
		assert.NotEmpty(t, q.Reading)
		assert.Contains(t, q.Options, meanings[q.Glyph])

		_, err = svc.Next(ctx, start.ID)
		assert.True(t, errors.IsConflictError(err), "unanswered question blocks Next")

		choice := meanings[q.Glyph]
		if i == 0 {
			choice = "nope"
		}
		ans, err := svc.Answer(ctx, start.ID, choice)
		require.NoError(t, err)
		assert.Equal(t, i != 0, ans.Correct)
		assert.Equal(t, i == start.Total-1, ans.Done)

		again, err := svc.Answer(ctx, start.ID, meanings[q.Glyph])
		require.NoError(t, err)
		assert.Equal(t, ans, again, "answers are idempotent per question")
	}

	q, err := svc.Next(ctx, start.ID)
	require.NoError(t, err)
	assert.Nil(t, q)

	res, err := svc.Results(ctx, start.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 7, res.Correct)
	require.Len(t, res.Missed, 1)
	assert.False(t, res.Missed[0].IsCorrect)

	require.NoError(t, svc.Abandon(ctx, start.ID))
}

func TestQuizService_StartRejectsThinPools(t *testing.T) {
	tests := []struct {
		name  string
		items []models.QuizItem
	}{
		{name: "too few items", items: testutil.QuizItems(4)},
		{
			name: "too few meanings",
			items: []models.QuizItem{
				{Glyph: "一", Meaning: "one"},
				{Glyph: "二", Meaning: "two"},
				{Glyph: "三", Meaning: "three"},
				{Glyph: "壱", Meaning: "one"},
				{Glyph: "弐", Meaning: "two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := new(mocks.MockDatasetLoader)
			loader.On("LoadQuiz", mock.Anything, "thin").Return(tt.items, nil)

			start, err := newQuizService(loader).Start(context.Background(), "thin", 5, false)
			assert.Nil(t, start)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestQuizService_StartErrors(t *testing.T) {
	loader := new(mocks.MockDatasetLoader)
	loader.On("LoadQuiz", mock.Anything, "missing").Return(nil, errors.NewDatasetNotFoundError("missing", nil))
	loader.On("LoadQuiz", mock.Anything, "lesson").Return(testutil.QuizItems(6), nil)
	svc := newQuizService(loader)

	_, err := svc.Start(context.Background(), "missing", 5, false)
	assert.True(t, errors.IsLoadError(err))

	_, err = svc.Start(context.Background(), "lesson", -1, false)
	assert.True(t, errors.IsValidationError(err))
}

func TestQuizService_AnswerBeforeNext(t *testing.T) {
	ctx := context.Background()
	loader := new(mocks.MockDatasetLoader)
	loader.On("LoadQuiz", mock.Anything, "lesson").Return(testutil.QuizItems(6), nil)
	svc := newQuizService(loader)

	start, err := svc.Start(ctx, "lesson", 5, false)
	require.NoError(t, err)

	_, err = svc.Answer(ctx, start.ID, "meaning-a")
	assert.True(t, errors.IsConflictError(err))
	_, err = svc.Results(ctx, start.ID)
	assert.True(t, errors.IsConflictError(err))
}
