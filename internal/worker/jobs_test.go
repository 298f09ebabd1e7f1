package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/repository/sqlite"
	"github.com/vytor/kanaflash/internal/testutil"
	"github.com/vytor/kanaflash/internal/testutil/mocks"
	"github.com/vytor/kanaflash/internal/worker"
)

func TestImportDatasetJob_StoresEntries(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := sqlite.NewCharacterRepository(db)

	entries := testutil.HiraganaEntries(12)
	loader := new(mocks.MockDatasetLoader)
	loader.On("LoadEntries", mock.Anything, []string{"hiragana"}).Return(entries, nil)

	job := &worker.ImportDatasetJob{Loader: loader, Repo: repo, Dataset: "hiragana"}
	require.NoError(t, job.Run(context.Background()))

	got, err := repo.List(context.Background(), models.CharacterFilter{Dataset: "hiragana"})
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	loader.AssertExpectations(t)
}

func TestImportDatasetJob_LoadFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := sqlite.NewCharacterRepository(db)

	loader := new(mocks.MockDatasetLoader)
	loader.On("LoadEntries", mock.Anything, []string{"kanji"}).
		Return(nil, apperrors.NewDatasetNotFoundError("kanji", nil))

	job := &worker.ImportDatasetJob{Loader: loader, Repo: repo, Dataset: "kanji"}
	err := job.Run(context.Background())
	assert.True(t, apperrors.IsLoadError(err))

	datasets, err := repo.Datasets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, datasets, "failed imports leave no catalog record")
}
