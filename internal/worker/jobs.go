package worker

import (
	"context"

	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/repository"
)

// ImportDatasetJob loads one flashcard dataset and replaces its rows in the
// character catalog.
type ImportDatasetJob struct {
	Loader  EntryLoader
	Repo    repository.CharacterRepository
	Dataset string
}

func (j *ImportDatasetJob) Name() string { return "import_dataset" }

func (j *ImportDatasetJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("dataset", j.Dataset)
	log.Info("starting dataset import")

	entries, err := j.Loader.LoadEntries(ctx, []string{j.Dataset})
	if err != nil {
		log.Error("failed to load dataset: %v", err)
		return err
	}

	if ctx.Err() != nil {
		log.Warn("import cancelled: %v", ctx.Err())
		return ctx.Err()
	}

	if err := j.Repo.ReplaceDataset(ctx, j.Dataset, entries); err != nil {
		log.Error("failed to store dataset: %v", err)
		return err
	}

	log.Info("imported %d entries", len(entries))
	return nil
}
