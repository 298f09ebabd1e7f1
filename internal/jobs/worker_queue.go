package jobs

import (
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/repository"
	"github.com/vytor/kanaflash/internal/worker"
)

// WorkerQueue implements ImportQueue using a worker pool
type WorkerQueue struct {
	importPool *worker.Pool
	loader     worker.EntryLoader
	repo       repository.CharacterRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	importPool *worker.Pool,
	loader worker.EntryLoader,
	repo repository.CharacterRepository,
) ImportQueue {
	return &WorkerQueue{
		importPool: importPool,
		loader:     loader,
		repo:       repo,
	}
}

func (q *WorkerQueue) EnqueueImport(dataset string) error {
	err := q.importPool.Submit(&worker.ImportDatasetJob{
		Loader:  q.loader,
		Repo:    q.repo,
		Dataset: dataset,
	})
	if err != nil {
		return err
	}
	logger.Default().WithPrefix("import-queue").
		Debug("queued import: dataset=%s, backlog=%d", dataset, q.importPool.QueueSize())
	return nil
}
