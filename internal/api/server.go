package api

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/vytor/kanaflash/internal/services"
)

// ImportWaiter blocks until queued catalog imports have finished;
// satisfied by *worker.Pool.
type ImportWaiter interface {
	Wait(ctx context.Context) error
}

type Server struct {
	FlashcardService services.FlashcardService
	QuizService      services.QuizService
	CatalogService   services.CatalogService
	// DB backs the readiness probe; nil skips the check.
	DB *sql.DB
	// Imports holds readiness until the catalog imports drain; nil skips it.
	Imports ImportWaiter
	// Web is the static web root served for every non-API path.
	Web fs.FS
}
