package services

import (
	"context"
	"time"

	"github.com/vytor/kanaflash/internal/charlist"
	"github.com/vytor/kanaflash/internal/config"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/jobs"
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/repository"
)

// DatasetInfo describes a registered flashcard dataset and its catalog state.
type DatasetInfo struct {
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	Layout     config.Layout `json:"layout"`
	Imported   bool          `json:"imported"`
	Count      int           `json:"count"`
	Kana       int           `json:"kana"`
	Kanji      int           `json:"kanji"`
	Categories []string      `json:"categories,omitempty"`
	ImportedAt *time.Time    `json:"imported_at,omitempty"`
}

// CatalogService serves the character list view from the imported catalog
type CatalogService interface {
	Datasets(ctx context.Context) ([]DatasetInfo, error)
	List(ctx context.Context, dataset string, category string) (*charlist.List, error)
	Reimport(ctx context.Context, dataset string) error
}

type catalogService struct {
	repo     repository.CharacterRepository
	queue    jobs.ImportQueue
	datasets config.Datasets
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.CharacterRepository, queue jobs.ImportQueue, datasets config.Datasets) CatalogService {
	return &catalogService{repo: repo, queue: queue, datasets: datasets}
}

func (s *catalogService) find(name string) (config.Dataset, error) {
	d, ok := s.datasets.Find(name)
	if !ok {
		return config.Dataset{}, errors.NewNotFoundError("dataset", name)
	}
	return d, nil
}

func (s *catalogService) Datasets(ctx context.Context) ([]DatasetInfo, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	summaries, err := s.repo.Datasets(ctx)
	if err != nil {
		log.Error("failed to list imported datasets: %v", err)
		return nil, errors.NewInternalError(err)
	}
	imported := make(map[string]models.DatasetSummary, len(summaries))
	for _, sum := range summaries {
		imported[sum.Name] = sum
	}

	out := make([]DatasetInfo, 0, len(s.datasets))
	for _, d := range s.datasets {
		info := DatasetInfo{Name: d.Name, Title: d.Title, Layout: d.Layout}
		if sum, ok := imported[d.Name]; ok {
			at := sum.ImportedAt
			info.Imported = true
			info.Count = sum.Count
			info.ImportedAt = &at
			if info.Kana, err = s.repo.Count(ctx, models.CharacterFilter{Dataset: d.Name, Kind: models.KindKana}); err != nil {
				log.Error("failed to count kana for %s: %v", d.Name, err)
				return nil, errors.NewInternalError(err)
			}
			if info.Kanji, err = s.repo.Count(ctx, models.CharacterFilter{Dataset: d.Name, Kind: models.KindKanji}); err != nil {
				log.Error("failed to count kanji for %s: %v", d.Name, err)
				return nil, errors.NewInternalError(err)
			}
			if d.Layout == config.LayoutKanji {
				cats, err := s.repo.Categories(ctx, d.Name)
				if err != nil {
					log.Error("failed to list categories for %s: %v", d.Name, err)
					return nil, errors.NewInternalError(err)
				}
				info.Categories = cats
			}
		}
		out = append(out, info)
	}
	return out, nil
}

// List arranges a dataset for display. A dataset whose import has not
// finished yet is reported as a conflict.
func (s *catalogService) List(ctx context.Context, dataset string, category string) (*charlist.List, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	d, err := s.find(dataset)
	if err != nil {
		return nil, err
	}

	summaries, err := s.repo.Datasets(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	ready := false
	for _, sum := range summaries {
		if sum.Name == dataset {
			ready = true
			break
		}
	}
	if !ready {
		return nil, errors.NewConflictError("dataset " + dataset + " has not been imported yet")
	}

	entries, err := s.repo.List(ctx, models.CharacterFilter{Dataset: dataset, Category: category})
	if err != nil {
		log.Error("failed to list characters: %v", err)
		return nil, errors.NewInternalError(err)
	}

	l := charlist.Build(d, entries)
	return &l, nil
}

func (s *catalogService) Reimport(ctx context.Context, dataset string) error {
	if _, err := s.find(dataset); err != nil {
		return err
	}
	if err := s.queue.EnqueueImport(dataset); err != nil {
		logger.FromContext(ctx).WithPrefix("catalog").Error("failed to enqueue import: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
