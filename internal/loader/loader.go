// Package loader retrieves character and quiz datasets as JSON. A load
// either returns every requested dataset or a LOAD_ERROR; there are no
// partial results, retries or caching.
package loader

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/models"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Loader decodes datasets fetched from a Source.
type Loader struct {
	src Source
}

// New creates a Loader over src.
func New(src Source) *Loader {
	return &Loader{src: src}
}

// ValidName reports whether name can be used as a dataset name.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// LoadEntries loads the selected character sets and concatenates them in
// selection order.
func (l *Loader) LoadEntries(ctx context.Context, names []string) ([]models.CharacterEntry, error) {
	sets, err := l.fetchAll(ctx, names)
	if err != nil {
		return nil, err
	}
	var out []models.CharacterEntry
	for _, set := range sets {
		out = append(out, set...)
	}
	return out, nil
}

// LoadEntrySets loads the selected character sets, keeping each separate.
func (l *Loader) LoadEntrySets(ctx context.Context, names []string) (map[string][]models.CharacterEntry, error) {
	sets, err := l.fetchAll(ctx, names)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]models.CharacterEntry, len(names))
	for i, name := range names {
		out[name] = sets[i]
	}
	return out, nil
}

// LoadQuiz loads one multiple-choice question set.
func (l *Loader) LoadQuiz(ctx context.Context, name string) ([]models.QuizItem, error) {
	var items []models.QuizItem
	if err := l.fetchInto(ctx, name, &items); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithPrefix("loader").Debug("loaded quiz %s: %d items", name, len(items))
	return items, nil
}

// fetchAll runs one fetch per dataset concurrently; the first failure
// cancels the rest.
func (l *Loader) fetchAll(ctx context.Context, names []string) ([][]models.CharacterEntry, error) {
	if len(names) == 0 {
		return nil, errors.NewLoadError("", "select at least one card set", nil)
	}

	sets := make([][]models.CharacterEntry, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			return l.fetchInto(gctx, name, &sets[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithPrefix("loader")
	for i, name := range names {
		log.Debug("loaded %s: %d entries", name, len(sets[i]))
	}
	return sets, nil
}

func (l *Loader) fetchInto(ctx context.Context, name string, v any) error {
	if !ValidName(name) {
		return errors.NewLoadError(name, "invalid dataset name", nil)
	}
	data, err := l.src.Fetch(ctx, name)
	if stderrors.Is(err, ErrNotFound) {
		return errors.NewDatasetNotFoundError(name, err)
	}
	if err != nil {
		return errors.NewLoadError(name, "fetch failed", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewLoadError(name, "malformed JSON", err)
	}
	return nil
}
