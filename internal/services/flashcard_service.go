package services

import (
	"context"

	"github.com/vytor/kanaflash/internal/config"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/session"
)

// FlashcardStart is returned when a flashcard session begins.
type FlashcardStart struct {
	ID         string             `json:"id"`
	Sets       []string           `json:"sets"`
	Resolution session.Resolution `json:"resolution"`
	Prompt     session.Prompt     `json:"prompt"`
}

// FlashcardView is a snapshot of a live flashcard session.
type FlashcardView struct {
	ID     string          `json:"id"`
	State  string          `json:"state"`
	Total  int             `json:"total"`
	Tally  session.Tally   `json:"tally"`
	Prompt *session.Prompt `json:"prompt,omitempty"`
}

// FlashcardService handles free-text flashcard sessions
type FlashcardService interface {
	Start(ctx context.Context, sets []string, length int) (*FlashcardStart, error)
	Get(ctx context.Context, id string) (*FlashcardView, error)
	Answer(ctx context.Context, id string, text string) (*session.Feedback, error)
	Results(ctx context.Context, id string) (*session.FlashcardResults, error)
	Restart(ctx context.Context, id string, sets []string, length int) (*FlashcardStart, error)
	Abandon(ctx context.Context, id string) error
}

type flashcardService struct {
	loader   DatasetLoader
	datasets config.Datasets
	sessions *Registry[*session.Flashcard]
	rand     *RandFactory
}

// NewFlashcardService creates a new FlashcardService drawing from the
// registered datasets.
func NewFlashcardService(loader DatasetLoader, datasets config.Datasets, sessions *Registry[*session.Flashcard], rand *RandFactory) FlashcardService {
	return &flashcardService{
		loader:   loader,
		datasets: datasets,
		sessions: sessions,
		rand:     rand,
	}
}

// loadCards fetches the selected sets; only registered sets may be drawn.
func (s *flashcardService) loadCards(ctx context.Context, log *logger.Logger, sets []string) ([]models.CharacterEntry, error) {
	for _, name := range sets {
		if _, ok := s.datasets.Find(name); !ok {
			return nil, errors.NewDatasetNotFoundError(name, nil)
		}
	}

	entries, err := s.loader.LoadEntries(ctx, sets)
	if err != nil {
		log.Warn("failed to load card sets: %v", err)
		return nil, err
	}
	return entries, nil
}

func (s *flashcardService) Start(ctx context.Context, sets []string, length int) (*FlashcardStart, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcards")
	log.Debug("starting flashcard session: sets=%v, length=%d", sets, length)

	entries, err := s.loadCards(ctx, log, sets)
	if err != nil {
		return nil, err
	}

	fc := session.NewFlashcard(s.rand.New())
	res, err := fc.Start(entries, length)
	if err != nil {
		return nil, err
	}
	if res.Adjusted {
		log.Info("quiz length adjusted: requested=%d, available=%d, length=%d", res.Requested, res.Available, res.Length)
	}

	prompt, _ := fc.CurrentPrompt()
	id := s.sessions.Add(fc)
	log.WithField("session", id).Info("flashcard session started with %d cards", fc.Len())

	return &FlashcardStart{ID: id, Sets: sets, Resolution: res, Prompt: prompt}, nil
}

func flashcardView(id string, fc *session.Flashcard) *FlashcardView {
	v := &FlashcardView{
		ID:    id,
		State: fc.State().String(),
		Total: fc.Len(),
		Tally: fc.Tally(),
	}
	if p, ok := fc.CurrentPrompt(); ok {
		v.Prompt = &p
	}
	return v
}

func (s *flashcardService) Get(ctx context.Context, id string) (*FlashcardView, error) {
	var view *FlashcardView
	err := s.sessions.With(id, func(fc *session.Flashcard) error {
		view = flashcardView(id, fc)
		return nil
	})
	return view, err
}

func (s *flashcardService) Answer(ctx context.Context, id string, text string) (*session.Feedback, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcards").WithField("session", id)

	var fb session.Feedback
	err := s.sessions.With(id, func(fc *session.Flashcard) error {
		var err error
		fb, err = fc.SubmitAnswer(text)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug("answer graded: correct=%t, done=%t", fb.Correct, fb.Done)
	return &fb, nil
}

func (s *flashcardService) Results(ctx context.Context, id string) (*session.FlashcardResults, error) {
	var res session.FlashcardResults
	err := s.sessions.With(id, func(fc *session.Flashcard) error {
		var err error
		res, err = fc.Results()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Restart discards the session's progress and deals a fresh deck from sets
// under the same handle. An invalid request leaves the current deck alone.
func (s *flashcardService) Restart(ctx context.Context, id string, sets []string, length int) (*FlashcardStart, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcards").WithField("session", id)
	log.Debug("restarting flashcard session: sets=%v, length=%d", sets, length)

	entries, err := s.loadCards(ctx, log, sets)
	if err != nil {
		return nil, err
	}
	if _, err := session.ResolveLength(length, len(entries)); err != nil {
		return nil, err
	}

	var start *FlashcardStart
	err = s.sessions.With(id, func(fc *session.Flashcard) error {
		fc.Restart()
		res, err := fc.Start(entries, length)
		if err != nil {
			return err
		}
		prompt, _ := fc.CurrentPrompt()
		start = &FlashcardStart{ID: id, Sets: sets, Resolution: res, Prompt: prompt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("flashcard session restarted with %d cards", start.Resolution.Length)
	return start, nil
}

func (s *flashcardService) Abandon(ctx context.Context, id string) error {
	if !s.sessions.Remove(id) {
		return errors.NewNotFoundError("flashcard session", id)
	}
	logger.FromContext(ctx).WithPrefix("flashcards").WithField("session", id).Debug("session abandoned")
	return nil
}
