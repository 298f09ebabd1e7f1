package services

import (
	"context"

	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/session"
)

// QuizDescription tells a client how large a quiz set is before starting.
type QuizDescription struct {
	Name         string `json:"name"`
	Items        int    `json:"items"`
	DefaultCount int    `json:"default_count"`
}

// QuizStart is returned when a multiple-choice session begins.
type QuizStart struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Total         int    `json:"total"`
	RevealReading bool   `json:"reveal_reading"`
}

// QuizOutcome is a finished quiz: every result plus the missed questions
// the results screen lists.
type QuizOutcome struct {
	session.QuizResults
	Missed []models.QuestionResult `json:"missed"`
}

// QuizService handles multiple-choice sessions
type QuizService interface {
	Describe(ctx context.Context, name string) (*QuizDescription, error)
	Start(ctx context.Context, name string, count int, revealReading bool) (*QuizStart, error)
	Next(ctx context.Context, id string) (*session.Question, error)
	Answer(ctx context.Context, id string, choice string) (*QuizAnswer, error)
	Results(ctx context.Context, id string) (*QuizOutcome, error)
	Abandon(ctx context.Context, id string) error
}

// QuizAnswer is the graded result plus whether the session is finished.
type QuizAnswer struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
	Reading       string `json:"kana"`
	Done          bool   `json:"done"`
}

type quizService struct {
	loader   DatasetLoader
	sessions *Registry[*session.MultipleChoice]
	rand     *RandFactory
}

// NewQuizService creates a new QuizService
func NewQuizService(loader DatasetLoader, sessions *Registry[*session.MultipleChoice], rand *RandFactory) QuizService {
	return &quizService{loader: loader, sessions: sessions, rand: rand}
}

func (s *quizService) Describe(ctx context.Context, name string) (*QuizDescription, error) {
	items, err := s.loader.LoadQuiz(ctx, name)
	if err != nil {
		return nil, err
	}
	return &QuizDescription{
		Name:         name,
		Items:        len(items),
		DefaultCount: session.DefaultCount(len(items)),
	}, nil
}

// Start loads the quiz set and begins a session. A count of zero asks for
// the default count.
func (s *quizService) Start(ctx context.Context, name string, count int, revealReading bool) (*QuizStart, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")
	log.Debug("starting quiz session: name=%s, count=%d, reveal=%t", name, count, revealReading)

	items, err := s.loader.LoadQuiz(ctx, name)
	if err != nil {
		log.Warn("failed to load quiz set: %v", err)
		return nil, err
	}
	if err := session.CheckQuizPool(items); err != nil {
		return nil, err
	}
	if count == 0 {
		count = session.DefaultCount(len(items))
	}

	mc := session.NewMultipleChoice(s.rand.New())
	if err := mc.Start(items, count, revealReading); err != nil {
		return nil, err
	}

	id := s.sessions.Add(mc)
	log.WithField("session", id).Info("quiz session started with %d questions", mc.Len())
	return &QuizStart{ID: id, Name: name, Total: mc.Len(), RevealReading: revealReading}, nil
}

func (s *quizService) Next(ctx context.Context, id string) (*session.Question, error) {
	var (
		q  session.Question
		ok bool
	)
	err := s.sessions.With(id, func(mc *session.MultipleChoice) error {
		var err error
		q, ok, err = mc.NextQuestion()
		return err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (s *quizService) Answer(ctx context.Context, id string, choice string) (*QuizAnswer, error) {
	var out QuizAnswer
	err := s.sessions.With(id, func(mc *session.MultipleChoice) error {
		res, err := mc.SubmitAnswer(choice)
		if err != nil {
			return err
		}
		out = QuizAnswer{
			Correct:       res.IsCorrect,
			CorrectAnswer: res.CorrectAnswer,
			UserAnswer:    res.UserAnswer,
			Reading:       res.QuestionReading,
			Done:          mc.State() == session.Complete,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *quizService) Results(ctx context.Context, id string) (*QuizOutcome, error) {
	var res session.QuizResults
	err := s.sessions.With(id, func(mc *session.MultipleChoice) error {
		var err error
		res, err = mc.Results()
		return err
	})
	if err != nil {
		return nil, err
	}
	missed := res.Incorrect()
	if missed == nil {
		missed = []models.QuestionResult{}
	}
	logger.FromContext(ctx).WithPrefix("quiz").WithField("session", id).
		Debug("quiz finished: correct=%d, total=%d, missed=%d", res.Correct, res.Total, len(missed))
	return &QuizOutcome{QuizResults: res, Missed: missed}, nil
}

func (s *quizService) Abandon(ctx context.Context, id string) error {
	if !s.sessions.Remove(id) {
		return errors.NewNotFoundError("quiz session", id)
	}
	logger.FromContext(ctx).WithPrefix("quiz").WithField("session", id).Debug("session abandoned")
	return nil
}
