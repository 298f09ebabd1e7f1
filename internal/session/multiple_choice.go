package session

import (
	"fmt"
	"math/rand"

	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/models"
)

const (
	// OptionCount is the number of choices offered per question.
	OptionCount = 4
	// MinQuizItems is the smallest pool a quiz can be started from.
	MinQuizItems = 5
	// DefaultQuestionCount is offered when the caller has no preference.
	DefaultQuestionCount = 10
)

// Question is one multiple-choice question. Reading is empty unless the
// session reveals readings.
type Question struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Glyph   string   `json:"kanji"`
	Reading string   `json:"kana,omitempty"`
	Options []string `json:"options"`
}

// QuizResults is the final payload of a finished multiple-choice session.
type QuizResults struct {
	Results []models.QuestionResult `json:"results"`
	Correct int                     `json:"correct"`
	Total   int                     `json:"total"`
}

// Incorrect returns only the missed questions, in order.
func (r QuizResults) Incorrect() []models.QuestionResult {
	var out []models.QuestionResult
	for _, res := range r.Results {
		if !res.IsCorrect {
			out = append(out, res)
		}
	}
	return out
}

// MultipleChoice asks for the meaning of each item among four options.
type MultipleChoice struct {
	rng           *rand.Rand
	state         State
	pool          []models.QuizItem
	order         []models.QuizItem
	pos           int
	next          int
	current       *Question
	currentItem   models.QuizItem
	answered      bool
	results       []models.QuestionResult
	revealReading bool
}

// NewMultipleChoice creates an idle multiple-choice session drawing
// randomness from rng.
func NewMultipleChoice(rng *rand.Rand) *MultipleChoice {
	return &MultipleChoice{rng: rng}
}

// DefaultCount is the question count offered for a pool of n items.
func DefaultCount(n int) int {
	return min(n, DefaultQuestionCount)
}

// Start takes the first count items in load order and shuffles their
// presentation order. Distractors are drawn from the whole of items.
func (m *MultipleChoice) Start(items []models.QuizItem, count int, revealReading bool) error {
	if m.state != Idle {
		return errors.NewConflictError("quiz session already started")
	}
	if len(items) < MinQuizItems {
		return errors.NewValidationError("quiz", fmt.Sprintf("must contain at least %d items to generate options", MinQuizItems))
	}
	if count <= 0 {
		return errors.NewValidationError("count", "must be positive")
	}
	count = min(count, len(items))

	m.pool = make([]models.QuizItem, len(items))
	copy(m.pool, items)
	m.order = make([]models.QuizItem, count)
	copy(m.order, items[:count])
	shuffle(m.rng, m.order)

	m.pos = 0
	m.next = 0
	m.current = nil
	m.answered = false
	m.results = nil
	m.revealReading = revealReading
	m.state = InProgress
	return nil
}

// State reports the lifecycle state.
func (m *MultipleChoice) State() State { return m.state }

// Len is the fixed number of questions in the session.
func (m *MultipleChoice) Len() int { return len(m.order) }

// RevealReading reports whether question readings are shown.
func (m *MultipleChoice) RevealReading() bool { return m.revealReading }

// Current returns the question being asked, if any.
func (m *MultipleChoice) Current() (Question, bool) {
	if m.current == nil {
		return Question{}, false
	}
	return *m.current, true
}

// NextQuestion moves to the next question; ok is false once every question
// has been asked. The current question must be answered first.
//
// The pool must hold at least four distinct meanings (see CheckQuizPool):
// distractors are drawn until three distinct ones are found, with no bound.
func (m *MultipleChoice) NextQuestion() (Question, bool, error) {
	switch m.state {
	case Idle:
		return Question{}, false, errors.NewConflictError("quiz session has not started")
	case Complete:
		return Question{}, false, nil
	}
	if m.current != nil && !m.answered {
		return Question{}, false, errors.NewConflictError("current question has not been answered")
	}
	if m.next >= len(m.order) {
		return Question{}, false, nil
	}

	item := m.order[m.next]
	q := Question{
		Number:  m.next + 1,
		Total:   len(m.order),
		Glyph:   item.Glyph,
		Options: m.options(item.Meaning),
	}
	if m.revealReading {
		q.Reading = item.Reading
	}

	m.next++
	m.current = &q
	m.currentItem = item
	m.answered = false
	return q, true, nil
}

func (m *MultipleChoice) options(correct string) []string {
	opts := []string{correct}
	seen := map[string]bool{correct: true}
	for len(opts) < OptionCount {
		candidate := m.pool[m.rng.Intn(len(m.pool))].Meaning
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		opts = append(opts, candidate)
	}
	shuffle(m.rng, opts)
	return opts
}

// SubmitAnswer grades choice against the current question. Only the first
// answer per question counts; later calls return that same result.
func (m *MultipleChoice) SubmitAnswer(choice string) (models.QuestionResult, error) {
	if m.current == nil {
		return models.QuestionResult{}, errors.NewConflictError("no question is being asked")
	}
	if m.answered {
		return m.results[len(m.results)-1], nil
	}

	res := models.QuestionResult{
		QuestionGlyph:   m.currentItem.Glyph,
		QuestionReading: m.currentItem.Reading,
		CorrectAnswer:   m.currentItem.Meaning,
		UserAnswer:      choice,
		IsCorrect:       choice == m.currentItem.Meaning,
	}
	m.results = append(m.results, res)
	m.answered = true

	m.pos++
	if m.pos >= len(m.order) {
		m.state = Complete
	}
	return res, nil
}

// Results returns every recorded answer once all questions are answered.
func (m *MultipleChoice) Results() (QuizResults, error) {
	if m.state != Complete {
		return QuizResults{}, errors.NewConflictError("quiz session is not finished")
	}
	out := QuizResults{
		Results: make([]models.QuestionResult, len(m.results)),
		Total:   len(m.results),
	}
	copy(out.Results, m.results)
	for _, r := range m.results {
		if r.IsCorrect {
			out.Correct++
		}
	}
	return out, nil
}

// Restart clears the session back to Idle.
func (m *MultipleChoice) Restart() {
	*m = MultipleChoice{rng: m.rng}
}

// CheckQuizPool verifies a pool can back a quiz: at least five items and at
// least four distinct meanings, so distractor drawing terminates.
func CheckQuizPool(items []models.QuizItem) error {
	if len(items) < MinQuizItems {
		return errors.NewValidationError("quiz", fmt.Sprintf("must contain at least %d items to generate options, got %d", MinQuizItems, len(items)))
	}
	meanings := make(map[string]struct{}, len(items))
	for _, it := range items {
		meanings[it.Meaning] = struct{}{}
	}
	if len(meanings) < OptionCount {
		return errors.NewValidationError("quiz", fmt.Sprintf("must contain at least %d distinct meanings, got %d", OptionCount, len(meanings)))
	}
	return nil
}
