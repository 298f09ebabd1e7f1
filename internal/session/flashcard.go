package session

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/models"
)

// LengthStep is the granularity of flashcard session lengths.
const LengthStep = 10

// Tally is the running score of a session.
type Tally struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Answered is the number of submitted answers.
func (t Tally) Answered() int { return t.Correct + t.Incorrect }

// Resolution describes how a requested flashcard length was applied.
type Resolution struct {
	Requested int  `json:"requested"`
	Length    int  `json:"length"`
	Available int  `json:"available"`
	Adjusted  bool `json:"adjusted"`
}

// Prompt is the card currently shown.
type Prompt struct {
	Glyph    string `json:"glyph"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

// Feedback is the outcome of one flashcard answer.
type Feedback struct {
	Correct   bool   `json:"correct"`
	Expected  string `json:"expected"`
	Submitted string `json:"submitted"`
	Tally     Tally  `json:"tally"`
	Done      bool   `json:"done"`
}

// FlashcardResults is the final payload of a finished flashcard session.
type FlashcardResults struct {
	Tally        Tally                `json:"tally"`
	Total        int                  `json:"total"`
	WrongAnswers []models.WrongAnswer `json:"wrong_answers"`
}

// Flashcard is a free-text drill over a random sample of character entries.
type Flashcard struct {
	rng   *rand.Rand
	state State
	cards []models.CharacterEntry
	pos   int
	tally Tally
	wrong []models.WrongAnswer
}

// NewFlashcard creates an idle flashcard session drawing randomness from rng.
func NewFlashcard(rng *rand.Rand) *Flashcard {
	return &Flashcard{rng: rng}
}

// ResolveLength applies the length policy: a positive multiple of ten,
// clamped down to the pool when it asks for more than is available.
func ResolveLength(requested, available int) (Resolution, error) {
	res := Resolution{Requested: requested, Available: available}
	if requested <= 0 || requested%LengthStep != 0 {
		return res, errors.NewValidationError("length", fmt.Sprintf("must be a positive multiple of %d", LengthStep))
	}
	if available == 0 {
		return res, errors.NewValidationError("cards", "no cards selected for the quiz")
	}

	res.Length = requested
	if requested > available {
		res.Adjusted = true
		res.Length = available - available%LengthStep
		if res.Length == 0 {
			res.Length = LengthStep
		}
	}
	return res, nil
}

// Start samples the session's cards: the whole pool is shuffled first, then
// truncated, so the cards are a random sample and not a shuffled prefix. A
// pool smaller than ten is used whole.
func (f *Flashcard) Start(entries []models.CharacterEntry, requested int) (Resolution, error) {
	if f.state != Idle {
		return Resolution{}, errors.NewConflictError("flashcard session already started")
	}
	res, err := ResolveLength(requested, len(entries))
	if err != nil {
		return res, err
	}

	cards := make([]models.CharacterEntry, len(entries))
	copy(cards, entries)
	shuffle(f.rng, cards)
	if res.Length < len(cards) {
		cards = cards[:res.Length]
	}

	f.cards = cards
	f.pos = 0
	f.tally = Tally{}
	f.wrong = nil
	f.state = InProgress
	return res, nil
}

// State reports the lifecycle state.
func (f *Flashcard) State() State { return f.state }

// Len is the fixed number of cards in the session.
func (f *Flashcard) Len() int { return len(f.cards) }

// Tally reports the running score.
func (f *Flashcard) Tally() Tally { return f.tally }

// CurrentPrompt returns the card at the current position; ok is false once
// the session has no more cards (or was never started).
func (f *Flashcard) CurrentPrompt() (Prompt, bool) {
	if f.state != InProgress || f.pos >= len(f.cards) {
		return Prompt{}, false
	}
	return Prompt{
		Glyph:    f.cards[f.pos].Prompt(),
		Position: f.pos + 1,
		Total:    len(f.cards),
	}, true
}

// SubmitAnswer grades text against the current card and advances by one
// whether or not it was right.
func (f *Flashcard) SubmitAnswer(text string) (Feedback, error) {
	if f.state != InProgress {
		return Feedback{}, errors.NewConflictError(fmt.Sprintf("flashcard session is %s", f.state))
	}

	card := f.cards[f.pos]
	submitted := normalizeAnswer(text)
	expected := card.Answer()
	correct := submitted == expected

	if correct {
		f.tally.Correct++
	} else {
		f.tally.Incorrect++
		f.wrong = append(f.wrong, models.WrongAnswer{
			Card:       card.Prompt(),
			Correct:    expected,
			UserAnswer: submitted,
		})
	}

	f.pos++
	if f.pos >= len(f.cards) {
		f.state = Complete
	}

	return Feedback{
		Correct:   correct,
		Expected:  expected,
		Submitted: submitted,
		Tally:     f.tally,
		Done:      f.state == Complete,
	}, nil
}

// Results returns the final score and every missed card in order.
func (f *Flashcard) Results() (FlashcardResults, error) {
	if f.state != Complete {
		return FlashcardResults{}, errors.NewConflictError("flashcard session is not finished")
	}
	wrong := make([]models.WrongAnswer, len(f.wrong))
	copy(wrong, f.wrong)
	return FlashcardResults{Tally: f.tally, Total: len(f.cards), WrongAnswers: wrong}, nil
}

// Restart clears the session back to Idle.
func (f *Flashcard) Restart() {
	f.state = Idle
	f.cards = nil
	f.pos = 0
	f.tally = Tally{}
	f.wrong = nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
