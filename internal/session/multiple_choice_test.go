package session_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/session"
)

func kaRow() []models.QuizItem {
	return []models.QuizItem{
		{Glyph: "か", Reading: "か", Meaning: "ka"},
		{Glyph: "き", Reading: "き", Meaning: "ki"},
		{Glyph: "く", Reading: "く", Meaning: "ku"},
		{Glyph: "け", Reading: "け", Meaning: "ke"},
		{Glyph: "こ", Reading: "こ", Meaning: "ko"},
	}
}

func quizPool(n int) []models.QuizItem {
	out := make([]models.QuizItem, n)
	for i := range out {
		out[i] = models.QuizItem{
			Glyph:   fmt.Sprintf("g%02d", i),
			Reading: fmt.Sprintf("r%02d", i),
			Meaning: fmt.Sprintf("m%02d", i),
		}
	}
	return out
}

func meaningOf(pool []models.QuizItem, glyph string) string {
	for _, it := range pool {
		if it.Glyph == glyph {
			return it.Meaning
		}
	}
	return ""
}

func TestMultipleChoice_KaRowScenario(t *testing.T) {
	pool := kaRow()
	m := session.NewMultipleChoice(seeded(1))
	require.NoError(t, m.Start(pool, 5, true))

	q, ok, err := m.NextQuestion()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, q.Options, 4)
	correct := meaningOf(pool, q.Glyph)
	assert.Contains(t, q.Options, correct)
	assert.Equal(t, q.Glyph, q.Reading, "reading is revealed")

	res, err := m.SubmitAnswer(correct)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, q.Glyph, cur.Glyph, "answering does not advance")
	assert.Equal(t, session.InProgress, m.State())
}

func TestMultipleChoice_StartValidation(t *testing.T) {
	m := session.NewMultipleChoice(seeded(1))

	err := m.Start(quizPool(4), 4, false)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, session.Idle, m.State())

	err = m.Start(quizPool(10), 0, false)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, session.Idle, m.State())
}

func TestMultipleChoice_OptionsAreFourUniqueWithCorrect(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		pool := quizPool(12)
		m := session.NewMultipleChoice(seeded(seed))
		require.NoError(t, m.Start(pool, 12, false))

		for {
			q, ok, err := m.NextQuestion()
			require.NoError(t, err)
			if !ok {
				break
			}
			require.Len(t, q.Options, 4)
			unique := map[string]bool{}
			for _, o := range q.Options {
				unique[o] = true
			}
			assert.Len(t, unique, 4, "options must be distinct")
			assert.Contains(t, q.Options, meaningOf(pool, q.Glyph))
			assert.Empty(t, q.Reading, "reading hidden")

			_, err = m.SubmitAnswer(q.Options[0])
			require.NoError(t, err)
		}
		assert.Equal(t, session.Complete, m.State())
	}
}

func TestMultipleChoice_DuplicateMeaningsStillYieldFourOptions(t *testing.T) {
	pool := []models.QuizItem{
		{Glyph: "一", Meaning: "one"},
		{Glyph: "壱", Meaning: "one"},
		{Glyph: "二", Meaning: "two"},
		{Glyph: "三", Meaning: "three"},
		{Glyph: "四", Meaning: "four"},
	}
	require.NoError(t, session.CheckQuizPool(pool))

	m := session.NewMultipleChoice(seeded(4))
	require.NoError(t, m.Start(pool, 5, false))
	for {
		q, ok, err := m.NextQuestion()
		require.NoError(t, err)
		if !ok {
			break
		}
		assert.ElementsMatch(t, []string{"one", "two", "three", "four"}, q.Options)
		_, err = m.SubmitAnswer("one")
		require.NoError(t, err)
	}
}

func TestMultipleChoice_TruncatesLoadOrderPrefix(t *testing.T) {
	pool := quizPool(20)
	m := session.NewMultipleChoice(seeded(8))
	require.NoError(t, m.Start(pool, 6, false))
	assert.Equal(t, 6, m.Len())

	asked := map[string]bool{}
	distractorFromTail := false
	for {
		q, ok, err := m.NextQuestion()
		require.NoError(t, err)
		if !ok {
			break
		}
		asked[q.Glyph] = true
		for _, o := range q.Options {
			var idx int
			_, err := fmt.Sscanf(o, "m%02d", &idx)
			require.NoError(t, err)
			if idx >= 6 {
				distractorFromTail = true
			}
		}
		_, err = m.SubmitAnswer("")
		require.NoError(t, err)
	}

	for i := 0; i < 6; i++ {
		assert.True(t, asked[pool[i].Glyph], "question %s from the first six", pool[i].Glyph)
	}
	assert.Len(t, asked, 6)
	assert.True(t, distractorFromTail, "distractors come from the untruncated pool")
}

func TestMultipleChoice_CountClampedToPool(t *testing.T) {
	m := session.NewMultipleChoice(seeded(1))
	require.NoError(t, m.Start(quizPool(7), 50, false))
	assert.Equal(t, 7, m.Len())
}

func TestMultipleChoice_SubmitIsIdempotentPerQuestion(t *testing.T) {
	pool := kaRow()
	m := session.NewMultipleChoice(seeded(2))
	require.NoError(t, m.Start(pool, 5, false))

	q, _, err := m.NextQuestion()
	require.NoError(t, err)
	correct := meaningOf(pool, q.Glyph)

	first, err := m.SubmitAnswer("wrong")
	require.NoError(t, err)
	second, err := m.SubmitAnswer(correct)
	require.NoError(t, err)

	assert.False(t, first.IsCorrect)
	assert.Equal(t, first, second, "later answers to the same question are ignored")
}

func TestMultipleChoice_NextRequiresAnswer(t *testing.T) {
	m := session.NewMultipleChoice(seeded(2))

	_, _, err := m.NextQuestion()
	assert.True(t, errors.IsConflictError(err), "not started")

	_, err = m.SubmitAnswer("ka")
	assert.True(t, errors.IsConflictError(err), "nothing asked yet")

	require.NoError(t, m.Start(kaRow(), 5, false))
	_, _, err = m.NextQuestion()
	require.NoError(t, err)

	_, _, err = m.NextQuestion()
	assert.True(t, errors.IsConflictError(err))
}

func TestMultipleChoice_ResultsAndCompletion(t *testing.T) {
	pool := quizPool(10)
	m := session.NewMultipleChoice(seeded(6))
	require.NoError(t, m.Start(pool, 8, true))

	_, err := m.Results()
	assert.True(t, errors.IsConflictError(err))

	for i := 0; i < 8; i++ {
		q, ok, err := m.NextQuestion()
		require.NoError(t, err)
		require.True(t, ok)
		choice := "nope"
		if i%2 == 0 {
			choice = meaningOf(pool, q.Glyph)
		}
		_, err = m.SubmitAnswer(choice)
		require.NoError(t, err)
	}
	assert.Equal(t, session.Complete, m.State())

	_, ok, err := m.NextQuestion()
	require.NoError(t, err)
	assert.False(t, ok, "exhausted")

	results, err := m.Results()
	require.NoError(t, err)
	assert.Equal(t, 8, results.Total)
	assert.Equal(t, 4, results.Correct)
	assert.Len(t, results.Incorrect(), 4)
	for _, r := range results.Results {
		assert.Equal(t, meaningOf(pool, r.QuestionGlyph), r.CorrectAnswer)
		assert.NotEmpty(t, r.QuestionReading)
	}
}

func TestMultipleChoice_Restart(t *testing.T) {
	m := session.NewMultipleChoice(seeded(2))
	require.NoError(t, m.Start(kaRow(), 5, true))
	_, _, err := m.NextQuestion()
	require.NoError(t, err)

	m.Restart()
	assert.Equal(t, session.Idle, m.State())
	assert.False(t, m.RevealReading())
	_, ok := m.Current()
	assert.False(t, ok)
	assert.NoError(t, m.Start(kaRow(), 5, false))
}

func TestMultipleChoice_DeterministicWithSeed(t *testing.T) {
	run := func() []session.Question {
		m := session.NewMultipleChoice(seeded(42))
		require.NoError(t, m.Start(quizPool(15), 10, false))
		var qs []session.Question
		for {
			q, ok, err := m.NextQuestion()
			require.NoError(t, err)
			if !ok {
				return qs
			}
			qs = append(qs, q)
			_, _ = m.SubmitAnswer("")
		}
	}
	assert.Equal(t, run(), run())
}

func TestCheckQuizPool(t *testing.T) {
	assert.NoError(t, session.CheckQuizPool(kaRow()))
	assert.True(t, errors.IsValidationError(session.CheckQuizPool(quizPool(4))))

	sameMeaning := quizPool(6)
	for i := range sameMeaning {
		sameMeaning[i].Meaning = []string{"a", "b", "c"}[i%3]
	}
	err := session.CheckQuizPool(sameMeaning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct meanings")
}

func TestDefaultCount(t *testing.T) {
	assert.Equal(t, 5, session.DefaultCount(5))
	assert.Equal(t, 10, session.DefaultCount(200))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", session.Idle.String())
	assert.Equal(t, "in_progress", session.InProgress.String())
	assert.Equal(t, "complete", session.Complete.String())
}
