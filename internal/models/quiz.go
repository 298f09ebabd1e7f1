package models

// QuizItem is one multiple-choice question source.
type QuizItem struct {
	Glyph   string `json:"kanji"`
	Reading string `json:"kana"`
	Meaning string `json:"english"`
}

// WrongAnswer records a missed flashcard.
type WrongAnswer struct {
	Card       string `json:"card"`
	Correct    string `json:"correct"`
	UserAnswer string `json:"user_answer"`
}

// QuestionResult records one answered multiple-choice question.
type QuestionResult struct {
	QuestionGlyph   string `json:"question_kanji"`
	QuestionReading string `json:"question_kana"`
	CorrectAnswer   string `json:"correct_answer"`
	UserAnswer      string `json:"user_answer"`
	IsCorrect       bool   `json:"is_correct"`
}
