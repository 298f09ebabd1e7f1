package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleDatasets)
		r.Post("/datasets/{name}/import", s.handleReimport)
		r.Get("/lists/{dataset}", s.handleList)

		r.Post("/flashcards", s.handleStartFlashcards)
		r.Get("/flashcards/{id}", s.handleFlashcardSession)
		r.Delete("/flashcards/{id}", s.handleAbandonFlashcards)
		r.Post("/flashcards/{id}/answer", s.handleFlashcardAnswer)
		r.Get("/flashcards/{id}/results", s.handleFlashcardResults)
		r.Post("/flashcards/{id}/restart", s.handleRestartFlashcards)

		r.Get("/quizzes/{name}", s.handleDescribeQuiz)
		r.Post("/quizzes/{name}/sessions", s.handleStartQuiz)
		r.Post("/quiz-sessions/{id}/next", s.handleNextQuestion)
		r.Post("/quiz-sessions/{id}/answer", s.handleQuizAnswer)
		r.Get("/quiz-sessions/{id}/results", s.handleQuizResults)
		r.Delete("/quiz-sessions/{id}", s.handleAbandonQuiz)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			handleError(w, r, errNoRoute(r))
		})
	})

	r.Handle("/*", s.staticHandler())
	return r
}
