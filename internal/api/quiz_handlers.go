package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/kanaflash/internal/logger"
)

type startQuizRequest struct {
	Count         int  `json:"count"`
	RevealReading bool `json:"reveal_reading"`
}

func (s *Server) handleDescribeQuiz(w http.ResponseWriter, r *http.Request) {
	d, err := s.QuizService.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := logger.FromContext(r.Context()).WithField("quiz", name)

	var req startQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("starting quiz: count=%d, reveal=%t", req.Count, req.RevealReading)

	start, err := s.QuizService.Start(r.Context(), name, req.Count, req.RevealReading)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, start)
}

// handleNextQuestion answers 204 once every question has been asked.
func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.QuizService.Next(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if q == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ans, err := s.QuizService.Answer(r.Context(), chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ans)
}

func (s *Server) handleQuizResults(w http.ResponseWriter, r *http.Request) {
	res, err := s.QuizService.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleAbandonQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
