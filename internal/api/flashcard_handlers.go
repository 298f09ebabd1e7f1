package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/logger"
)

type startFlashcardsRequest struct {
	Sets   []string `json:"sets"`
	Length int      `json:"length"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleStartFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startFlashcardsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log = log.WithFields(map[string]any{"sets": req.Sets, "length": req.Length})
	log.Debug("starting flashcards")

	start, err := s.FlashcardService.Start(r.Context(), req.Sets, req.Length)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, start)
}

func (s *Server) handleFlashcardSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleFlashcardAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	fb, err := s.FlashcardService.Answer(r.Context(), chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fb)
}

func (s *Server) handleFlashcardResults(w http.ResponseWriter, r *http.Request) {
	res, err := s.FlashcardService.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleRestartFlashcards(w http.ResponseWriter, r *http.Request) {
	var req startFlashcardsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	start, err := s.FlashcardService.Restart(r.Context(), chi.URLParam(r, "id"), req.Sets, req.Length)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, start)
}

func (s *Server) handleAbandonFlashcards(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		handleError(w, r, errors.NewBadRequestError("session id required"))
		return
	}
	if err := s.FlashcardService.Abandon(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
