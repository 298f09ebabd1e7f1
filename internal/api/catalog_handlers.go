package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/kanaflash/internal/logger"
)

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := s.CatalogService.Datasets(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"datasets": infos})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")
	category := r.URL.Query().Get("category")
	logger.FromContext(r.Context()).Debug("listing characters: dataset=%s, category=%s", dataset, category)

	l, err := s.CatalogService.List(r.Context(), dataset, category)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, l)
}

func (s *Server) handleReimport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.CatalogService.Reimport(r.Context(), name); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("catalog import queued: dataset=%s", name)
	writeJSON(w, r, http.StatusAccepted, map[string]string{"dataset": name, "status": "queued"})
}
