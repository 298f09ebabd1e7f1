package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/kanaflash/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

const importWaitTimeout = 100 * time.Millisecond

// handleReady returns 200 once the character catalog answers queries and
// no import is still running.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed - catalog: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Catalog unavailable"))
			return
		}
	}
	if s.Imports != nil {
		ctx, cancel := context.WithTimeout(r.Context(), importWaitTimeout)
		defer cancel()
		if err := s.Imports.Wait(ctx); err != nil {
			logger.FromContext(r.Context()).Debug("readiness check failed - imports pending: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Catalog import in progress"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ready"))
}
