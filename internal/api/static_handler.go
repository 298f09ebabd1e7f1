package api

import (
	stderrors "errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/vytor/kanaflash/internal/logger"
)

var contentTypes = map[string]string{
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "text/html"
}

// staticHandler serves files from the web root. The query string is
// ignored and "/" maps to index.html.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}
		if s.Web == nil || !fs.ValidPath(name) {
			log.Warn("rejected static path: %q", r.URL.Path)
			http.Error(w, "404 Not Found", http.StatusNotFound)
			return
		}

		content, err := fs.ReadFile(s.Web, name)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				http.Error(w, "404 Not Found", http.StatusNotFound)
				return
			}
			log.Error("failed to read static file %s: %v", name, err)
			http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentTypeFor(name))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	})
}
