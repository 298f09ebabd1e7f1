package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vytor/kanaflash/internal/logger"
)

// ErrNotFound is returned by a Source when the dataset does not exist.
var ErrNotFound = stderrors.New("dataset not found")

// Source retrieves the raw JSON document of a named dataset.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// HTTPSource fetches {baseURL}/{name}.json.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates a source that fetches datasets from a static server.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("loader").WithField("dataset", name)
	url := fmt.Sprintf("%s/%s.json", s.baseURL, name)

	log.Debug("fetching dataset from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch dataset: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("dataset response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("dataset request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read dataset body: %v", err)
		return nil, err
	}
	return data, nil
}

// FSSource reads {name}.json from a file system, typically the server's
// data directory.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name+".json")
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// NewSource picks the HTTP source when baseURL is set and the data
// directory otherwise.
func NewSource(dataDir, baseURL string, timeout time.Duration) Source {
	if baseURL != "" {
		return NewHTTPSource(baseURL, timeout)
	}
	return NewFSSource(os.DirFS(dataDir))
}

var (
	_ Source = (*HTTPSource)(nil)
	_ Source = (*FSSource)(nil)
)
