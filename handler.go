package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/stations"
)

const maxUploadSize = 512 << 20

var uploadExtensions = []string{".csv", ".zip", ".gz", ".lz4"}

// datasetSource is the current dataset file and its memoized load.
type datasetSource struct {
	mu   sync.RWMutex
	path string
	reg  *stations.Registry
	cell *dataset.Cell
}

func newDatasetSource(path string, reg *stations.Registry) *datasetSource {
	s := &datasetSource{path: path, reg: reg}
	s.cell = dataset.NewCell(func() (*dataset.Dataset, error) {
		return dataset.Load(s.Path(), dataset.WithRegistry(reg))
	})
	return s
}

func (s *datasetSource) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

func (s *datasetSource) Get() (*dataset.Dataset, error) {
	return s.cell.Get()
}

func (s *datasetSource) Loaded() bool {
	return s.cell.Loaded()
}

// Reload drops the memoized dataset and loads the file again.
func (s *datasetSource) Reload() (*dataset.Dataset, error) {
	s.cell.Invalidate()
	return s.cell.Get()
}

// Replace switches to the file at path once it loads cleanly. On failure the current
// dataset stays in place.
func (s *datasetSource) Replace(path string) (*dataset.Dataset, error) {
	if _, err := dataset.Load(path, dataset.WithRegistry(s.reg)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
	return s.Reload()
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, NewAPIError(ErrorCodeMissingParameter, "Error uploading file", err.Error(), http.StatusBadRequest))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isAllowedExtension(ext) {
		respondWithError(w, NewAPIError(ErrorCodeBadRequest, "unsupported file type "+ext, uploadExtensions, http.StatusBadRequest))
		return
	}

	// Stored under a fresh id; Replace switches to it only after a clean load.
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		respondWithError(w, err)
		return
	}
	id := uuid.NewV4().String()
	filePath := filepath.Join(s.cfg.UploadDir, id+ext)
	if err := saveUpload(file, filePath); err != nil {
		respondWithError(w, err)
		return
	}

	ds, err := s.data.Replace(filePath)
	if err != nil {
		os.Remove(filePath)
		respondWithError(w, NewAPIError(ErrorCodeBadRequest, "uploaded file is not a valid dataset", err.Error(), http.StatusBadRequest))
		return
	}
	logger(r).Info("dataset replaced", "file", header.Filename, "path", filePath, "rows", len(ds.Readings), "skipped", ds.Skipped)
	respondWithJSON(w, http.StatusOK, datasetStatus(ds, filePath))
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.data.Reload()
	if err != nil {
		respondWithError(w, datasetUnavailable(err))
		return
	}
	logger(r).Info("dataset reloaded", "path", s.data.Path(), "rows", len(ds.Readings))
	respondWithJSON(w, http.StatusOK, datasetStatus(ds, s.data.Path()))
}

func saveUpload(src io.Reader, filePath string) error {
	dst, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", filePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return fmt.Errorf("save upload: %w", err)
	}
	return dst.Close()
}

func isAllowedExtension(ext string) bool {
	for _, e := range uploadExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

type datasetStatusResponse struct {
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

func datasetStatus(ds *dataset.Dataset, path string) datasetStatusResponse {
	resp := datasetStatusResponse{Path: path, Rows: len(ds.Readings), Skipped: ds.Skipped}
	if start, end, ok := ds.Span(); ok {
		resp.Start = start.Format(dateLayout)
		resp.End = end.Format(dateLayout)
	}
	return resp
}

func datasetUnavailable(err error) APIError {
	return NewAPIError(ErrorCodeDatasetUnavailable, "dataset could not be loaded", err.Error(), http.StatusServiceUnavailable)
}

// removeOldFiles deletes uploads older than maxAge, keeping the file in use.
func removeOldFiles(dirPath string, maxAge time.Time, keep string) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}
	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())
		if file.IsDir() || filePath == keep {
			continue
		}
		info, err := file.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			slog.Debug("removed old upload", "path", filePath)
		}
	}
	return nil
}
