// Package fs provides file-based storage for extractions and request logs.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/tagscrape"
)

// ResultFileName is the name of the file holding the latest extraction.
const ResultFileName = "extracted_data.json"

// Ensure ResultStore implements tagscrape.ResultStore at compile time.
var _ tagscrape.ResultStore = (*ResultStore)(nil)

// ResultStore keeps the latest extraction as an indented JSON file.
// Writes go to a temporary file that is renamed into place, so readers never
// observe a partially written file.
type ResultStore struct {
	mu  sync.Mutex
	dir string
}

// NewResultStore creates a ResultStore writing to dir.
// The directory is created on first save.
func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: dir}
}

// Path returns the location of the result file.
func (s *ResultStore) Path() string {
	return filepath.Join(s.dir, ResultFileName)
}

func (s *ResultStore) SaveExtraction(ctx context.Context, e *tagscrape.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}

	b, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		return fmt.Errorf("encode extraction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ResultFileName+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path())
}

func (s *ResultStore) LatestExtraction(ctx context.Context) (*tagscrape.Extraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, tagscrape.Errorf(tagscrape.ENOTFOUND, "no extracted data available")
	}
	if err != nil {
		return nil, err
	}

	var e tagscrape.Extraction
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path(), err)
	}
	return &e, nil
}

func (s *ResultStore) ClearExtractions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
