package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tagscrape.ResultStore = (*ResultStore)(nil)

// ResultStore implements tagscrape.ResultStore using SQLite.
type ResultStore struct {
	db *DB
}

// NewResultStore creates a new ResultStore.
func NewResultStore(db *DB) *ResultStore {
	return &ResultStore{db: db}
}

// SaveExtraction replaces any stored extraction with e.
// ID and ScrapedAt are assigned when unset.
func (s *ResultStore) SaveExtraction(ctx context.Context, e *tagscrape.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.ScrapedAt.IsZero() {
		e.ScrapedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("encode extraction data: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM extractions`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO extractions (id, url, status, data, content_hash, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.URL, string(e.Status), string(data), e.ContentHash,
		e.ScrapedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	return tx.Commit()
}

// LatestExtraction returns the stored extraction.
func (s *ResultStore) LatestExtraction(ctx context.Context) (*tagscrape.Extraction, error) {
	var e tagscrape.Extraction
	var status, data, scrapedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, status, data, content_hash, scraped_at
		FROM extractions
		ORDER BY scraped_at DESC
		LIMIT 1
	`).Scan(&e.ID, &e.URL, &status, &data, &e.ContentHash, &scrapedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, tagscrape.Errorf(tagscrape.ENOTFOUND, "no extracted data available")
	}
	if err != nil {
		return nil, err
	}

	e.Status = tagscrape.Status(status)
	if err := json.Unmarshal([]byte(data), &e.Data); err != nil {
		return nil, fmt.Errorf("decode extraction data: %w", err)
	}
	if e.ScrapedAt, err = parseTimestamp(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}

	return &e, nil
}

// ClearExtractions removes every stored extraction.
func (s *ResultStore) ClearExtractions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM extractions`)
	return err
}
