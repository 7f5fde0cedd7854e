package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/mock"
	tsslog "github.com/fwojciec/tagscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingResultStore(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	t.Run("logs save with url and hash", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ResultStore{
			SaveExtractionFn: func(ctx context.Context, e *tagscrape.Extraction) error { return nil },
		}

		store := tsslog.NewLoggingResultStore(inner, newLogger(&buf))
		err := store.SaveExtraction(context.Background(), &tagscrape.Extraction{URL: "https://example.com", ContentHash: "abc"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "save extraction")
		assert.Contains(t, buf.String(), "hash=abc")
	})

	t.Run("delegates load and clear", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cleared := false
		inner := &mock.ResultStore{
			LatestExtractionFn: func(ctx context.Context) (*tagscrape.Extraction, error) {
				return nil, tagscrape.Errorf(tagscrape.ENOTFOUND, "none")
			},
			ClearExtractionsFn: func(ctx context.Context) error {
				cleared = true
				return nil
			},
		}

		store := tsslog.NewLoggingResultStore(inner, newLogger(&buf))
		_, err := store.LatestExtraction(context.Background())
		assert.Equal(t, tagscrape.ENOTFOUND, tagscrape.ErrorCode(err))
		require.NoError(t, store.ClearExtractions(context.Background()))

		assert.True(t, cleared)
		assert.Contains(t, buf.String(), "found=false")
		assert.Contains(t, buf.String(), "clear extractions")
	})
}
