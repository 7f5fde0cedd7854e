package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/mock"
	tsslog "github.com/fwojciec/tagscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, req tagscrape.FetchRequest) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := tsslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), tagscrape.FetchRequest{URL: "https://example.com/docs"})

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, req tagscrape.FetchRequest) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := tsslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), tagscrape.FetchRequest{URL: "https://example.com/docs"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}
