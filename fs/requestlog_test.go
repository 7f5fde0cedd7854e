package fs_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Request Log
// Entries are appended one JSON object per line and read back in order.

func TestRequestLog_RecordAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	log := fs.NewRequestLog(t.TempDir())
	entry := &tagscrape.LogEntry{Action: tagscrape.ActionScrape}

	require.NoError(t, log.RecordRequest(context.Background(), entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.NotNil(t, entry.Details)
}

func TestRequestLog_WritesJSONLines(t *testing.T) {
	t.Parallel()

	log := fs.NewRequestLog(t.TempDir())
	ctx := context.Background()
	require.NoError(t, log.RecordRequest(ctx, &tagscrape.LogEntry{Action: tagscrape.ActionScrape}))
	require.NoError(t, log.RecordRequest(ctx, &tagscrape.LogEntry{Action: tagscrape.ActionGetData}))

	b, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"action":"scrape"`)
	assert.Contains(t, lines[1], `"action":"get_data"`)
}

func TestRequestLog_FindRequests(t *testing.T) {
	t.Parallel()

	log := fs.NewRequestLog(t.TempDir())
	ctx := context.Background()
	actions := []string{
		tagscrape.ActionScrape,
		tagscrape.ActionGetData,
		tagscrape.ActionScrape,
		tagscrape.ActionClear,
	}
	for _, a := range actions {
		require.NoError(t, log.RecordRequest(ctx, &tagscrape.LogEntry{
			Action:  a,
			Details: map[string]any{"url": "https://example.com", "n": 1},
		}))
	}

	t.Run("returns all entries in insertion order", func(t *testing.T) {
		t.Parallel()

		entries, err := log.FindRequests(ctx, tagscrape.LogFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 4)
		for i, e := range entries {
			assert.Equal(t, actions[i], e.Action)
		}
		assert.Equal(t, "https://example.com", entries[0].Details["url"])
		assert.Equal(t, float64(1), entries[0].Details["n"])
	})

	t.Run("filters by action", func(t *testing.T) {
		t.Parallel()

		action := tagscrape.ActionScrape
		entries, err := log.FindRequests(ctx, tagscrape.LogFilter{Action: &action})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("applies offset and limit", func(t *testing.T) {
		t.Parallel()

		entries, err := log.FindRequests(ctx, tagscrape.LogFilter{Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, tagscrape.ActionGetData, entries[0].Action)
		assert.Equal(t, tagscrape.ActionScrape, entries[1].Action)
	})
}

func TestRequestLog_FindOnMissingFile(t *testing.T) {
	t.Parallel()

	log := fs.NewRequestLog(t.TempDir())

	entries, err := log.FindRequests(context.Background(), tagscrape.LogFilter{})

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
