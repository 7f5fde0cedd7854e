package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/google/uuid"
)

// RequestLogFileName is the name of the JSON-lines request log.
const RequestLogFileName = "request_logs.json"

// Ensure RequestLog implements tagscrape.RequestLog at compile time.
var _ tagscrape.RequestLog = (*RequestLog)(nil)

// RequestLog appends one JSON object per line to a log file.
type RequestLog struct {
	mu  sync.Mutex
	dir string
}

// NewRequestLog creates a RequestLog writing to dir.
func NewRequestLog(dir string) *RequestLog {
	return &RequestLog{dir: dir}
}

// Path returns the location of the log file.
func (l *RequestLog) Path() string {
	return filepath.Join(l.dir, RequestLogFileName)
}

func (l *RequestLog) RecordRequest(ctx context.Context, entry *tagscrape.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (l *RequestLog) FindRequests(ctx context.Context, filter tagscrape.LogFilter) ([]*tagscrape.LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.Path())
	if errors.Is(err, os.ErrNotExist) {
		return []*tagscrape.LogEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := []*tagscrape.LogEntry{}
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry tagscrape.LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode %s: %w", l.Path(), err)
		}
		if filter.Action != nil && entry.Action != *filter.Action {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		entries = append(entries, &entry)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
