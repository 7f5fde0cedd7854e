package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tagscrape.RequestLog = (*RequestLog)(nil)

// RequestLog implements tagscrape.RequestLog using SQLite.
type RequestLog struct {
	db *DB
}

// NewRequestLog creates a new RequestLog.
func NewRequestLog(db *DB) *RequestLog {
	return &RequestLog{db: db}
}

// RecordRequest appends entry to the log.
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

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("encode log details: %w", err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO request_logs (id, timestamp, action, details)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.Action, string(details))
	return err
}

// FindRequests retrieves log entries matching the filter in insertion order.
func (l *RequestLog) FindRequests(ctx context.Context, filter tagscrape.LogFilter) ([]*tagscrape.LogEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, timestamp, action, details FROM request_logs WHERE 1=1")

	if filter.Action != nil {
		query.WriteString(" AND action = ?")
		args = append(args, *filter.Action)
	}

	query.WriteString(" ORDER BY seq ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := l.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*tagscrape.LogEntry{}
	for rows.Next() {
		var entry tagscrape.LogEntry
		var timestamp, details string

		if err := rows.Scan(&entry.ID, &timestamp, &entry.Action, &details); err != nil {
			return nil, err
		}
		if entry.Timestamp, err = parseTimestamp(timestamp, "timestamp"); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(details), &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to parse details: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
