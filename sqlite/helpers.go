package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseTimestamp decodes a stored RFC3339 column, naming the column on failure.
func parseTimestamp(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", column, value, err)
	}
	return t, nil
}

// appendPagination writes the LIMIT and OFFSET clauses, treating a non-positive
// limit as unbounded. SQLite only accepts OFFSET after a LIMIT, so an
// offset without a limit is written as LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
