package storage

import (
	"fmt"
	"time"

	"github.com/julianstephens/bujo/internal/constants"
)

// FormatTimestamp renders t in the fixed-width UTC form stored in created_at columns
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// ParseTimestamp parses a created_at column value
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(constants.TimestampFormat, s)
	if err != nil {
		// Rows written by other tools may carry plain RFC3339
		if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("failed to parse created_at %q: %w", s, err)
	}
	return t, nil
}
