package repository

import (
	"fmt"
	"time"
)

// timeLayouts are the formats sqlite hands back depending on whether the
// column was written as a bare date or a full timestamp.
var timeLayouts = []string{"2006-01-02", time.RFC3339}

// ParseTime parses a stored date or timestamp string into UTC.
// Note: mirrors validation.ParseTime; both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
