package models

import (
	"time"
)

// DateTimeLocalLayout is the value format of an HTML datetime-local input
const DateTimeLocalLayout = "2006-01-02T15:04"

// DisplayLimit is the longest amount shown in a table cell before truncation
const DisplayLimit = 20

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	DateTimeLocalLayout,
	"2006-01-02 15:04:05",
}

// DateTimeLocal converts an ISO timestamp to datetime-local form, keeping the
// timestamp's own wall clock. Empty input stays empty; unparseable input is returned as is.
func DateTimeLocal(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format(DateTimeLocalLayout)
		}
	}
	return iso
}

// Truncate shortens s to DisplayLimit characters followed by "...".
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= DisplayLimit {
		return s
	}
	return string(runes[:DisplayLimit]) + "..."
}
