package content

import (
	"strings"
	"time"
)

// Present is the end-date sentinel for ongoing entries.
const Present = "present"

// dateLayouts are tried in order when parsing record dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

// IsPresent reports whether s is the "present" sentinel, in any case.
func IsPresent(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Present)
}

// ParseDate parses a record date in any of the accepted layouts.
// The "present" sentinel is not handled here.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortableDate picks the first non-empty of date, end and start and resolves
// it to a time. "present" is now; a missing or unparsable value is the epoch.
func SortableDate(now time.Time, date, end, start string) time.Time {
	var raw string
	for _, v := range []string{date, end, start} {
		if strings.TrimSpace(v) != "" {
			raw = v
			break
		}
	}
	if raw == "" {
		return time.Unix(0, 0).UTC()
	}
	if IsPresent(raw) {
		return now
	}
	if t, ok := ParseDate(raw); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}
