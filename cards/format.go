package cards

import (
	"strings"

	"github.com/eringen/folio/content"
)

const (
	shortLayout     = "Jan 2006"
	longLayout      = "January 2006"
	publishedLayout = "January 2, 2006"
)

// FormatDate renders a single date as "Jan 2006". Unparsable input is
// returned unchanged.
func FormatDate(s string) string {
	return formatWith(s, shortLayout)
}

// FormatDateLong renders a single date as "January 2006".
func FormatDateLong(s string) string {
	return formatWith(s, longLayout)
}

// FormatPublished renders a blog publish date as "January 2, 2006".
func FormatPublished(s string) string {
	return formatWith(s, publishedLayout)
}

// FormatDateRange renders "start - end" with short dates. Either side may be
// missing; both missing yields "".
func FormatDateRange(start, end string) string {
	return formatRange(start, end, shortLayout)
}

// FormatPeriod is FormatDateRange with long month names, used by experience
// and education cards.
func FormatPeriod(start, end string) string {
	return formatRange(start, end, longLayout)
}

func formatRange(start, end, layout string) string {
	var parts []string
	if strings.TrimSpace(start) != "" {
		parts = append(parts, formatWith(start, layout))
	}
	if strings.TrimSpace(end) != "" {
		parts = append(parts, formatWith(end, layout))
	}
	return strings.Join(parts, " - ")
}

func formatWith(s, layout string) string {
	if content.IsPresent(s) {
		return "Present"
	}
	t, ok := content.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(layout)
}
