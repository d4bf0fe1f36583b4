// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the WordPress REST API timestamp formats and display formatting

package time

import (
	"strings"
	"time"
)

// DisplayLayout is how article dates are shown to readers, e.g. "14 February 2019"
const DisplayLayout = "2 January 2006"

// Formats seen in WordPress REST and RSS payloads. WordPress "date" fields
// carry no zone and are in site-local time.
var timeFormats = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFlexibleTime attempts to parse a time string using various formats
func ParseFlexibleTime(timeStr string) time.Time {
	if timeStr == "" {
		return time.Time{}
	}

	timeStr = strings.TrimSpace(timeStr)

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// FormatDisplayDate renders a WordPress timestamp for templates. Unparseable
// input yields an empty string.
func FormatDisplayDate(timeStr string) string {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}
