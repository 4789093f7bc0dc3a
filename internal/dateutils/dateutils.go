// Package dateutils parses the date and timestamp formats found in expense
// records and reduces them to calendar days.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	"kharcha/expense-nlp/internal/textutils"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutTimestamp = "2006-01-02T15:04:05"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutSlash     = "02/01/2006"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is the list of formats tried, in order, when parsing dates.
// Day-first layouts are used for slash and dot dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutTimestamp,
	time.RFC3339,
	DateLayoutEuropean,
	DateLayoutSlash,
	"02-01-2006",
	"2006/01/02",
	DateLayoutWithMonth,
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty string")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims the string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return textutils.CollapseSpaces(strings.TrimSpace(dateStr))
}

// Day reduces a date or timestamp to its ISO day. Values that cannot be
// parsed are cut at the first "T" or space, so unknown timestamp formats
// still group by their date part. An empty value yields "".
func Day(value string) string {
	value = CleanDateString(value)
	if value == "" {
		return ""
	}
	if t, _, err := ParseDate(value); err == nil {
		return ToISODate(t)
	}
	if i := strings.IndexAny(value, "T "); i > 0 {
		return value[:i]
	}
	return value
}
