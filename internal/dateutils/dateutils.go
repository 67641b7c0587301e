// Package dateutils parses the booking dates found in statements and ledgers.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Accepted date layouts. Dates without a zone are read as UTC.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutISOSlash  = "2006/01/02"
	DateLayoutDateTime  = "2006-01-02T15:04:05"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutTimestamp = time.RFC3339Nano
)

// CommonFormats lists the layouts tried by ParseDate, in order
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutTimestamp,
	DateLayoutDateTime,
	DateLayoutFull,
	DateLayoutISOSlash,
}

const secondsPerDay = 24 * 60 * 60

// ParseDate parses an ISO-like date string.
// Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty string")
	}

	for _, format := range CommonFormats {
		if t, err := time.ParseInLocation(format, dateStr, time.UTC); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// DayDifference returns the absolute distance between two dates in whole days,
// rounded down. ok is false when either date does not parse.
func DayDifference(a, b string) (days int, ok bool) {
	ta, _, err := ParseDate(a)
	if err != nil {
		return 0, false
	}
	tb, _, err := ParseDate(b)
	if err != nil {
		return 0, false
	}

	// time.Duration saturates past 292 years, so count in whole seconds
	if ta.After(tb) {
		ta, tb = tb, ta
	}
	secs := tb.Unix() - ta.Unix()
	if tb.Nanosecond() < ta.Nanosecond() {
		secs--
	}
	return int(secs / secondsPerDay), true
}

// CleanDateString trims the string and collapses inner whitespace runs
func CleanDateString(dateStr string) string {
	return strings.Join(strings.Fields(dateStr), " ")
}
