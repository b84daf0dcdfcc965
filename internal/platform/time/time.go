// Package time holds the calendar-date helpers used for ruling dates
package time

import (
	"strings"
	"time"
)

// DayLayout is the wire and storage form of a ruling date
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date (dots and slashes are accepted as separators) in UTC
func ParseDay(s string) (time.Time, error) {
	s = strings.NewReplacer(".", "-", "/", "-").Replace(strings.TrimSpace(s))
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// FormatDay renders t as YYYY-MM-DD, or "" for the zero time
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DayLayout)
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
