// Package dateutil holds the shared date/time parsing, formatting and
// comparison helpers. All comparisons are timezone-naive: dates live in the
// local zone and only the (year, month, day) triple or the wall clock is
// ever compared.
package dateutil

import (
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
	shortLayout    = "2006-01-02T15:04"
)

// ParseDateInput parses a strict YYYY-MM-DD string. Missing, zero, negative
// or non-numeric components yield ok == false. Out-of-range components are
// normalized onto the calendar, matching how a date input control behaves.
func ParseDateInput(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}

	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.Local), true
}

// FormatDateForInput renders a zero-padded YYYY-MM-DD string.
func FormatDateForInput(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTime truncates HH:MM:SS[.fff] style values to HH:MM for display.
// Empty input stays empty; values shorter than five characters pass through.
func FormatTime(value string) string {
	if len(value) > 5 {
		return value[:5]
	}
	return value
}

// FormatTimeForWire prepares a time value for the backend: nil and empty
// stay nil, a bare HH:MM is extended to HH:MM:00, anything longer passes
// through unchanged.
func FormatTimeForWire(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	if len(*value) == 5 {
		extended := *value + ":00"
		return &extended
	}
	return value
}

// CombineDateAndTime joins a YYYY-MM-DD date part and an HH:MM[:SS] time
// part into a local instant. Either part missing, or a combination that does
// not parse, yields ok == false.
func CombineDateAndTime(datePart, timePart string) (time.Time, bool) {
	if datePart == "" || timePart == "" {
		return time.Time{}, false
	}

	combined := datePart + "T" + timePart
	for _, layout := range []string{dateTimeLayout, shortLayout} {
		if t, err := time.ParseInLocation(layout, combined, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameDay compares two instants by their (year, month, day) triple only.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
