// Package calendar builds the month grid backing the agenda view. Weeks are
// Monday-first and the grid always covers whole weeks, borrowing leading days
// from the previous month and trailing days from the next one.
package calendar

import (
	"strconv"
	"time"

	"figaro/internal/dateutil"
	"figaro/internal/models"
)

// Day is one cell of the month grid. Recomputed wholesale on every
// navigation, never mutated in place.
type Day struct {
	Date       time.Time
	InMonth    bool
	IsToday    bool
	IsSelected bool
}

// Locale carries the display names used for labels. Month names are indexed
// January-first, weekday headers Monday-first, day names Sunday-first to
// match the backend's weekday numbering.
type Locale struct {
	Months         [12]string
	WeekdayHeaders [7]string
	DayNames       [7]string
}

// Italian is the default locale.
var Italian = Locale{
	Months: [12]string{
		"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
	},
	WeekdayHeaders: [7]string{"Lu", "Ma", "Me", "Gi", "Ve", "Sa", "Do"},
	DayNames: [7]string{
		"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato",
	},
}

// MonthLabel renders the "month year" heading for the displayed month.
func (l Locale) MonthLabel(t time.Time) string {
	return l.Months[int(t.Month())-1] + " " + strconv.Itoa(t.Year())
}

// DayName returns the localized name for a backend weekday (0 = Sunday).
func (l Locale) DayName(weekday int) string {
	if weekday < 0 || weekday >= len(l.DayNames) {
		return ""
	}
	return l.DayNames[weekday]
}

// MonthStart anchors an instant on day 1 of its month. Navigation always
// re-anchors before shifting so day-of-month overflow cannot occur.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// ShiftMonth moves the reference by delta months, anchored on day 1.
func ShiftMonth(t time.Time, delta int) time.Time {
	anchored := MonthStart(t)
	return time.Date(anchored.Year(), anchored.Month()+time.Month(delta), 1, 0, 0, 0, 0, time.Local)
}

// BuildMonthGrid produces the grid for the month containing reference.
// selected may be nil when no day is selected. Today and selection are
// matched by (year, month, day) only.
func BuildMonthGrid(reference time.Time, selected *time.Time, now time.Time) []Day {
	startOfMonth := MonthStart(reference)
	year, month := startOfMonth.Year(), startOfMonth.Month()

	// Monday-first offset: Sunday maps to 6, Monday to 0.
	startOffset := (int(startOfMonth.Weekday()) + models.WeekdaysPerWeek - 1) % models.WeekdaysPerWeek
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
	daysInPrevMonth := time.Date(year, month, 0, 0, 0, 0, 0, time.Local).Day()

	days := make([]Day, 0, startOffset+daysInMonth+models.WeekdaysPerWeek-1)

	for i := startOffset - 1; i >= 0; i-- {
		date := time.Date(year, month-1, daysInPrevMonth-i, 0, 0, 0, 0, time.Local)
		days = append(days, newDay(date, false, selected, now))
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		days = append(days, newDay(date, true, selected, now))
	}

	if remaining := len(days) % models.WeekdaysPerWeek; remaining != 0 {
		for i := 1; i <= models.WeekdaysPerWeek-remaining; i++ {
			date := time.Date(year, month+1, i, 0, 0, 0, 0, time.Local)
			days = append(days, newDay(date, false, selected, now))
		}
	}

	return days
}

func newDay(date time.Time, inMonth bool, selected *time.Time, now time.Time) Day {
	return Day{
		Date:       date,
		InMonth:    inMonth,
		IsToday:    dateutil.SameDay(date, now),
		IsSelected: selected != nil && dateutil.SameDay(date, *selected),
	}
}
