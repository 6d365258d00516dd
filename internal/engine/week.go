package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/steadyreaders/go-studyweek/internal/config"
)

// This application anchors weeks on Sunday: the week start of any reference
// date is the Sunday of the calendar week containing it. The same policy is
// applied to the first-load default and to every user-picked date, so a
// stored week start is always a fixed point of NormalizeToWeekStart.

// NormalizeToWeekStart returns the ISO date (YYYY-MM-DD) of the Sunday of
// the week containing t. Normalizing an already-normalized date returns it
// unchanged.
func NormalizeToWeekStart(t time.Time) string {
	start := t.AddDate(0, 0, -int(t.Weekday()))
	return start.Format(config.DateFormatISO)
}

// CurrentWeekStart computes the normalized week start for "today".
func CurrentWeekStart(clock Clock) string {
	return NormalizeToWeekStart(clock.Now())
}

// ParseWeekStart normalizes an arbitrary week-start string. Malformed input
// falls back to the current week start rather than propagating a parse
// error; well-formed input is re-snapped to the anchor day so the result is
// always a fixed point.
func ParseWeekStart(value string, clock Clock) string {
	t, err := time.Parse(config.DateFormatISO, value)
	if err != nil {
		return CurrentWeekStart(clock)
	}
	return NormalizeToWeekStart(t)
}

// DateForDayOffset returns the calendar date offset days after the week
// start, delegating rollover across month and year boundaries to the
// standard calendar arithmetic. The zero time is returned for a malformed
// week start; the Planner never holds one.
func DateForDayOffset(weekStart string, offset int) time.Time {
	t, err := time.Parse(config.DateFormatISO, weekStart)
	if err != nil {
		return time.Time{}
	}
	return t.AddDate(0, 0, offset)
}

// DayDate pairs a day name with its concrete calendar date for the current
// week.
type DayDate struct {
	Name DayName
	Date time.Time
}

// VisibleDayDates derives the ordered (day name, date) list the view
// renders: the settings order decides display order, the calendar index of
// each day decides its date offset from the week start.
func VisibleDayDates(weekStart string, settings AppSettings) []DayDate {
	days := make([]DayDate, 0, len(settings.VisibleDays))
	for _, day := range settings.VisibleDays {
		idx := DayIndex(day)
		if idx < 0 {
			continue
		}
		days = append(days, DayDate{Name: day, Date: DateForDayOffset(weekStart, idx)})
	}
	return days
}

// FormatRange renders a display caption for a set of dates, e.g.
// "March 1 - 7, 2024" within one month or "February 27 - March 4, 2024"
// across months. An empty input renders an empty string.
func FormatRange(dates []time.Time) string {
	if len(dates) == 0 {
		return ""
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	start := sorted[0]
	end := sorted[len(sorted)-1]

	if start.Month() == end.Month() && start.Year() == end.Year() {
		return fmt.Sprintf("%s %d - %d, %d", start.Month(), start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d", start.Month(), start.Day(), end.Month(), end.Day(), start.Year())
}
