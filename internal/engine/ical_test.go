package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarFixture() (string, engine.WeekSchedule) {
	schedule := engine.NewEmptySchedule()
	schedule = engine.SetDaySession(schedule, engine.Monday, engine.DaySession{
		Title: "Distributed Consensus", Presenter: "Alice", BackupPresenter: "Bob", Time: "7:30 PM",
	})
	schedule = engine.SetDaySession(schedule, engine.Thursday, engine.DaySession{
		Title: "Fuzzing", Presenter: "Carol", Time: "gibberish",
	})
	return "2024-03-03", schedule
}

func TestBuildWeekCalendar_Events(t *testing.T) {
	weekStart, schedule := calendarFixture()
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	ics, err := engine.BuildWeekCalendar(weekStart, schedule, engine.DefaultSettings(), now)
	require.NoError(t, err)

	body := string(ics)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, config.ICalProdid)
	assert.Contains(t, body, "SUMMARY:Distributed Consensus")
	assert.Contains(t, body, "SUMMARY:Fuzzing")
	assert.Contains(t, body, "Presenter: Alice")
	assert.Contains(t, body, "Backup: Bob")
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"), "only filled visible days become events")
}

// TestBuildWeekCalendar_TimedVsAllDay checks the time-parsing split: a
// parseable session time yields DTSTART and DTEND, garbage degrades to an
// all-day event.
func TestBuildWeekCalendar_TimedVsAllDay(t *testing.T) {
	weekStart, schedule := calendarFixture()
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	ics, err := engine.BuildWeekCalendar(weekStart, schedule, engine.DefaultSettings(), now)
	require.NoError(t, err)
	body := string(ics)

	// Monday 2024-03-04 at 19:30 with a one-hour DTEND.
	assert.Contains(t, body, "DTSTART:20240304T193000")
	assert.Contains(t, body, "DTEND:20240304T203000")

	// Thursday 2024-03-07 falls back to a date-valued start and no end.
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20240307")
	assert.Equal(t, 1, strings.Count(body, "DTEND"))
}

// TestBuildWeekCalendar_HiddenDaysExcluded hides the only filled day and
// expects the stub calendar.
func TestBuildWeekCalendar_HiddenDaysExcluded(t *testing.T) {
	weekStart, schedule := calendarFixture()
	settings := engine.AppSettings{VisibleDays: []engine.DayName{engine.Sunday, engine.Saturday}}

	ics, err := engine.BuildWeekCalendar(weekStart, schedule, settings, time.Now())
	require.NoError(t, err)

	assert.Equal(t, config.StubVCalendar, string(ics))
}

func TestBuildWeekCalendar_EmptyWeekServesStub(t *testing.T) {
	ics, err := engine.BuildWeekCalendar("2024-03-03", engine.NewEmptySchedule(), engine.DefaultSettings(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(ics))
}

// TestBuildWeekCalendar_DeterministicUIDs republishes the same week and
// expects identical UIDs, so subscribed clients never see churn.
func TestBuildWeekCalendar_DeterministicUIDs(t *testing.T) {
	weekStart, schedule := calendarFixture()
	now1 := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	now2 := time.Date(2024, 3, 7, 22, 0, 0, 0, time.UTC)

	ics1, err := engine.BuildWeekCalendar(weekStart, schedule, engine.DefaultSettings(), now1)
	require.NoError(t, err)
	ics2, err := engine.BuildWeekCalendar(weekStart, schedule, engine.DefaultSettings(), now2)
	require.NoError(t, err)

	assert.Equal(t, extractUIDs(string(ics1)), extractUIDs(string(ics2)))
}

func extractUIDs(body string) []string {
	var uids []string
	for _, line := range strings.Split(body, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			uids = append(uids, line)
		}
	}
	return uids
}
