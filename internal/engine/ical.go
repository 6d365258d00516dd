package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/steadyreaders/go-studyweek/internal/config"
)

// BuildWeekCalendar renders the visible, filled sessions of one week as an
// iCalendar feed. A session is included when its day is visible and its
// trimmed topic is non-empty. Sessions with a parseable start time become
// timed events with a fixed duration; others fall back to all-day events.
func BuildWeekCalendar(weekStart string, schedule WeekSchedule, settings AppSettings, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	count := 0
	for _, dd := range VisibleDayDates(weekStart, settings) {
		session := schedule[dd.Name]
		title := strings.TrimSpace(session.Title)
		if title == "" {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, sessionUID(weekStart, dd.Name, title))
		event.Props.SetText(config.PropSummary, title)

		if desc := eventDescription(session); desc != "" {
			event.Props.SetText(config.PropDescription, desc)
		}

		if start, ok := parseSessionTime(dd.Date, session.Time); ok {
			dtStart := ical.NewProp(config.PropDTStart)
			dtStart.SetDateTime(start)
			event.Props.Set(dtStart)

			dtEnd := ical.NewProp(config.PropDTEnd)
			dtEnd.SetDateTime(start.Add(config.SessionDuration))
			event.Props.Set(dtEnd)
		} else {
			dtStart := ical.NewProp(config.PropDTStart)
			dtStart.SetDate(dd.Date)
			event.Props.Set(dtStart)
		}

		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
		count++
	}

	// An empty VCALENDAR with no components is rejected by some clients, so
	// an empty week is served as a constant stub instead.
	if count == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyWeek, weekStart,
		config.LogKeyCount, count)
	return buf.Bytes(), nil
}

// sessionUID derives a deterministic UID from the week, day, and topic so
// re-publishing an unchanged week never churns event identities in
// subscribed clients.
func sessionUID(weekStart string, day DayName, title string) string {
	input := fmt.Sprintf(config.FormatHashInput, weekStart, string(day), title)
	hash := sha256.Sum256([]byte(config.UIDSalt + input))
	return fmt.Sprintf(config.FormatUID,
		fmt.Sprintf("%x", hash[:config.UIDHashLength]), string(day), config.ICalDomain)
}

// eventDescription summarizes the presenter line-up for the event body.
func eventDescription(session DaySession) string {
	presenter := strings.TrimSpace(session.Presenter)
	backup := strings.TrimSpace(session.BackupPresenter)
	switch {
	case presenter != "" && backup != "":
		return fmt.Sprintf(config.FormatEventDescription, presenter, backup)
	case presenter != "":
		return fmt.Sprintf(config.FormatEventPresenter, presenter)
	default:
		return ""
	}
}

// parseSessionTime combines a day's date with the free-text time field. The
// field is user-typed, so several layouts are accepted; anything else means
// "no usable time".
func parseSessionTime(date time.Time, value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	layouts := []string{config.TimeFormat12H, config.TimeFormat12HTight, config.TimeFormat24H}
	for _, layout := range layouts {
		t, err := time.Parse(layout, strings.ToUpper(value))
		if err != nil {
			continue
		}
		return time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
