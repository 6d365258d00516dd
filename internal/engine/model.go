// Package engine holds the schedule domain: the week data model, date/week
// arithmetic, suggestion aggregation, and the Planner that ties them to the
// persistence layer.
package engine

import "github.com/steadyreaders/go-studyweek/internal/config"

// DayName is one of the seven fixed English day names. Day names double as
// the JSON keys of a persisted WeekSchedule.
type DayName string

const (
	Sunday    DayName = "Sunday"
	Monday    DayName = "Monday"
	Tuesday   DayName = "Tuesday"
	Wednesday DayName = "Wednesday"
	Thursday  DayName = "Thursday"
	Friday    DayName = "Friday"
	Saturday  DayName = "Saturday"
)

// DayNames lists the seven days in calendar order, Sunday first. This is
// both the canonical display order and the offset basis for per-day dates.
var DayNames = [config.DaysPerWeek]DayName{
	Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday,
}

// DayIndex returns the calendar offset (0..6) of a day name, or -1 for an
// unknown name.
func DayIndex(day DayName) int {
	for i, d := range DayNames {
		if d == day {
			return i
		}
	}
	return -1
}

// DaySession is the editable record for one calendar day. All fields default
// to the empty string except Time, which defaults to the fixed sentinel.
// No field is ever absent once a session exists.
type DaySession struct {
	Title           string `json:"title"`
	Presenter       string `json:"presenter"`
	BackupPresenter string `json:"backupPresenter"`
	Time            string `json:"time"`
}

// NewEmptySession returns a blank session carrying the default time sentinel.
func NewEmptySession() DaySession {
	return DaySession{Time: config.DefaultSessionTime}
}

// WeekSchedule maps each of the seven day names to exactly one session.
// All seven keys are always present; mutation goes through SetDaySession,
// which replaces rather than mutates.
type WeekSchedule map[DayName]DaySession

// NewEmptySchedule returns a fresh schedule with an empty session per day.
func NewEmptySchedule() WeekSchedule {
	s := make(WeekSchedule, config.DaysPerWeek)
	for _, day := range DayNames {
		s[day] = NewEmptySession()
	}
	return s
}

// SetDaySession returns a new schedule identical to the input except for the
// one replaced key. The input is never mutated.
func SetDaySession(schedule WeekSchedule, day DayName, session DaySession) WeekSchedule {
	next := make(WeekSchedule, len(schedule))
	for k, v := range schedule {
		next[k] = v
	}
	next[day] = session
	return next
}

// CompleteSchedule fills any missing day keys with empty sessions and drops
// unknown keys, restoring the all-seven-keys invariant after a load from a
// possibly stale or corrupt slot.
func CompleteSchedule(schedule WeekSchedule) WeekSchedule {
	next := make(WeekSchedule, config.DaysPerWeek)
	for _, day := range DayNames {
		if session, ok := schedule[day]; ok {
			next[day] = session
		} else {
			next[day] = NewEmptySession()
		}
	}
	return next
}

// SessionField identifies one editable session field for typed updates.
type SessionField int

const (
	FieldTitle SessionField = iota
	FieldPresenter
	FieldBackup
	FieldTime
)

// String names the field for logging.
func (f SessionField) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldPresenter:
		return "presenter"
	case FieldBackup:
		return "backupPresenter"
	case FieldTime:
		return "time"
	}
	return "unknown"
}

// UpdateSessionField returns a copy of session with the addressed field set.
func UpdateSessionField(session DaySession, field SessionField, value string) DaySession {
	switch field {
	case FieldTitle:
		session.Title = value
	case FieldPresenter:
		session.Presenter = value
	case FieldBackup:
		session.BackupPresenter = value
	case FieldTime:
		session.Time = value
	}
	return session
}

// AppSettings holds the user display settings: which days are shown and in
// what order.
type AppSettings struct {
	VisibleDays []DayName `json:"visibleDays"`
}

// DefaultSettings shows all seven days in canonical order.
func DefaultSettings() AppSettings {
	return AppSettings{VisibleDays: DayNames[:]}
}

// ToggleVisibleDay flips the membership of day in the visible set. The
// resulting order is always canonical. A toggle that would leave no visible
// day returns the input unchanged; callers treat that as a no-op, not an
// error.
func ToggleVisibleDay(settings AppSettings, day DayName) AppSettings {
	if DayIndex(day) < 0 {
		return settings
	}

	visible := make(map[DayName]bool, len(settings.VisibleDays))
	for _, d := range settings.VisibleDays {
		visible[d] = true
	}
	visible[day] = !visible[day]

	next := make([]DayName, 0, config.DaysPerWeek)
	for _, d := range DayNames {
		if visible[d] {
			next = append(next, d)
		}
	}
	if len(next) == 0 {
		return settings
	}
	return AppSettings{VisibleDays: next}
}

// SanitizeSettings drops unknown day names and duplicates from loaded
// settings, preserving the stored order. An empty result falls back to the
// default (all seven days).
func SanitizeSettings(settings AppSettings) AppSettings {
	seen := make(map[DayName]bool, config.DaysPerWeek)
	next := make([]DayName, 0, config.DaysPerWeek)
	for _, d := range settings.VisibleDays {
		if DayIndex(d) < 0 || seen[d] {
			continue
		}
		seen[d] = true
		next = append(next, d)
	}
	if len(next) == 0 {
		return DefaultSettings()
	}
	return AppSettings{VisibleDays: next}
}
