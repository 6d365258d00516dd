package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/store"
)

// Planner owns the four persisted state values (week start, schedule,
// suggestions, settings) for the lifetime of the process. It is constructed
// once at startup, loads each slot or its default, and persists every
// mutation through the debounced store. All access is guarded by one lock;
// mutations happen synchronously inside UI callbacks, the store's timer only
// decides when persistence happens.
type Planner struct {
	mu    sync.RWMutex
	store *store.Store
	clock Clock

	weekStart   string
	schedule    WeekSchedule
	suggestions SuggestionsData
	settings    AppSettings
}

// NewPlanner loads the persisted state, substituting documented defaults for
// absent or corrupt slots, and restores the structural invariants on
// whatever was loaded.
func NewPlanner(st *store.Store, clock Clock) *Planner {
	p := &Planner{store: st, clock: clock}

	p.weekStart = ParseWeekStart(store.Load(st, config.KeyWeekStart, ""), clock)
	p.schedule = CompleteSchedule(store.Load(st, config.KeySchedule, WeekSchedule{}))
	p.suggestions = SanitizeSuggestions(store.Load(st, config.KeySuggestions, SuggestionsData{}))
	p.settings = SanitizeSettings(store.Load(st, config.KeySettings, AppSettings{}))

	slog.Debug("Planner state loaded",
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyWeek, p.weekStart,
		config.LogKeyCount, len(p.settings.VisibleDays))
	return p
}

// WeekStart returns the current normalized week-start date (YYYY-MM-DD).
func (p *Planner) WeekStart() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.weekStart
}

// Schedule returns a copy of the current week schedule.
func (p *Planner) Schedule() WeekSchedule {
	p.mu.RLock()
	defer p.mu.RUnlock()
	next := make(WeekSchedule, len(p.schedule))
	for k, v := range p.schedule {
		next[k] = v
	}
	return next
}

// Settings returns a copy of the current display settings.
func (p *Planner) Settings() AppSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return AppSettings{VisibleDays: append([]DayName(nil), p.settings.VisibleDays...)}
}

// TitleSuggestions returns the persisted topic suggestions.
func (p *Planner) TitleSuggestions() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.suggestions.Titles...)
}

// PresenterSuggestions returns the persisted presenter suggestions.
func (p *Planner) PresenterSuggestions() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.suggestions.Presenters...)
}

// Session returns the session stored for one day.
func (p *Planner) Session(day DayName) DaySession {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.schedule[day]
}

// SetDaySession replaces one day's session and schedules persistence.
func (p *Planner) SetDaySession(day DayName, session DaySession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.schedule = SetDaySession(p.schedule, day, session)
	store.Save(p.store, config.KeySchedule, p.schedule)
}

// UpdateField sets a single session field on one day and schedules
// persistence.
func (p *Planner) UpdateField(day DayName, field SessionField, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.schedule = SetDaySession(p.schedule, day, UpdateSessionField(p.schedule[day], field, value))
	store.Save(p.store, config.KeySchedule, p.schedule)

	slog.Debug(config.MsgSessionUpdated,
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyDay, string(day),
		config.LogKeyField, field.String())
}

// SetWeekStartDate normalizes a user-picked date to the week anchor, stores
// it, and returns the normalized value. Malformed input snaps to the current
// week.
func (p *Planner) SetWeekStartDate(value string) string {
	normalized := ParseWeekStart(value, p.clock)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.weekStart = normalized
	store.Save(p.store, config.KeyWeekStart, p.weekStart)

	slog.Info(config.MsgWeekChanged,
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyWeek, normalized)
	return normalized
}

// ToggleVisibleDay flips one day's visibility. It reports whether the
// settings changed; a toggle that would hide the last visible day is
// rejected as a no-op.
func (p *Planner) ToggleVisibleDay(day DayName) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := ToggleVisibleDay(p.settings, day)
	if len(next.VisibleDays) == len(p.settings.VisibleDays) {
		slog.Debug(config.MsgToggleRejected,
			config.LogKeyComponent, config.CompPlanner,
			config.LogKeyDay, string(day))
		return false
	}
	p.settings = next
	store.Save(p.store, config.KeySettings, p.settings)

	slog.Debug(config.MsgDayToggled,
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyDay, string(day),
		config.LogKeyCount, len(next.VisibleDays))
	return true
}

// SetVisibleDays replaces the visible-day selection wholesale (settings
// dialog save). An empty selection is rejected and reported false.
func (p *Planner) SetVisibleDays(days []DayName) bool {
	sanitized := SanitizeSettings(AppSettings{VisibleDays: days})
	if len(days) == 0 {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = sanitized
	store.Save(p.store, config.KeySettings, p.settings)
	return true
}

// ResetSchedule discards all sessions and snaps the week start back to the
// current week. Both happen under one lock so no caller observes a state
// where only one of them was reset.
func (p *Planner) ResetSchedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.schedule = NewEmptySchedule()
	p.weekStart = CurrentWeekStart(p.clock)
	store.Save(p.store, config.KeySchedule, p.schedule)
	store.Save(p.store, config.KeyWeekStart, p.weekStart)

	slog.Info(config.MsgScheduleReset,
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyWeek, p.weekStart)
}

// BeforeExport merges the current schedule's topics and presenters into the
// persisted suggestions and writes them through the immediate path, so the
// exported artifact and the stored suggestions agree before the capture
// starts.
func (p *Planner) BeforeExport() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.suggestions = MergeSuggestions(p.suggestions, ExtractCurrentSuggestions(p.schedule))
	store.SaveImmediate(p.store, config.KeySuggestions, p.suggestions)

	slog.Debug(config.MsgBeforeExport,
		config.LogKeyComponent, config.CompPlanner,
		config.LogKeyCount, len(p.suggestions.Titles)+len(p.suggestions.Presenters))
}

// ImportPresenters merges externally sourced names (roster import) into the
// presenter suggestions and persists immediately. Returns how many new names
// were added.
func (p *Planner) ImportPresenters(names []string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	before := len(p.suggestions.Presenters)
	p.suggestions = MergeSuggestions(p.suggestions, SuggestionsData{Presenters: names})
	store.SaveImmediate(p.store, config.KeySuggestions, p.suggestions)

	added := len(p.suggestions.Presenters) - before
	if added < 0 {
		added = 0
	}
	return added
}

// DayDates derives the ordered (day name, date) pairs for the visible days.
func (p *Planner) DayDates() []DayDate {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return VisibleDayDates(p.weekStart, p.settings)
}

// RangeCaption formats the display caption for the visible date range.
func (p *Planner) RangeCaption() string {
	days := p.DayDates()
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	return FormatRange(dates)
}

// ExportFileName names the exported artifact after the week it shows.
func (p *Planner) ExportFileName() string {
	return fmt.Sprintf(config.FormatExportFile, p.WeekStart())
}

// Flush commits pending debounced writes. Called on shutdown.
func (p *Planner) Flush() {
	p.store.Flush()
}
