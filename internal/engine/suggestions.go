package engine

import (
	"strings"

	"github.com/steadyreaders/go-studyweek/internal/config"
)

// SuggestionsData is the persisted autocomplete memory: topics and presenter
// names seen in past schedules. Each list is deduplicated and capped; only
// the Suggestion Aggregator mutates it, never direct schedule edits.
type SuggestionsData struct {
	Titles     []string `json:"titles"`
	Presenters []string `json:"presenters"`
}

// SanitizeSuggestions replaces nil slices from a loaded slot with empty ones
// and re-applies dedup and cap in case the stored data predates them.
func SanitizeSuggestions(data SuggestionsData) SuggestionsData {
	return SuggestionsData{
		Titles:     mergeCapped(nil, data.Titles, config.MaxSuggestions),
		Presenters: mergeCapped(nil, data.Presenters, config.MaxSuggestions),
	}
}

// ExtractCurrentSuggestions scans all seven day sessions in calendar order
// and collects the trimmed, non-empty topics and presenter names. Backup
// presenters count as presenters. Order is first-seen; consumers treat the
// lists as sets.
func ExtractCurrentSuggestions(schedule WeekSchedule) SuggestionsData {
	current := SuggestionsData{Titles: []string{}, Presenters: []string{}}
	seenTitles := make(map[string]bool)
	seenPresenters := make(map[string]bool)

	for _, day := range DayNames {
		session := schedule[day]

		if title := strings.TrimSpace(session.Title); title != "" && !seenTitles[title] {
			seenTitles[title] = true
			current.Titles = append(current.Titles, title)
		}
		for _, name := range []string{session.Presenter, session.BackupPresenter} {
			if name = strings.TrimSpace(name); name != "" && !seenPresenters[name] {
				seenPresenters[name] = true
				current.Presenters = append(current.Presenters, name)
			}
		}
	}
	return current
}

// MergeSuggestions unions existing and current suggestions, existing entries
// first, then truncates each list independently to the last MaxSuggestions
// entries. Oldest pre-existing entries are evicted first once the cap is
// exceeded.
func MergeSuggestions(existing, current SuggestionsData) SuggestionsData {
	return SuggestionsData{
		Titles:     mergeCapped(existing.Titles, current.Titles, config.MaxSuggestions),
		Presenters: mergeCapped(existing.Presenters, current.Presenters, config.MaxSuggestions),
	}
}

// mergeCapped appends b after a with dedup in insertion order, then keeps
// the last limit entries.
func mergeCapped(a, b []string, limit int) []string {
	seen := make(map[string]bool, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			merged = append(merged, v)
		}
	}
	if len(merged) > limit {
		merged = merged[len(merged)-limit:]
	}
	return merged
}
