package engine_test

import (
	"fmt"
	"testing"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCurrentSuggestions(t *testing.T) {
	schedule := engine.NewEmptySchedule()
	schedule = engine.SetDaySession(schedule, engine.Monday, engine.DaySession{
		Title: "  Go Generics  ", Presenter: "Alice", BackupPresenter: "Bob",
	})
	schedule = engine.SetDaySession(schedule, engine.Wednesday, engine.DaySession{
		Title: "Go Generics", Presenter: "Bob", BackupPresenter: "   ",
	})
	schedule = engine.SetDaySession(schedule, engine.Friday, engine.DaySession{
		Title: "\t", Presenter: "Carol",
	})

	got := engine.ExtractCurrentSuggestions(schedule)

	// Titles: trimmed, whitespace-only dropped, duplicates collapsed.
	assert.Equal(t, []string{"Go Generics"}, got.Titles)
	// Presenters: backups count, first-seen order, dedup across days.
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, got.Presenters)
}

func TestExtractCurrentSuggestions_EmptySchedule(t *testing.T) {
	got := engine.ExtractCurrentSuggestions(engine.NewEmptySchedule())
	assert.Empty(t, got.Titles)
	assert.Empty(t, got.Presenters)
}

func TestMergeSuggestions_UnionExistingFirst(t *testing.T) {
	existing := engine.SuggestionsData{
		Titles:     []string{"Raft", "Paxos"},
		Presenters: []string{"Alice"},
	}
	current := engine.SuggestionsData{
		Titles:     []string{"Paxos", "CRDTs"},
		Presenters: []string{"Bob", "Alice"},
	}

	got := engine.MergeSuggestions(existing, current)

	assert.Equal(t, []string{"Raft", "Paxos", "CRDTs"}, got.Titles)
	assert.Equal(t, []string{"Alice", "Bob"}, got.Presenters)
}

// TestMergeSuggestions_CapEvictsOldest fills the list to the cap and verifies
// that a merge keeps the newest entries, dropping the oldest pre-existing
// ones.
func TestMergeSuggestions_CapEvictsOldest(t *testing.T) {
	existing := engine.SuggestionsData{}
	for i := 0; i < config.MaxSuggestions; i++ {
		existing.Titles = append(existing.Titles, fmt.Sprintf("topic-%02d", i))
	}

	got := engine.MergeSuggestions(existing, engine.SuggestionsData{Titles: []string{"X"}})

	require.Len(t, got.Titles, config.MaxSuggestions)
	assert.NotContains(t, got.Titles, "topic-00", "oldest entry must be evicted")
	assert.Contains(t, got.Titles, "X", "new entry must survive the cap")
	assert.Equal(t, "X", got.Titles[len(got.Titles)-1])
}

// TestMergeSuggestions_CapsIndependently verifies the two lists never affect
// each other's cap.
func TestMergeSuggestions_CapsIndependently(t *testing.T) {
	existing := engine.SuggestionsData{}
	for i := 0; i < config.MaxSuggestions; i++ {
		existing.Titles = append(existing.Titles, fmt.Sprintf("t%d", i))
	}

	got := engine.MergeSuggestions(existing, engine.SuggestionsData{Presenters: []string{"Solo"}})

	assert.Len(t, got.Titles, config.MaxSuggestions)
	assert.Equal(t, []string{"Solo"}, got.Presenters)
}

func TestSanitizeSuggestions(t *testing.T) {
	got := engine.SanitizeSuggestions(engine.SuggestionsData{})
	assert.NotNil(t, got.Titles)
	assert.NotNil(t, got.Presenters)

	// Stored duplicates from older data are collapsed on load.
	got = engine.SanitizeSuggestions(engine.SuggestionsData{
		Titles: []string{"A", "", "A", "B"},
	})
	assert.Equal(t, []string{"A", "B"}, got.Titles)
}
