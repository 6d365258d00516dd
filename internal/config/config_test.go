package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/stretchr/testify/assert"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalProdid", config.ICalProdid},
		{"KeyWeekStart", config.KeyWeekStart},
		{"KeySchedule", config.KeySchedule},
		{"KeySuggestions", config.KeySuggestions},
		{"KeySettings", config.KeySettings},
		{"ExportReadySelector", config.ExportReadySelector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestStorageKeys_Distinct guards against two state slots colliding on the
// same preference key.
func TestStorageKeys_Distinct(t *testing.T) {
	keys := []string{
		config.KeyWeekStart,
		config.KeySchedule,
		config.KeySuggestions,
		config.KeySettings,
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "storage key %q is duplicated", k)
		seen[k] = true
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, config.DebounceWrite, "Debounce window is part of the persistence contract")
	assert.Greater(t, config.MaxSuggestions, 0)
	assert.Equal(t, 7, config.DaysPerWeek)
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)

	// The default session time must parse with the primary time layout.
	_, err := time.Parse(config.TimeFormat12H, config.DefaultSessionTime)
	assert.NoError(t, err, "DefaultSessionTime must match TimeFormat12H")
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-StudyWeek/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.ExportTimeout, config.ExportSettleDelay, "capture timeout must cover the settle delay")

	assert.Greater(t, int64(config.MaxHTTPResponseSize), int64(0), "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")

	assert.GreaterOrEqual(t, config.ExportQuality, 1)
	assert.LessOrEqual(t, config.ExportQuality, 100)
}

// TestStubVCalendar_WellFormed checks the empty-feed fallback is a valid
// minimal calendar object.
func TestStubVCalendar_WellFormed(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(config.StubVCalendar, "END:VCALENDAR\r\n"))
	assert.Contains(t, config.StubVCalendar, config.ICalProdid)
}
