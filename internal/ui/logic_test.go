package ui

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/steadyreaders/go-studyweek/internal/server"
	"github.com/steadyreaders/go-studyweek/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApp_LoadRosterConfig tests the conversion of UI preferences to the
// engine roster config. Being in package 'ui' gives access to the private
// method.
func TestApp_LoadRosterConfig(t *testing.T) {
	a := test.NewApp()
	app := &StudyWeekApp{
		App:         a,
		Preferences: a.Preferences(),
	}

	// Fresh preferences default to the local-file mode.
	cfg := app.loadRosterConfig()
	assert.Equal(t, config.RosterModeLocal, cfg.Mode)

	app.Preferences.SetString(config.PrefRosterMode, config.RosterModeWeb)
	app.Preferences.SetString(config.PrefRosterURL, "https://dav.example.com/book.vcf")
	app.Preferences.SetString(config.PrefRosterPath, "/tmp/book.vcf")

	cfg = app.loadRosterConfig()
	assert.Equal(t, config.RosterModeWeb, cfg.Mode)
	assert.Equal(t, "https://dav.example.com/book.vcf", cfg.WebURL)
	assert.Equal(t, "/tmp/book.vcf", cfg.LocalPath)
	// No username configured, so no keyring lookup and no password.
	assert.Empty(t, cfg.WebPass)
}

// TestApp_PublishFlow wires a real planner and a listening server into the
// app and checks publish() makes both artifacts reachable over HTTP.
func TestApp_PublishFlow(t *testing.T) {
	const port = "18098"

	a := test.NewApp()
	planner := engine.NewPlanner(store.New(store.NewMemoryBackend(), 0), engine.RealClock{})
	planner.UpdateField(engine.Monday, engine.FieldTitle, "Integration Topic")
	planner.UpdateField(engine.Monday, engine.FieldTime, "7:00 PM")

	srv := server.NewScheduleServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Start(ctx) }()

	app := &StudyWeekApp{
		App:         a,
		Preferences: a.Preferences(),
		Planner:     planner,
		Server:      srv,
	}
	app.SetupI18n()

	baseURL := "http://127.0.0.1:" + port
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + config.RouteHealth)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond)

	app.publish()

	resp, err := http.Get(baseURL + config.RoutePage)
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), "Integration Topic")

	resp, err = http.Get(baseURL + config.RouteCalendar)
	require.NoError(t, err)
	feed, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(feed), "SUMMARY:Integration Topic")
}
