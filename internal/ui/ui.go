// Package ui implements the Fyne desktop frontend: the schedule editor
// window, the settings dialog, and the glue that publishes the rendered
// schedule to the local HTTP server for capture and feed subscription.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/steadyreaders/go-studyweek/internal/export"
	"github.com/steadyreaders/go-studyweek/internal/render"
	"github.com/steadyreaders/go-studyweek/internal/server"
	"github.com/zalando/go-keyring"
)

// StudyWeekApp encapsulates the UI state, preferences, and background services.
type StudyWeekApp struct {
	App         fyne.App
	MainWindow  fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Planner *engine.Planner
	Server  *server.ScheduleServer
	Fetcher engine.RosterFetcher

	SupportedLanguages []string

	// settingsWindow is non-nil while the settings dialog is open.
	settingsWindow fyne.Window

	// preview switches the day cards between editable fields and the
	// read-only rendering that matches the exported image.
	preview bool

	// Rebuilt widgets, owned by the Fyne goroutine.
	captionLabel *widget.Label
	daysBox      *fyne.Container
}

// NewStudyWeekApp constructs the application and wires dependencies.
func NewStudyWeekApp(a fyne.App, ctx context.Context, planner *engine.Planner, srv *server.ScheduleServer, fetcher engine.RosterFetcher) *StudyWeekApp {
	return &StudyWeekApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Planner:            planner,
		Server:             srv,
		Fetcher:            fetcher,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the background HTTP server and the main UI loop. It blocks
// until the application quits.
func (app *StudyWeekApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.MainWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.MainWindow.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.MainWindow.SetMaster()
	app.rebuildMainContent()
	app.publish()

	app.MainWindow.Show()
	app.App.Run()
}

// publish renders the current schedule and pushes both artifacts (HTML page,
// iCalendar feed) to the local server. Safe to call from any goroutine; the
// planner snapshot is taken under its own lock.
func (app *StudyWeekApp) publish() {
	page := render.BuildPage(
		app.GetMsg(config.TKeyWinTitle),
		app.Planner.RangeCaption(),
		app.Planner.DayDates(),
		app.Planner.Schedule(),
		app.DayLabel,
	)

	html, err := render.Render(page)
	if err != nil {
		slog.Error(config.ErrRenderPage,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	} else {
		app.Server.UpdatePage(html)
	}

	ics, err := engine.BuildWeekCalendar(
		app.Planner.WeekStart(), app.Planner.Schedule(), app.Planner.Settings(), time.Now())
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Server.UpdateCalendar(ics)
}

// performExport runs the export pipeline off the Fyne goroutine: flush
// suggestions, republish, capture the page, then report back on the UI
// thread. done is invoked with the final error (nil on success).
func (app *StudyWeekApp) performExport(outputPath string, done func(error)) {
	go func() {
		app.Planner.BeforeExport()
		app.publish()

		err := export.CaptureSchedule(app.Ctx, export.Options{
			URL:        app.Server.URL(),
			OutputPath: outputPath,
		})

		fyne.Do(func() {
			if err != nil {
				slog.Error(config.ErrExportFailed,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyError, err)
			} else {
				app.App.SendNotification(fyne.NewNotification(
					config.AppName, app.GetMsg(config.TKeyNotifExported)))
			}
			done(err)
		})
	}()
}

// performRosterImport fetches the configured vCard roster and merges the
// names into the presenter suggestions. done receives the number of added
// names, or the error.
func (app *StudyWeekApp) performRosterImport(done func(added int, err error)) {
	cfg := app.loadRosterConfig()
	importer := &engine.RosterImporter{Fetcher: app.Fetcher}

	go func() {
		names, err := importer.Names(app.Ctx, cfg)

		fyne.Do(func() {
			if err != nil {
				slog.Error(config.ErrRosterImport,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyError, err)
				done(0, err)
				return
			}
			added := app.Planner.ImportPresenters(names)
			slog.Info(config.MsgImportDone,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyAdded, added)
			done(added, nil)
		})
	}()
}

// loadRosterConfig assembles the roster source from UI preferences and the
// system keyring.
func (app *StudyWeekApp) loadRosterConfig() engine.RosterConfig {
	cfg := engine.RosterConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefRosterMode, config.RosterModeLocal),
		LocalPath: app.Preferences.String(config.PrefRosterPath),
		WebURL:    app.Preferences.String(config.PrefRosterURL),
		WebUser:   app.Preferences.String(config.PrefRosterUser),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}
