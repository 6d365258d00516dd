package ui

import (
	"errors"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
)

// rebuildMainContent reconstructs the full main window. Called at startup and
// after anything that invalidates widget labels or the day list (language
// change, visible-day change, preview toggle, reset).
func (app *StudyWeekApp) rebuildMainContent() {
	header := widget.NewLabelWithStyle(app.GetMsg(config.TKeyWinTitle),
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle(app.GetMsg(config.TKeyAppSubtitle),
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	app.captionLabel = widget.NewLabelWithStyle(app.Planner.RangeCaption(),
		fyne.TextAlignCenter, fyne.TextStyle{})

	weekRow := app.buildWeekRow()
	actions := app.buildActionsRow()

	app.daysBox = container.NewVBox()
	app.refreshDayCards()

	content := container.NewBorder(
		container.NewVBox(header, subtitle, app.captionLabel, weekRow, actions),
		nil, nil, nil,
		container.NewVScroll(app.daysBox),
	)
	app.MainWindow.SetContent(content)
}

// buildWeekRow builds the week-start date entry. Any submitted date snaps to
// the start of its week; garbage falls back to the current week.
func (app *StudyWeekApp) buildWeekRow() fyne.CanvasObject {
	weekEntry := widget.NewEntry()
	weekEntry.SetText(app.Planner.WeekStart())
	weekEntry.Validator = func(s string) error {
		if _, err := time.Parse(config.DateFormatISO, s); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrDate))
		}
		return nil
	}
	weekEntry.OnSubmitted = func(s string) {
		normalized := app.Planner.SetWeekStartDate(s)
		weekEntry.SetText(normalized)
		app.refreshDayCards()
		app.publish()
	}

	return container.NewBorder(nil, nil,
		widget.NewLabel(app.GetMsg(config.TKeyLblWeekStart)), nil, weekEntry)
}

// buildActionsRow builds the preview / reset / export / settings buttons.
func (app *StudyWeekApp) buildActionsRow() fyne.CanvasObject {
	previewLabel := config.TKeyBtnPreview
	if app.preview {
		previewLabel = config.TKeyBtnEdit
	}
	previewBtn := widget.NewButtonWithIcon(app.GetMsg(previewLabel), theme.VisibilityIcon(), func() {
		app.preview = !app.preview
		app.rebuildMainContent()
	})

	resetBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReset), theme.ViewRefreshIcon(), func() {
		dialog.ShowConfirm(
			app.GetMsg(config.TKeyConfirmTitle),
			app.GetMsg(config.TKeyConfirmReset),
			func(ok bool) {
				if !ok {
					return
				}
				app.Planner.ResetSchedule()
				app.rebuildMainContent()
				app.publish()
			}, app.MainWindow)
	})

	var exportBtn *widget.Button
	exportBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), func() {
		app.showExportDialog(exportBtn)
	})
	exportBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), func() {
		app.ShowSettingsWindow()
	})

	return container.NewHBox(previewBtn, resetBtn, exportBtn, settingsBtn)
}

// showExportDialog asks for a destination and runs the capture pipeline. The
// export button stays disabled until the capture finishes.
func (app *StudyWeekApp) showExportDialog(exportBtn *widget.Button) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		outputPath := writer.URI().Path()
		// The capture writes the file itself; the writer only served the picker.
		if cerr := writer.Close(); cerr != nil {
			slog.Debug(config.ErrCaptureWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, cerr)
		}

		exportBtn.Disable()
		app.performExport(outputPath, func(err error) {
			exportBtn.Enable()
			if err != nil {
				dialog.ShowError(err, app.MainWindow)
			}
		})
	}, app.MainWindow)
	d.SetFileName(app.Planner.ExportFileName())
	d.Show()
}

// refreshDayCards rebuilds the per-day card list in place.
func (app *StudyWeekApp) refreshDayCards() {
	app.daysBox.Objects = nil
	for _, dd := range app.Planner.DayDates() {
		app.daysBox.Add(app.buildDayCard(dd))
	}
	app.daysBox.Refresh()
	if app.captionLabel != nil {
		app.captionLabel.SetText(app.Planner.RangeCaption())
	}
}

// buildDayCard builds one day's card: editable fields with autocomplete
// options, or read-only labels in preview mode.
func (app *StudyWeekApp) buildDayCard(dd engine.DayDate) fyne.CanvasObject {
	title := app.DayLabel(dd.Name)
	subtitle := dd.Date.Format(config.MonthFormatShort) + " " + dd.Date.Format("2")
	session := app.Planner.Session(dd.Name)

	if app.preview {
		return widget.NewCard(title, subtitle, container.NewVBox(
			app.previewField(config.TKeyLblTopic, session.Title),
			app.previewField(config.TKeyLblPresenter, session.Presenter),
			app.previewField(config.TKeyLblBackup, session.BackupPresenter),
			app.previewField(config.TKeyLblTime, session.Time),
		))
	}

	topicEntry := widget.NewSelectEntry(app.Planner.TitleSuggestions())
	topicEntry.SetText(session.Title)
	topicEntry.OnChanged = app.fieldUpdater(dd.Name, engine.FieldTitle)

	presenterEntry := widget.NewSelectEntry(app.Planner.PresenterSuggestions())
	presenterEntry.SetText(session.Presenter)
	presenterEntry.OnChanged = app.fieldUpdater(dd.Name, engine.FieldPresenter)

	backupEntry := widget.NewSelectEntry(app.Planner.PresenterSuggestions())
	backupEntry.SetText(session.BackupPresenter)
	backupEntry.OnChanged = app.fieldUpdater(dd.Name, engine.FieldBackup)

	timeEntry := widget.NewEntry()
	timeEntry.SetText(session.Time)
	timeEntry.PlaceHolder = config.PlaceholderTime
	timeEntry.OnChanged = app.fieldUpdater(dd.Name, engine.FieldTime)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblTopic), topicEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPresenter), presenterEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBackup), backupEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTime), timeEntry),
	)
	return widget.NewCard(title, subtitle, form)
}

// previewField renders one labelled read-only value, dashing out blanks.
func (app *StudyWeekApp) previewField(labelKey, value string) fyne.CanvasObject {
	if value == "" {
		value = config.EmptyFieldPlaceholder
	}
	label := widget.NewLabelWithStyle(app.GetMsg(labelKey)+":", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewHBox(label, widget.NewLabel(value))
}

// fieldUpdater returns an OnChanged callback bound to one day and field.
// Every keystroke goes through the planner; persistence is debounced there.
func (app *StudyWeekApp) fieldUpdater(day engine.DayName, field engine.SessionField) func(string) {
	return func(value string) {
		app.Planner.UpdateField(day, field, value)
		app.publish()
	}
}
