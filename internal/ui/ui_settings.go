package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	entryPort  *NumericalEntry
	dayChecks  map[engine.DayName]*widget.Check
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *StudyWeekApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- 1. General Section (Language & Port) ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. Visible Days Section ---
	daysCard := app.buildDaysCard(sw, w)

	// --- 3. Roster Section ---
	rosterCard := app.buildRosterCard(w, sw, onLayoutChange)

	// --- Actions ---
	saveAction := func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if len(checkedDays(sw)) == 0 {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyNoDays)), w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		daysCard,
		rosterCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// buildDaysCard constructs the visible-day checkboxes, one per calendar day.
// Unchecking the last remaining day is reverted on the spot.
func (app *StudyWeekApp) buildDaysCard(sw *settingsWidgets, w fyne.Window) *widget.Card {
	sw.dayChecks = make(map[engine.DayName]*widget.Check, config.DaysPerWeek)
	visible := make(map[engine.DayName]bool)
	for _, day := range app.Planner.Settings().VisibleDays {
		visible[day] = true
	}

	box := container.NewVBox()
	for _, day := range engine.DayNames {
		day := day
		check := widget.NewCheck(app.DayLabel(day), nil)
		check.Checked = visible[day]
		check.OnChanged = func(on bool) {
			if !on && len(checkedDays(sw)) == 0 {
				check.SetChecked(true)
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyNoDays)), w)
			}
		}
		sw.dayChecks[day] = check
		box.Add(check)
	}

	card := widget.NewCard(app.GetMsg(config.TKeyLblVisibleDays), app.GetMsg(config.TKeyHelpVisible), box)
	return card
}

// checkedDays lists the currently checked days in canonical order.
func checkedDays(sw *settingsWidgets) []engine.DayName {
	var days []engine.DayName
	for _, day := range engine.DayNames {
		if check, ok := sw.dayChecks[day]; ok && check.Checked {
			days = append(days, day)
		}
	}
	return days
}

// buildRosterCard constructs the presenter roster source UI.
func (app *StudyWeekApp) buildRosterCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefRosterURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefRosterUser))

	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefRosterPath))

	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)

	webForm := widget.NewForm(itemURL, itemUser, itemPass)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	updateVis := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis

	if app.Preferences.String(config.PrefRosterMode) == config.RosterModeWeb {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	}
	updateVis(sw.modeSelect.Selected)

	var importBtn *widget.Button
	importBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.DownloadIcon(), func() {
		// Persist the source fields first so the import sees what the user typed.
		app.saveRosterPrefs(sw)
		importBtn.Disable()
		app.performRosterImport(func(added int, err error) {
			importBtn.Enable()
			if err != nil {
				app.App.SendNotification(fyne.NewNotification(
					config.AppName, app.GetMsg(config.TKeyNotifImportErr)))
				return
			}
			app.App.SendNotification(fyne.NewNotification(
				config.AppName,
				app.GetMsgData(config.TKeyNotifImported, map[string]interface{}{"Count": added})))
		})
	})

	return widget.NewCard(app.GetMsg(config.TKeyLblRoster), app.GetMsg(config.TKeyHelpRoster),
		container.NewVBox(sw.modeSelect, webForm, localForm, importBtn))
}

// saveRosterPrefs persists the roster source fields and credentials.
func (app *StudyWeekApp) saveRosterPrefs(sw *settingsWidgets) {
	modeMap := map[string]string{
		app.GetMsg(config.TKeyModeCardDAV): config.RosterModeWeb,
		app.GetMsg(config.TKeyModeLocal):   config.RosterModeLocal,
	}

	app.Preferences.SetString(config.PrefRosterMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefRosterURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefRosterUser, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefRosterPath, sw.pathEntry.Text)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring",
				config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}
}

// saveSettings persists the dialog state and refreshes the main window.
func (app *StudyWeekApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.saveRosterPrefs(sw)
	app.Planner.SetVisibleDays(checkedDays(sw))

	app.UpdateLocalizer()
	app.rebuildMainContent()
	app.publish()

	w.Close()
}
