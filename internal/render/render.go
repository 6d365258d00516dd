// Package render turns a week schedule into the self-contained HTML page
// served on localhost. The page doubles as the image export source: the
// headless capture waits for the data-ready marker the template sets on its
// body element.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
)

//go:embed schedule.tmpl.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "schedule.tmpl.html"))

// Page is the root template context.
type Page struct {
	Title   string
	Caption string
	Days    []DayCard
	Footer  string
}

// DayCard is one rendered day column.
type DayCard struct {
	Label     string
	DateLabel string
	Topic     string
	Presenter string
	Backup    string
	Time      string
}

// LabelFunc localizes a day name for display. A nil func falls back to the
// canonical English name.
type LabelFunc func(engine.DayName) string

// BuildPage assembles the template context for one week. Blank session
// fields render as a placeholder dash so card layout stays stable.
func BuildPage(title, caption string, days []engine.DayDate, schedule engine.WeekSchedule, label LabelFunc) Page {
	page := Page{
		Title:   title,
		Caption: caption,
		Footer:  config.ClubName,
	}

	for _, dd := range days {
		session := schedule[dd.Name]
		name := string(dd.Name)
		if label != nil {
			name = label(dd.Name)
		}
		page.Days = append(page.Days, DayCard{
			Label:     name,
			DateLabel: fmt.Sprintf("%s %d", dd.Date.Format(config.MonthFormatShort), dd.Date.Day()),
			Topic:     orPlaceholder(session.Title),
			Presenter: orPlaceholder(session.Presenter),
			Backup:    orPlaceholder(session.BackupPresenter),
			Time:      orPlaceholder(session.Time),
		})
	}
	return page
}

// Render executes the page template. Template data is HTML-escaped by
// html/template, so user-typed session text cannot inject markup.
func Render(page Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRenderPage, err)
	}

	slog.Debug(config.MsgPageUpdated,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyCount, len(page.Days),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func orPlaceholder(value string) string {
	if value == "" {
		return config.EmptyFieldPlaceholder
	}
	return value
}
