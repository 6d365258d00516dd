// Package export captures the served schedule page as a raster image using
// headless Chromium. The page marks itself ready via a DOM attribute, so the
// capture never races the render.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/steadyreaders/go-studyweek/internal/config"
)

// Options defines parameters for one screenshot capture.
type Options struct {
	// URL of the schedule page, e.g. "http://127.0.0.1:18090/".
	URL string

	// OutputPath is where the JPEG will be written.
	OutputPath string

	// Width and Height are the viewport dimensions in pixels. Zero values
	// fall back to the standard export viewport.
	Width  int
	Height int

	// Quality is the JPEG quality (1-100). Zero falls back to the default.
	Quality int

	// Timeout bounds the entire capture operation.
	Timeout time.Duration
}

// CaptureSchedule launches a headless Chromium instance, navigates to the
// schedule page, waits for the ready marker plus a short settle delay for
// final paints, and writes a full-page JPEG screenshot.
func CaptureSchedule(parentCtx context.Context, opts Options) error {
	if opts.URL == "" {
		return errors.New(config.ErrCaptureURL)
	}
	if opts.OutputPath == "" {
		return errors.New(config.ErrCapturePath)
	}
	if opts.Width <= 0 {
		opts.Width = config.ExportViewportWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.ExportViewportHeight
	}
	if opts.Quality <= 0 {
		opts.Quality = config.ExportQuality
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.ExportTimeout
	}

	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompExport,
		config.LogKeyPath, opts.OutputPath,
	)
	log.Info(config.MsgExportStart, config.LogKeyURL, opts.URL)

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var image []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(config.ExportReadySelector, chromedp.ByQuery),
		chromedp.Sleep(config.ExportSettleDelay),
		chromedp.FullScreenshot(&image, opts.Quality),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCaptureRun, err)
	}

	if err := os.WriteFile(opts.OutputPath, image, config.FilePermExport); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCaptureWrite, err)
	}

	log.Info(config.MsgExportDone,
		config.LogKeySizeBytes, len(image),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return nil
}
