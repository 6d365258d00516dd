package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/steadyreaders/go-studyweek/internal/config"
)

// RosterConfig describes where the presenter roster (a vCard address book)
// comes from.
type RosterConfig struct {
	Mode      string // config.RosterModeLocal or config.RosterModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// RosterImporter reads a vCard stream and extracts presenter names to seed
// the autocomplete suggestions.
type RosterImporter struct {
	Fetcher RosterFetcher // Interface for network abstraction.
}

// Names runs the fetch-and-parse pipeline and returns the deduplicated
// display names found in the roster, in document order.
func (ri *RosterImporter) Names(ctx context.Context, cfg RosterConfig) ([]string, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompRoster,
		config.LogKeyMode, cfg.Mode,
	)
	log.Info(config.MsgImportStart)

	reader, err := ri.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	// Best effort close. Errors closing a read-only stream are rarely actionable.
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := collectNames(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgImportDone,
		config.LogKeyCount, len(names),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return names, nil
}

// acquireStream opens the appropriate roster source based on configuration.
func (ri *RosterImporter) acquireStream(ctx context.Context, cfg RosterConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.RosterModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.RosterModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if ri.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return ri.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// collectNames decodes the vCard stream, skipping malformed cards to
// maximize data recovery. Name strategy: FN (Formatted) > N (Structured).
func collectNames(ctx context.Context, r io.Reader) ([]string, error) {
	decoder := vcard.NewDecoder(r)
	seen := make(map[string]bool)
	var names []string

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompRoster,
				config.LogKeyError, err)
			continue
		}

		var name string
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
