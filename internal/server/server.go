package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/steadyreaders/go-studyweek/internal/config"
)

// cacheItem stores one rendered artifact with its HTTP caching metadata.
type cacheItem struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// ScheduleServer serves the rendered schedule page and its iCalendar feed on
// the loopback interface. The page is the source for the headless image
// capture; the feed can be subscribed to from a calendar client.
type ScheduleServer struct {
	// Each artifact sits behind its own atomic.Pointer for lock-free reads.
	// Clients (the capture process, feed pollers) read far more often than
	// the UI publishes, so this keeps the GET path contention-free.
	page     atomic.Pointer[cacheItem]
	calendar atomic.Pointer[cacheItem]
	Port     string
}

// NewScheduleServer creates a new instance of the server.
func NewScheduleServer(port string) *ScheduleServer {
	return &ScheduleServer{
		Port: port,
	}
}

// URL returns the loopback address of the schedule page.
func (s *ScheduleServer) URL() string {
	return config.SchemeHTTP + "://" + config.LocalhostBindAddr + config.AddrSeparator + s.Port + config.RoutePage
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ScheduleServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RoutePage, s.handlePage)
	mux.HandleFunc(config.RouteCalendar, s.handleCalendar)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdatePage atomically replaces the served schedule page.
func (s *ScheduleServer) UpdatePage(html []byte) {
	item := newCacheItem(html, config.MimeTextHTML)
	s.page.Store(item)

	slog.Debug(config.MsgPageUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(html),
		config.LogKeyETag, item.etag,
	)
}

// UpdateCalendar atomically replaces the served iCalendar feed.
func (s *ScheduleServer) UpdateCalendar(ics []byte) {
	item := newCacheItem(ics, config.MimeTextCalendar)
	s.calendar.Store(item)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(ics),
		config.LogKeyETag, item.etag,
	)
}

// newCacheItem snapshots content with a strong ETag and modification stamp.
// Atomic store of the whole item means readers see either the old or the new
// artifact, never a partial state.
func newCacheItem(data []byte, contentType string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		contentType:  contentType,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

func (s *ScheduleServer) handlePage(w http.ResponseWriter, r *http.Request) {
	// The root pattern also matches unknown paths; reject those explicitly.
	if r.URL.Path != config.RoutePage {
		http.NotFound(w, r)
		return
	}
	s.serveCached(w, r, s.page.Load())
}

func (s *ScheduleServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, s.calendar.Load())
}

func (s *ScheduleServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	if r.Method == http.MethodGet {
		if _, err := io.WriteString(w, config.HealthBody); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// serveCached serves one cached artifact with conditional-request support.
func (s *ScheduleServer) serveCached(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Readiness Check
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	// 3. Set Response Headers
	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// 4. Check Conditional Headers (Client Caching)
	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				// If server content is not newer than the client cache, return 304.
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	// 5. Serve Content
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
