// Package store implements the durable key/value persistence layer for the
// schedule state. Values are JSON-serialized into string slots of a Backend;
// writes are debounced so rapid edits collapse into a single commit per key.
package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/steadyreaders/go-studyweek/internal/config"
)

// pendingWrite holds one scheduled commit. At most one exists per key;
// superseding writes replace it and stop the previous timer.
type pendingWrite struct {
	data  string
	timer *time.Timer
}

// Store debounces JSON writes into a Backend. The in-memory value held by the
// caller stays authoritative regardless of persistence success; a failed
// serialization or backend write is logged and otherwise ignored.
type Store struct {
	backend  Backend
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

// New creates a Store over the given backend. A non-positive debounce makes
// every Save commit immediately, which keeps tests deterministic.
func New(backend Backend, debounce time.Duration) *Store {
	return &Store{
		backend:  backend,
		debounce: debounce,
		pending:  make(map[string]*pendingWrite),
	}
}

// Load reads and deserializes the value stored under key. On absence or
// corrupt JSON it returns def without writing anything; the default is only
// persisted by a later mutation.
func Load[T any](s *Store, key string, def T) T {
	raw, ok := s.backend.ReadString(key)
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slog.Warn(config.ErrDeserialize,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return def
	}
	return value
}

// Save schedules a write of value under key after the quiet period. A
// superseding Save within the window cancels the prior pending write
// (trailing-edge debounce, last value wins). Never blocks the caller.
func Save[T any](s *Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error(config.ErrSerialize,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return
	}

	if s.debounce <= 0 {
		s.backend.WriteString(key, string(data))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
	}

	pw := &pendingWrite{data: string(data)}
	pw.timer = time.AfterFunc(s.debounce, func() { s.commit(key, pw) })
	s.pending[key] = pw

	slog.Debug(config.MsgWriteScheduled,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyKey, key)
}

// SaveImmediate writes synchronously, bypassing the debounce window. Any
// pending write for the same key is discarded first so it cannot overwrite
// this value later.
func SaveImmediate[T any](s *Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error(config.ErrSerialize,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return
	}

	s.mu.Lock()
	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	s.backend.WriteString(key, string(data))

	slog.Debug(config.MsgWriteCommitted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyKey, key)
}

// Flush commits every pending debounced write right away. Called on shutdown
// so the last edits survive a quit inside the quiet period.
func (s *Store) Flush() {
	s.mu.Lock()
	flushed := make(map[string]string, len(s.pending))
	for key, pw := range s.pending {
		pw.timer.Stop()
		flushed[key] = pw.data
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for key, data := range flushed {
		s.backend.WriteString(key, data)
	}

	if len(flushed) > 0 {
		slog.Debug(config.MsgWriteFlushed,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyCount, len(flushed))
	}
}

// commit runs on the debounce timer. The identity check guards against a
// stale timer that fired while being replaced: only the currently pending
// write for the key may commit.
func (s *Store) commit(key string, pw *pendingWrite) {
	s.mu.Lock()
	current, ok := s.pending[key]
	if !ok || current != pw {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()

	s.backend.WriteString(key, pw.data)

	slog.Debug(config.MsgWriteCommitted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyKey, key)
}
