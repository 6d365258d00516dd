package store

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Backend is the durable string key/value medium underneath a Store.
// An empty stored value is indistinguishable from an absent key; the Store
// only ever writes non-empty JSON documents, so this never matters in
// practice.
type Backend interface {
	ReadString(key string) (string, bool)
	WriteString(key, value string)
}

// PreferencesBackend persists slots through the Fyne preferences API, which
// handles the platform-specific storage location and file syncing.
type PreferencesBackend struct {
	prefs fyne.Preferences
}

// NewPreferencesBackend wraps the given preferences as a Backend.
func NewPreferencesBackend(prefs fyne.Preferences) *PreferencesBackend {
	return &PreferencesBackend{prefs: prefs}
}

func (b *PreferencesBackend) ReadString(key string) (string, bool) {
	v := b.prefs.String(key)
	return v, v != ""
}

func (b *PreferencesBackend) WriteString(key, value string) {
	b.prefs.SetString(key, value)
}

// MemoryBackend is an in-process Backend for tests.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (b *MemoryBackend) ReadString(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok
}

func (b *MemoryBackend) WriteString(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
}

// Seed stores a raw string without JSON encoding. Tests use it to simulate
// corrupt or hand-written slot contents.
func (b *MemoryBackend) Seed(key, raw string) {
	b.WriteString(key, raw)
}

// Len reports how many keys have been written.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.values)
}
