package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.RosterFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

const rosterVCards = `BEGIN:VCARD
VERSION:4.0
FN:Alice Chen
END:VCARD
BEGIN:VCARD
VERSION:4.0
N:Doe;Bob;;;
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Alice Chen
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:
END:VCARD`

func TestRosterImporter_Local(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "roster_*.vcf")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(rosterVCards)
	require.NoError(t, err)
	_ = tmpFile.Close()

	ri := &engine.RosterImporter{}
	names, err := ri.Names(context.Background(), engine.RosterConfig{
		Mode:      config.RosterModeLocal,
		LocalPath: tmpFile.Name(),
	})

	require.NoError(t, err)
	// FN preferred, N as fallback, duplicates and blank names dropped.
	assert.Equal(t, []string{"Alice Chen", "Doe;Bob;;;"}, names)
}

func TestRosterImporter_Web(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/book.vcf", "user", "secret").
		Return(io.NopCloser(strings.NewReader(rosterVCards)), nil)

	ri := &engine.RosterImporter{Fetcher: fetcher}
	names, err := ri.Names(context.Background(), engine.RosterConfig{
		Mode:    config.RosterModeWeb,
		WebURL:  "https://dav.example.com/book.vcf",
		WebUser: "user",
		WebPass: "secret",
	})

	require.NoError(t, err)
	assert.Len(t, names, 2)
	fetcher.AssertExpectations(t)
}

func TestRosterImporter_WebFetchError(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	ri := &engine.RosterImporter{Fetcher: fetcher}
	_, err := ri.Names(context.Background(), engine.RosterConfig{
		Mode:   config.RosterModeWeb,
		WebURL: "https://dav.example.com/book.vcf",
	})

	assert.Error(t, err)
}

func TestRosterImporter_ConfigErrors(t *testing.T) {
	ri := &engine.RosterImporter{}
	ctx := context.Background()

	_, err := ri.Names(ctx, engine.RosterConfig{Mode: config.RosterModeLocal})
	assert.Error(t, err, "empty local path must fail")

	_, err = ri.Names(ctx, engine.RosterConfig{Mode: config.RosterModeWeb})
	assert.Error(t, err, "empty URL must fail")

	_, err = ri.Names(ctx, engine.RosterConfig{Mode: config.RosterModeWeb, WebURL: "https://x"})
	assert.Error(t, err, "web mode without a fetcher must fail")

	_, err = ri.Names(ctx, engine.RosterConfig{Mode: "carrier-pigeon"})
	assert.Error(t, err, "unknown mode must fail")
}

func TestRosterImporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(strings.NewReader(rosterVCards)), nil).Maybe()

	ri := &engine.RosterImporter{Fetcher: fetcher}
	_, err := ri.Names(ctx, engine.RosterConfig{
		Mode:   config.RosterModeWeb,
		WebURL: "https://dav.example.com/book.vcf",
	})

	assert.ErrorIs(t, err, context.Canceled)
}
