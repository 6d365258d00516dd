package export_test

import (
	"context"
	"testing"

	"github.com/steadyreaders/go-studyweek/internal/export"
	"github.com/stretchr/testify/assert"
)

// Capture itself needs a Chromium binary, so only the option validation is
// unit-tested here; the full pipeline is covered by manual export runs.

func TestCaptureSchedule_RequiresURL(t *testing.T) {
	err := export.CaptureSchedule(context.Background(), export.Options{
		OutputPath: "/tmp/out.jpg",
	})
	assert.Error(t, err)
}

func TestCaptureSchedule_RequiresOutputPath(t *testing.T) {
	err := export.CaptureSchedule(context.Background(), export.Options{
		URL: "http://127.0.0.1:18090/",
	})
	assert.Error(t, err)
}
