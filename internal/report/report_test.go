package report

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/uiharness/internal/evidence"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(t.TempDir(), "run-1", "qa", "https://site.example.com")
	require.NoError(t, err)
	return w
}

func TestNewWriterCreatesSkeleton(t *testing.T) {
	w := newTestWriter(t)

	index, details, err := Read(w.Dir())
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, index.Status)
	assert.Equal(t, "run-1", index.RunID)
	assert.Empty(t, details)
}

func TestRecordCaseUpdatesSummaryAndDetail(t *testing.T) {
	w := newTestWriter(t)

	started := time.Now().Add(-2 * time.Second)
	steps := []evidence.Step{
		{Name: "navigate home", Status: evidence.StepPassed, Started: started},
		{Name: "click login link", Status: evidence.StepFailed, Error: "Timeout 5000ms exceeded", Started: started},
	}
	require.NoError(t, w.RecordCase("TestHome/LoginLink", StatusFailed, started, errors.New("step failed"), steps))
	require.NoError(t, w.RecordCase("TestHome/Visible", StatusPassed, started, nil, nil))
	require.NoError(t, w.End())

	index, details, err := Read(w.Dir())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, index.Status, "run fails when any case fails")
	assert.Equal(t, 2, index.Summary.Total)
	assert.Equal(t, 1, index.Summary.Failed)
	assert.Equal(t, 1, index.Summary.Passed)
	require.Len(t, details, 2)
	assert.Len(t, details[0].Steps, 2)
	assert.Equal(t, "Timeout 5000ms exceeded", details[0].Steps[1].Error)
}

func TestCaseIDIsFileSafe(t *testing.T) {
	id := CaseID("TestHome/Subcase with spaces+weird:chars")
	assert.NotContains(t, id, "/")
	assert.NotContains(t, id, " ")
	assert.NotContains(t, id, ":")
	assert.Equal(t, strings.ToLower(id), id)
}

func TestEndWithoutFailuresPasses(t *testing.T) {
	w := newTestWriter(t)
	require.NoError(t, w.RecordCase("TestOK", StatusPassed, time.Now(), nil, nil))
	require.NoError(t, w.End())

	index, _, err := Read(w.Dir())
	require.NoError(t, err)
	assert.Equal(t, StatusPassed, index.Status)
	assert.NotNil(t, index.EndTime)
}

func TestGenerateHTML(t *testing.T) {
	w := newTestWriter(t)
	require.NoError(t, w.RecordCase("TestHome", StatusPassed, time.Now(), nil, []evidence.Step{
		{Name: "navigate", Status: evidence.StepPassed, Screenshot: "screenshots/x.png"},
	}))
	require.NoError(t, w.End())

	path, err := GenerateHTML(w.Dir())
	require.NoError(t, err)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "run-1")
	assert.Contains(t, string(html), "TestHome")
	assert.Contains(t, string(html), "screenshots/x.png")
}

func TestReadMissingIndexFails(t *testing.T) {
	_, _, err := Read(t.TempDir())
	require.Error(t, err)
}
