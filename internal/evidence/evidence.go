// Package evidence manages the on-disk artifact tree for a harness run:
// screenshots, logs, downloads, videos, and traces, grouped per run ID.
// Capture failures are logged and swallowed so a broken screenshot never
// fails the test step that requested it.
package evidence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/obs"
)

var log = obs.Pkg("evidence")

// Paths holds the artifact directories for a single run.
type Paths struct {
	Root        string
	Screenshots string
	Logs        string
	Downloads   string
	Videos      string
	Traces      string
}

// NewPaths creates the artifact tree for runID under reportsDir.
func NewPaths(reportsDir, runID string) (*Paths, error) {
	root := filepath.Join(reportsDir, runID)
	p := &Paths{
		Root:        root,
		Screenshots: filepath.Join(root, "screenshots"),
		Logs:        filepath.Join(root, "logs"),
		Downloads:   filepath.Join(root, "downloads"),
		Videos:      filepath.Join(root, "videos"),
		Traces:      filepath.Join(root, "traces"),
	}
	for _, dir := range []string{p.Screenshots, p.Logs, p.Downloads, p.Videos, p.Traces} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create evidence dir %s: %w", dir, err)
		}
	}
	return p, nil
}

// StampedName builds a timestamped artifact file name like
// "2026-08-30_14-05-09.123_login_submit.png". Base names are sanitized so
// subtest names with slashes stay inside the evidence directory.
func StampedName(base, ext string) string {
	stamp := time.Now().Format("2006-01-02_15-04-05.000")
	base = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(base)
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", stamp, base, ext)
}

// StepStatus is the outcome of a recorded step.
type StepStatus string

const (
	StepPassed StepStatus = "passed"
	StepFailed StepStatus = "failed"
)

// Step records one executed helper step and its artifacts.
type Step struct {
	Name       string        `json:"name"`
	Status     StepStatus    `json:"status"`
	Screenshot string        `json:"screenshot,omitempty"`
	Error      string        `json:"error,omitempty"`
	Started    time.Time     `json:"started"`
	Duration   time.Duration `json:"duration"`
}

// Recorder accumulates steps and captures screenshots for one test.
type Recorder struct {
	paths    *Paths
	testName string

	mu    sync.Mutex
	steps []Step
}

// NewRecorder creates a recorder writing under paths for the named test.
func NewRecorder(paths *Paths, testName string) *Recorder {
	return &Recorder{paths: paths, testName: testName}
}

// TestName returns the test the recorder belongs to.
func (r *Recorder) TestName() string { return r.testName }

// Paths returns the run's artifact directories.
func (r *Recorder) Paths() *Paths { return r.paths }

// Screenshot captures the page into the screenshots dir and returns the
// written path. Returns "" when capture fails; the failure is only logged.
func (r *Recorder) Screenshot(page playwright.Page, base string) string {
	if page == nil || r.paths == nil {
		return ""
	}
	path := filepath.Join(r.paths.Screenshots, StampedName(r.testName+"_"+base, "png"))
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		log.Error("screenshot capture failed", "base", base, "error", err)
		return ""
	}
	log.Debug("screenshot saved", "path", path)
	return path
}

// RecordStep appends an executed step.
func (r *Recorder) RecordStep(step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Failed reports whether any recorded step failed.
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}
