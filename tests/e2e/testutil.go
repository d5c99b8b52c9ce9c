// Package e2e holds the browser suites for the practice site. All test
// files use Harness via Setup(t); Harness.NewCase wires a fresh page into
// the actions catalog and files the case with the run report on cleanup.
package e2e

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/probelab/uiharness/internal/actions"
	"github.com/probelab/uiharness/internal/browser"
	"github.com/probelab/uiharness/internal/config"
	"github.com/probelab/uiharness/internal/evidence"
	"github.com/probelab/uiharness/internal/obs"
	"github.com/probelab/uiharness/internal/report"
	"github.com/probelab/uiharness/internal/tracker"
)

var harnessMu sync.Mutex
var sharedHarness *Harness

// Harness is the shared run environment: one browser, one report, one demo
// server (or the live site), reused across every test in the binary.
type Harness struct {
	Cfg      *config.Config
	Runtime  *browser.Runtime
	Paths    *evidence.Paths
	Report   *report.Writer
	BaseURL  string
	RunID    string
	Trackers []tracker.Reporter

	demoServer *httptest.Server
}

// Setup returns the shared harness, creating it on first use. Tests that
// reach the browser are skipped when Playwright is unavailable.
func Setup(t *testing.T) *Harness {
	t.Helper()

	if testing.Short() {
		t.Skip("browser suite skipped in -short mode")
	}

	harnessMu.Lock()
	defer harnessMu.Unlock()

	if sharedHarness != nil {
		return sharedHarness
	}

	obs.Init()

	cfg, err := config.Load(findEnvironmentsDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if os.Getenv("UIHARNESS_REPORTS_DIR") == "" {
		cfg.ReportsDir = filepath.Join(os.TempDir(), "uiharness-reports")
	}
	if os.Getenv("UIHARNESS_TIMEOUT") == "" {
		// keep local-fixture waits short
		cfg.DefaultTimeout = config.Duration(5 * time.Second)
	}

	h := &Harness{Cfg: cfg}

	if live := os.Getenv("UIHARNESS_LIVE_BASE_URL"); live != "" {
		h.BaseURL = live
	} else {
		h.demoServer = newDemoServer()
		h.BaseURL = h.demoServer.URL
	}
	cfg.BaseURL = h.BaseURL

	runID := time.Now().UTC().Format("2006-01-02_15-04-05") +
		"_" + cfg.Environment + "_" + uuid.NewString()[:8]
	h.RunID = runID
	h.Trackers = tracker.FromConfig(cfg)
	h.Paths, err = evidence.NewPaths(cfg.ReportsDir, runID)
	if err != nil {
		t.Fatalf("create evidence dirs: %v", err)
	}
	h.Report, err = report.NewWriter(h.Paths.Root, runID, cfg.Environment, h.BaseURL)
	if err != nil {
		t.Fatalf("create report writer: %v", err)
	}

	h.Runtime = browser.New(cfg)
	if err := h.Runtime.Start(); err != nil {
		h.closeServers()
		sharedHarness = nil
		t.Skip("Playwright not available:", err)
	}

	sharedHarness = h
	return h
}

// NewCase opens a fresh page, builds the actions catalog around it, and
// registers cleanup that screenshots failures, pushes them to any configured
// trackers, and files the case with the run report.
func (h *Harness) NewCase(t *testing.T) *actions.Actions {
	t.Helper()

	page, err := h.Runtime.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}

	rec := evidence.NewRecorder(h.Paths, t.Name())
	a := actions.New(page, h.Cfg, rec)
	started := time.Now()

	t.Cleanup(func() {
		status := report.StatusPassed
		var caseErr error
		if t.Failed() {
			status = report.StatusFailed
			rec.Screenshot(page, "final_state")
			failure := failureFrom(rec, h.Cfg.Environment)
			caseErr = errors.New(failure.Message)
			h.fileFailure(t, failure)
		} else if t.Skipped() {
			status = report.StatusSkipped
		}
		if err := h.Report.RecordCase(t.Name(), status, started, caseErr, rec.Steps()); err != nil {
			t.Logf("record case: %v", err)
		}
		_ = page.Close()
	})
	return a
}

// failureFrom summarizes a failed case from its recorded steps. The first
// failed step carries the message and screenshot; cases that fail without a
// recorded step (bare require/assert calls) get a generic message.
func failureFrom(rec *evidence.Recorder, env string) tracker.Failure {
	f := tracker.Failure{
		TestName:    rec.TestName(),
		Environment: env,
		OccurredAt:  time.Now().UTC(),
	}
	for _, st := range rec.Steps() {
		if st.Status == evidence.StepFailed {
			f.Message = st.Name + ": " + st.Error
			f.Screenshot = st.Screenshot
			break
		}
	}
	if f.Message == "" {
		f.Message = "test failed outside a recorded step"
	}
	return f
}

// fileFailure pushes one failure to every configured tracker. Filing errors
// are logged, never failed on, so a tracker outage cannot mask the real
// test result.
func (h *Harness) fileFailure(t *testing.T, f tracker.Failure) {
	if len(h.Trackers) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = obs.WithRunInfo(ctx, obs.RunInfo{RunID: h.RunID, TestName: f.TestName})
	for _, r := range h.Trackers {
		id, err := r.Report(ctx, f)
		if err != nil {
			t.Logf("file failure with tracker: %v", err)
			continue
		}
		t.Logf("failure filed as %s", id)
	}
}

// URL joins a path onto the harness base URL.
func (h *Harness) URL(path string) string {
	return h.BaseURL + path
}

func (h *Harness) closeServers() {
	if h.demoServer != nil {
		h.demoServer.Close()
	}
}

func cleanupSharedHarness() {
	harnessMu.Lock()
	defer harnessMu.Unlock()
	if sharedHarness == nil {
		return
	}
	_ = sharedHarness.Report.End()
	if _, err := report.GenerateHTML(sharedHarness.Report.Dir()); err != nil {
		// the JSON report is still on disk, so just note it
		obs.Pkg("e2e").Warn("render html report", "error", err)
	}
	sharedHarness.Runtime.Close()
	sharedHarness.closeServers()
	sharedHarness = nil
}

// findEnvironmentsDir walks up from the test's working directory to the
// repo's environments/ dir so go test works from any package dir.
func findEnvironmentsDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "environments"
	}
	for {
		candidate := filepath.Join(dir, "environments")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "environments"
		}
		dir = parent
	}
}

// writeTempFile drops content into the test's temp dir and returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestMain(m *testing.M) {
	code := m.Run()
	cleanupSharedHarness()
	os.Exit(code)
}
