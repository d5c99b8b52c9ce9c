package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/probelab/uiharness/internal/evidence"
	"github.com/probelab/uiharness/internal/obs"
)

var log = obs.Pkg("report")

// Writer provides mutex-free sequential updates to a run report. The harness
// runs cases from a single test binary, so writes flush immediately instead
// of debouncing the way a parallel runner would.
type Writer struct {
	dir   string
	index *Index
}

// NewWriter creates the report skeleton for a run in dir.
func NewWriter(dir, runID, environment, baseURL string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Join(dir, "cases"), 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	now := time.Now()
	w := &Writer{
		dir: dir,
		index: &Index{
			Version:     Version,
			RunID:       runID,
			Environment: environment,
			BaseURL:     baseURL,
			Status:      StatusRunning,
			StartTime:   now,
			LastUpdated: now,
			Cases:       []CaseEntry{},
		},
	}
	return w, w.flush()
}

var caseIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// CaseID derives a stable file-safe ID from a test name.
func CaseID(testName string) string {
	id := caseIDSanitizer.ReplaceAllString(testName, "-")
	return strings.Trim(strings.ToLower(id), "-")
}

// RecordCase appends a finished case, writes its detail file, and flushes
// the index.
func (w *Writer) RecordCase(testName string, status Status, started time.Time, caseErr error, steps []evidence.Step) error {
	id := CaseID(testName)
	now := time.Now()

	entry := CaseEntry{
		ID:        id,
		Name:      testName,
		DataFile:  filepath.Join("cases", id+".json"),
		Status:    status,
		StartTime: started,
		EndTime:   &now,
		Duration:  now.Sub(started).Milliseconds(),
		Steps:     len(steps),
	}
	if caseErr != nil {
		entry.Error = caseErr.Error()
	}

	detail := CaseDetail{ID: id, Name: testName, Status: status, Steps: steps}
	if err := writeJSON(filepath.Join(w.dir, entry.DataFile), detail); err != nil {
		return err
	}

	w.index.Cases = append(w.index.Cases, entry)
	w.index.Summary.Total++
	switch status {
	case StatusPassed:
		w.index.Summary.Passed++
	case StatusFailed:
		w.index.Summary.Failed++
	case StatusSkipped:
		w.index.Summary.Skipped++
	}
	return w.flush()
}

// End marks the run complete. The run fails if any case failed.
func (w *Writer) End() error {
	now := time.Now()
	w.index.EndTime = &now
	if w.index.Summary.Failed > 0 {
		w.index.Status = StatusFailed
	} else {
		w.index.Status = StatusPassed
	}
	return w.flush()
}

// Index returns the current in-memory index.
func (w *Writer) Index() *Index { return w.index }

// Dir returns the report directory.
func (w *Writer) Dir() string { return w.dir }

func (w *Writer) flush() error {
	w.index.UpdateSeq++
	w.index.LastUpdated = time.Now()
	return writeJSON(filepath.Join(w.dir, "report.json"), w.index)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	// Write-then-rename keeps pollers from seeing a torn report.json.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Read loads a run report index and its case details from dir.
func Read(dir string) (*Index, []CaseDetail, error) {
	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("read report index: %w", err)
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, nil, fmt.Errorf("parse report index: %w", err)
	}

	details := make([]CaseDetail, 0, len(index.Cases))
	for _, entry := range index.Cases {
		raw, err := os.ReadFile(filepath.Join(dir, entry.DataFile))
		if err != nil {
			log.Warn("case detail missing", "case", entry.ID, "error", err)
			continue
		}
		var detail CaseDetail
		if err := json.Unmarshal(raw, &detail); err != nil {
			return nil, nil, fmt.Errorf("parse case detail %s: %w", entry.ID, err)
		}
		details = append(details, detail)
	}
	return &index, details, nil
}
