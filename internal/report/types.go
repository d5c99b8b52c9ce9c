// Package report writes JSON run reports for the harness.
//
// Layout under the run's report directory:
//   - report.json: run index (status, summary counts, per-case entries)
//   - cases/<case-id>.json: per-case step detail
//   - report.html: rendered summary (via GenerateHTML)
//
// The index is the single source of truth for run status; consumers poll it
// and fetch case details as needed.
package report

import (
	"time"

	"github.com/probelab/uiharness/internal/evidence"
)

// Version is the report schema version.
const Version = "1.0.0"

// Status is the execution status of a run or case.
type Status string

const (
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// IsTerminal reports whether the status is final.
func (s Status) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusSkipped
}

// Index is the run report index (report.json).
type Index struct {
	Version     string      `json:"version"`
	RunID       string      `json:"runId"`
	Environment string      `json:"environment"`
	BaseURL     string      `json:"baseUrl"`
	UpdateSeq   uint64      `json:"updateSeq"`
	Status      Status      `json:"status"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     *time.Time  `json:"endTime,omitempty"`
	LastUpdated time.Time   `json:"lastUpdated"`
	Summary     Summary     `json:"summary"`
	Cases       []CaseEntry `json:"cases"`
}

// Summary contains aggregated case counts.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// CaseEntry is the index entry for one test case.
type CaseEntry struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	DataFile  string     `json:"dataFile"`
	Status    Status     `json:"status"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int64      `json:"duration"` // milliseconds
	Steps     int        `json:"steps"`
	Error     string     `json:"error,omitempty"`
}

// CaseDetail is the per-case file (cases/<id>.json).
type CaseDetail struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status Status          `json:"status"`
	Steps  []evidence.Step `json:"steps"`
}
