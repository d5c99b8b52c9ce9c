// Package tracker files test failures with external issue trackers. A run
// that ends with failed cases can push one card/issue per failure so the
// team triages from its own board instead of the raw report directory.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/probelab/uiharness/internal/config"
)

// Failure describes one failed test case for filing.
type Failure struct {
	TestName    string
	Environment string
	Message     string
	Screenshot  string // local path, attached when the tracker supports it
	OccurredAt  time.Time
}

// Reporter files failures with a tracking system.
type Reporter interface {
	// Report files one failure. The returned id is tracker-specific (card
	// id, issue key).
	Report(ctx context.Context, f Failure) (id string, err error)
}

// FromConfig builds one reporter per tracker the configuration enables.
// Returns nil when failure filing is off entirely.
func FromConfig(cfg *config.Config) []Reporter {
	var reporters []Reporter
	if cfg.Trello.Enabled {
		reporters = append(reporters, NewTrello(cfg.Trello))
	}
	if cfg.Jira.Enabled {
		reporters = append(reporters, NewJira(cfg.Jira))
	}
	return reporters
}

// Summary renders the one-line title trackers show in list views.
func (f Failure) Summary() string {
	return fmt.Sprintf("[%s] %s failed", f.Environment, f.TestName)
}

// Description renders the card/issue body.
func (f Failure) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Test: %s\n", f.TestName)
	fmt.Fprintf(&b, "Environment: %s\n", f.Environment)
	fmt.Fprintf(&b, "Failed at: %s\n\n", f.OccurredAt.UTC().Format(time.RFC3339))
	b.WriteString(f.Message)
	return b.String()
}

// MockReporter captures failures for testing.
type MockReporter struct {
	mu       sync.Mutex
	Failures []Failure
}

func (m *MockReporter) Report(_ context.Context, f Failure) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, f)
	return fmt.Sprintf("mock-%d", len(m.Failures)), nil
}

// Count returns the number of captured failures.
func (m *MockReporter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Failures)
}
