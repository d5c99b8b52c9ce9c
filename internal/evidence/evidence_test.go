package evidence

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestNewPathsCreatesTree(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPaths(dir, "run-abc")
	if err != nil {
		t.Fatalf("NewPaths: %v", err)
	}
	for _, d := range []string{p.Screenshots, p.Logs, p.Downloads, p.Videos, p.Traces} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Errorf("missing evidence dir %s: %v", d, err)
		}
	}
	if filepath.Dir(p.Screenshots) != filepath.Join(dir, "run-abc") {
		t.Errorf("screenshots dir outside run root: %s", p.Screenshots)
	}
}

var stampedNameRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.\d{3}_.+\.png$`)

func TestStampedNameFormat(t *testing.T) {
	name := StampedName("login_submit", "png")
	if !stampedNameRe.MatchString(name) {
		t.Errorf("StampedName = %q, does not match timestamped pattern", name)
	}
}

func testStampedNameStaysFlat(t *rapid.T) {
	base := rapid.StringMatching(`[a-zA-Z0-9/_ \\-]{1,40}`).Draw(t, "base")
	name := StampedName(base, ".png")
	if filepath.Base(name) != name {
		t.Fatalf("StampedName(%q) = %q escapes its directory", base, name)
	}
}

func TestStampedNameStaysFlat(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testStampedNameStaysFlat)
}

func TestRecorderTracksFailure(t *testing.T) {
	p, err := NewPaths(t.TempDir(), "run-1")
	if err != nil {
		t.Fatalf("NewPaths: %v", err)
	}
	r := NewRecorder(p, "TestSomething")

	r.RecordStep(Step{Name: "click", Status: StepPassed, Started: time.Now()})
	if r.Failed() {
		t.Error("Failed() = true after only passed steps")
	}
	r.RecordStep(Step{Name: "assert", Status: StepFailed, Error: errors.New("boom").Error(), Started: time.Now()})
	if !r.Failed() {
		t.Error("Failed() = false after a failed step")
	}
	if got := len(r.Steps()); got != 2 {
		t.Errorf("Steps() len = %d, want 2", got)
	}
}

func TestScreenshotWithNilPageIsNoop(t *testing.T) {
	p, err := NewPaths(t.TempDir(), "run-2")
	if err != nil {
		t.Fatalf("NewPaths: %v", err)
	}
	r := NewRecorder(p, "TestNilPage")
	if path := r.Screenshot(nil, "anything"); path != "" {
		t.Errorf("Screenshot(nil) = %q, want empty", path)
	}
}
