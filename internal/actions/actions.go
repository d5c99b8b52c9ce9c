// Package actions is the reusable UI interaction/assertion catalog. Every
// helper follows the same shape: locate the element, wait for or assert a
// condition, perform one browser action, capture a screenshot, log the step,
// and wrap automation-library failures in coded errors.
//
// Actions aggregates the per-area helper groups the way the original page
// object did: element, table, file, dialog, dropdown, keyboard, navigation.
package actions

import (
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/config"
	"github.com/probelab/uiharness/internal/errs"
	"github.com/probelab/uiharness/internal/evidence"
	"github.com/probelab/uiharness/internal/obs"
)

// Actions bundles a page with the helper groups and evidence recording.
type Actions struct {
	page playwright.Page
	cfg  *config.Config
	rec  *evidence.Recorder
	log  *slog.Logger

	Element    *ElementActions
	Table      *TableActions
	File       *FileActions
	Dialog     *DialogActions
	Dropdown   *DropdownActions
	Keyboard   *KeyboardActions
	Navigation *NavigationActions
}

// New creates the helper catalog for one page.
func New(page playwright.Page, cfg *config.Config, rec *evidence.Recorder) *Actions {
	a := &Actions{
		page: page,
		cfg:  cfg,
		rec:  rec,
		log:  obs.Pkg("actions").With("test", rec.TestName()),
	}
	a.Element = &ElementActions{a: a}
	a.Table = &TableActions{a: a}
	a.File = &FileActions{a: a}
	a.Dialog = &DialogActions{a: a}
	a.Dropdown = &DropdownActions{a: a}
	a.Keyboard = &KeyboardActions{a: a}
	a.Navigation = &NavigationActions{a: a}
	return a
}

// Page returns the underlying Playwright page.
func (a *Actions) Page() playwright.Page { return a.page }

// Recorder returns the evidence recorder.
func (a *Actions) Recorder() *evidence.Recorder { return a.rec }

// Loc builds a locator from a raw selector.
func (a *Actions) Loc(selector string) playwright.Locator {
	return a.page.Locator(selector)
}

func (a *Actions) timeoutMS() float64 {
	return a.cfg.TimeoutMillis()
}

// step starts a recorded step and returns its finisher. The finisher records
// status, duration, a screenshot, and the error (if any), then passes the
// error through so call sites stay one-liners.
func (a *Actions) step(name string) func(error) error {
	started := time.Now()
	a.log.Debug("step start", "step", name)
	return func(err error) error {
		st := evidence.Step{
			Name:     name,
			Started:  started,
			Duration: time.Since(started),
			Status:   evidence.StepPassed,
		}
		if err != nil {
			st.Status = evidence.StepFailed
			st.Error = err.Error()
			st.Screenshot = a.rec.Screenshot(a.page, name+"_failed")
			a.log.Error("step failed", "step", name, "duration", st.Duration, "error", err, "code", errs.CodeOf(err))
		} else {
			st.Screenshot = a.rec.Screenshot(a.page, name)
			a.log.Info("step ok", "step", name, "duration", st.Duration)
		}
		a.rec.RecordStep(st)
		return err
	}
}

// quietStep is step without the success screenshot, for read-only helpers
// that run in tight loops (table scans, option enumeration).
func (a *Actions) quietStep(name string) func(error) error {
	started := time.Now()
	return func(err error) error {
		st := evidence.Step{
			Name:     name,
			Started:  started,
			Duration: time.Since(started),
			Status:   evidence.StepPassed,
		}
		if err != nil {
			st.Status = evidence.StepFailed
			st.Error = err.Error()
			st.Screenshot = a.rec.Screenshot(a.page, name+"_failed")
			a.log.Error("step failed", "step", name, "duration", st.Duration, "error", err)
		} else {
			a.log.Debug("step ok", "step", name, "duration", st.Duration)
		}
		a.rec.RecordStep(st)
		return err
	}
}

// Capture takes an explicit screenshot outside any step.
func (a *Actions) Capture(base string) string {
	return a.rec.Screenshot(a.page, base)
}

// Scroll scrolls the page by the given wheel deltas.
func (a *Actions) Scroll(deltaX, deltaY float64) error {
	done := a.quietStep("scroll page")
	if err := a.page.Mouse().Wheel(deltaX, deltaY); err != nil {
		return done(errs.Automation("scroll page", err))
	}
	return done(nil)
}

// Swipe simulates a vertical touch swipe by dragging from the viewport
// center. Positive deltaY swipes up (revealing content below).
func (a *Actions) Swipe(deltaY float64) error {
	done := a.quietStep("swipe")
	const x, y = 500.0, 500.0
	mouse := a.page.Mouse()
	if err := mouse.Move(x, y); err != nil {
		return done(errs.Automation("swipe: move", err))
	}
	if err := mouse.Down(); err != nil {
		return done(errs.Automation("swipe: press", err))
	}
	if err := mouse.Move(x, y-deltaY, playwright.MouseMoveOptions{Steps: playwright.Int(10)}); err != nil {
		_ = mouse.Up()
		return done(errs.Automation("swipe: drag", err))
	}
	if err := mouse.Up(); err != nil {
		return done(errs.Automation("swipe: release", err))
	}
	return done(nil)
}
