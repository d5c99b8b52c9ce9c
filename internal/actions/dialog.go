package actions

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// DialogActions drives native browser dialogs (alert, confirm, prompt).
//
// A handler must be armed before the dialog is triggered, or the driver
// auto-dismisses it. Each helper registers a one-shot listener, runs the
// trigger, then blocks on a channel until the dialog was handled or the
// default timeout elapses.
type DialogActions struct {
	a *Actions
}

// DialogInfo describes a dialog that was handled.
type DialogInfo struct {
	Type    string // "alert", "confirm", "prompt" or "beforeunload"
	Message string
	Input   string // text typed into a prompt, empty otherwise
}

type dialogOutcome struct {
	info DialogInfo
	err  error
}

// arm registers a one-shot dialog listener. The returned channel receives
// exactly one outcome when the dialog fires.
func (d *DialogActions) arm(accept bool, promptText string) <-chan dialogOutcome {
	ch := make(chan dialogOutcome, 1)
	d.a.page.Once("dialog", func(dialog playwright.Dialog) {
		out := dialogOutcome{info: DialogInfo{
			Type:    dialog.Type(),
			Message: dialog.Message(),
		}}
		switch {
		case !accept:
			out.err = dialog.Dismiss()
		case promptText != "":
			out.info.Input = promptText
			out.err = dialog.Accept(promptText)
		default:
			out.err = dialog.Accept()
		}
		ch <- out
	})
	return ch
}

// wait blocks until the armed dialog was handled.
func (d *DialogActions) wait(ch <-chan dialogOutcome, kind string) (DialogInfo, error) {
	select {
	case out := <-ch:
		if out.err != nil {
			return out.info, errs.Automation("handle "+kind+" dialog", out.err)
		}
		return out.info, nil
	case <-time.After(time.Duration(d.a.timeoutMS()) * time.Millisecond):
		return DialogInfo{}, errs.New(errs.Timeout, "no "+kind+" dialog appeared")
	}
}

// AcceptAll registers a persistent handler that accepts every dialog the page
// raises until the returned stop function is called. Use it for flows that
// fire dialogs as a side effect rather than as the thing under test.
func (d *DialogActions) AcceptAll() (stop func()) {
	handler := func(dialog playwright.Dialog) {
		d.a.log.Info("auto-accepting dialog",
			"type", dialog.Type(), "message", dialog.Message())
		_ = dialog.Accept()
	}
	d.a.page.On("dialog", handler)
	return func() { d.a.page.RemoveListener("dialog", handler) }
}

// ExpectAlert runs trigger, accepts the resulting alert and asserts its
// message.
func (d *DialogActions) ExpectAlert(trigger func() error, wantMessage string) (DialogInfo, error) {
	done := d.a.step("expect alert")
	ch := d.arm(true, "")
	if err := trigger(); err != nil {
		return DialogInfo{}, done(errs.Automation("trigger alert", err))
	}
	info, err := d.wait(ch, "alert")
	if err != nil {
		return info, done(err)
	}
	if wantMessage != "" && info.Message != wantMessage {
		return info, done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("alert message is %q, expected %q", info.Message, wantMessage)))
	}
	return info, done(nil)
}

// ExpectConfirm runs trigger and answers the confirm dialog with accept.
func (d *DialogActions) ExpectConfirm(trigger func() error, accept bool) (DialogInfo, error) {
	done := d.a.step(fmt.Sprintf("expect confirm (accept=%v)", accept))
	ch := d.arm(accept, "")
	if err := trigger(); err != nil {
		return DialogInfo{}, done(errs.Automation("trigger confirm", err))
	}
	info, err := d.wait(ch, "confirm")
	return info, done(err)
}

// ExpectPrompt runs trigger, types input into the prompt and accepts it.
// An empty input dismisses the prompt instead.
func (d *DialogActions) ExpectPrompt(trigger func() error, input string) (DialogInfo, error) {
	done := d.a.step("expect prompt")
	ch := d.arm(input != "", input)
	if err := trigger(); err != nil {
		return DialogInfo{}, done(errs.Automation("trigger prompt", err))
	}
	info, err := d.wait(ch, "prompt")
	return info, done(err)
}
