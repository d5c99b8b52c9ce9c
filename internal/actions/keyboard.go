package actions

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// KeyboardActions drives raw keyboard input and focus traversal.
type KeyboardActions struct {
	a *Actions
}

// Press sends a single key chord ("Enter", "Control+a", ...).
func (k *KeyboardActions) Press(key string) error {
	done := k.a.step("press key: " + key)
	if err := k.a.page.Keyboard().Press(key); err != nil {
		return done(errs.Automation("press "+key, err))
	}
	return done(nil)
}

// Type sends text character by character through the keyboard.
func (k *KeyboardActions) Type(text string) error {
	done := k.a.step("type text")
	if err := k.a.page.Keyboard().Type(text); err != nil {
		return done(errs.Automation("type text", err))
	}
	return done(nil)
}

// PressTab advances focus.
func (k *KeyboardActions) PressTab() error {
	return k.Press("Tab")
}

// PressShiftTab moves focus backwards.
func (k *KeyboardActions) PressShiftTab() error {
	return k.Press("Shift+Tab")
}

// PressTabExpectFocus presses Tab and asserts focus landed on the element
// whose id is wantID.
func (k *KeyboardActions) PressTabExpectFocus(wantID string) error {
	done := k.a.step("tab to #" + wantID)
	if err := k.a.page.Keyboard().Press("Tab"); err != nil {
		return done(errs.Automation("press Tab", err))
	}
	raw, err := k.a.page.Evaluate("() => document.activeElement ? document.activeElement.id : ''")
	if err != nil {
		return done(errs.Automation("read focused element", err))
	}
	got, _ := raw.(string)
	if got != wantID {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("focus is on #%s, expected #%s", got, wantID)))
	}
	return done(nil)
}

// ExpectFocused asserts the element currently holds keyboard focus.
func (k *KeyboardActions) ExpectFocused(loc playwright.Locator, name string) error {
	done := k.a.step("expect focused: " + name)
	raw, err := loc.Evaluate("el => el === document.activeElement", nil)
	if err != nil {
		return done(errs.Automation("focus check "+name, err))
	}
	focused, _ := raw.(bool)
	if !focused {
		return done(errs.New(errs.AssertionFailed, "element not focused: "+name))
	}
	return done(nil)
}
