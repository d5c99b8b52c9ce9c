package actions

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// ElementActions covers single-element checks and interactions.
type ElementActions struct {
	a *Actions
}

// =============================================================================
// Visibility and state checks
// =============================================================================

// ExpectVisible waits until the element is visible.
func (e *ElementActions) ExpectVisible(loc playwright.Locator, name string) error {
	done := e.a.step("expect visible: " + name)
	err := loc.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(e.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("element not visible: "+name, err))
	}
	return done(nil)
}

// ExpectHidden waits until the element is hidden or detached.
func (e *ElementActions) ExpectHidden(loc playwright.Locator, name string) error {
	done := e.a.step("expect hidden: " + name)
	err := loc.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(e.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("element still visible: "+name, err))
	}
	return done(nil)
}

// ExpectEnabled asserts the element is enabled.
func (e *ElementActions) ExpectEnabled(loc playwright.Locator, name string) error {
	done := e.a.step("expect enabled: " + name)
	enabled, err := loc.IsEnabled()
	if err != nil {
		return done(errs.Automation("enabled check: "+name, err))
	}
	if !enabled {
		return done(errs.New(errs.AssertionFailed, "element disabled: "+name))
	}
	return done(nil)
}

// ExpectDisabled asserts the element is disabled.
func (e *ElementActions) ExpectDisabled(loc playwright.Locator, name string) error {
	done := e.a.step("expect disabled: " + name)
	disabled, err := loc.IsDisabled()
	if err != nil {
		return done(errs.Automation("disabled check: "+name, err))
	}
	if !disabled {
		return done(errs.New(errs.AssertionFailed, "element enabled, expected disabled: "+name))
	}
	return done(nil)
}

// ExpectEmpty asserts an input holds no value.
func (e *ElementActions) ExpectEmpty(loc playwright.Locator, name string) error {
	done := e.a.step("expect empty: " + name)
	value, err := loc.InputValue()
	if err != nil {
		return done(errs.Automation("read value: "+name, err))
	}
	if strings.TrimSpace(value) != "" {
		return done(errs.New(errs.AssertionFailed, fmt.Sprintf("field %s not empty, holds %q", name, value)))
	}
	return done(nil)
}

// =============================================================================
// Text checks
// =============================================================================

// ExpectTextContains asserts the element's text contains want.
func (e *ElementActions) ExpectTextContains(loc playwright.Locator, want, name string) error {
	done := e.a.step("expect text contains: " + name)
	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("read text: "+name, err))
	}
	if !strings.Contains(text, want) {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("text of %s is %q, expected to contain %q", name, text, want)))
	}
	return done(nil)
}

// ExpectTextEquals asserts the element's trimmed text equals want.
func (e *ElementActions) ExpectTextEquals(loc playwright.Locator, want, name string) error {
	done := e.a.step("expect text equals: " + name)
	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("read text: "+name, err))
	}
	if strings.TrimSpace(text) != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("text of %s is %q, expected %q", name, strings.TrimSpace(text), want)))
	}
	return done(nil)
}

// ExpectValidationMessage asserts the element's HTML5 validation message is
// one of the accepted variants. Browsers word these differently, so callers
// pass every acceptable phrasing.
func (e *ElementActions) ExpectValidationMessage(loc playwright.Locator, accepted []string, name string) error {
	done := e.a.step("expect validation message: " + name)
	raw, err := loc.Evaluate("el => el.validationMessage", nil)
	if err != nil {
		return done(errs.Automation("read validation message: "+name, err))
	}
	message, _ := raw.(string)
	for _, want := range accepted {
		if message == want {
			return done(nil)
		}
	}
	return done(errs.New(errs.AssertionFailed,
		fmt.Sprintf("validation message of %s is %q, accepted %v", name, message, accepted)))
}

// =============================================================================
// Fill and clear
// =============================================================================

// Fill types text into a field after confirming it is visible.
func (e *ElementActions) Fill(loc playwright.Locator, text, name string) error {
	done := e.a.step("fill: " + name)
	if err := loc.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("fill "+name, err))
	}
	return done(nil)
}

// FillNumber fills a numeric field; negative values are rejected up front.
func (e *ElementActions) FillNumber(loc playwright.Locator, value float64, name string) error {
	done := e.a.step("fill number: " + name)
	if value < 0 {
		return done(errs.New(errs.InvalidArgument,
			fmt.Sprintf("numeric value for %s must not be negative, got %v", name, value)))
	}
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if err := loc.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("fill "+name, err))
	}
	return done(nil)
}

// Clear empties a field and verifies it stayed empty.
func (e *ElementActions) Clear(loc playwright.Locator, name string) error {
	done := e.a.step("clear: " + name)
	if err := loc.Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("clear "+name, err))
	}
	value, err := loc.InputValue()
	if err != nil {
		return done(errs.Automation("verify clear "+name, err))
	}
	if value != "" {
		return done(errs.New(errs.AssertionFailed, fmt.Sprintf("field %s still holds %q after clear", name, value)))
	}
	return done(nil)
}

// =============================================================================
// Pointer interactions
// =============================================================================

// Click clicks the element.
func (e *ElementActions) Click(loc playwright.Locator, name string) error {
	done := e.a.step("click: " + name)
	if err := loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("click "+name, err))
	}
	return done(nil)
}

// DoubleClick double-clicks the element.
func (e *ElementActions) DoubleClick(loc playwright.Locator, name string) error {
	done := e.a.step("double click: " + name)
	if err := loc.Dblclick(playwright.LocatorDblclickOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("double click "+name, err))
	}
	return done(nil)
}

// RightClick opens the element's context menu.
func (e *ElementActions) RightClick(loc playwright.Locator, name string) error {
	done := e.a.step("right click: " + name)
	if err := loc.Click(playwright.LocatorClickOptions{
		Button:  playwright.MouseButtonRight,
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("right click "+name, err))
	}
	return done(nil)
}

// Hover moves the pointer over the element.
func (e *ElementActions) Hover(loc playwright.Locator, name string) error {
	done := e.a.step("hover: " + name)
	if err := loc.Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("hover "+name, err))
	}
	return done(nil)
}

// Focus gives the element keyboard focus.
func (e *ElementActions) Focus(loc playwright.Locator, name string) error {
	done := e.a.step("focus: " + name)
	if err := loc.Focus(); err != nil {
		return done(errs.Automation("focus "+name, err))
	}
	return done(nil)
}

// Blur removes keyboard focus from the element.
func (e *ElementActions) Blur(loc playwright.Locator, name string) error {
	done := e.a.step("blur: " + name)
	if err := loc.Blur(); err != nil {
		return done(errs.Automation("blur "+name, err))
	}
	return done(nil)
}

// MouseDown presses the primary button over the element without releasing,
// for hold-style widgets.
func (e *ElementActions) MouseDown(loc playwright.Locator, name string) error {
	done := e.a.step("mouse down: " + name)
	if err := loc.Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("hover before mouse down "+name, err))
	}
	if err := e.a.page.Mouse().Down(); err != nil {
		return done(errs.Automation("mouse down "+name, err))
	}
	return done(nil)
}

// MouseUp releases the primary button.
func (e *ElementActions) MouseUp(name string) error {
	done := e.a.step("mouse up: " + name)
	if err := e.a.page.Mouse().Up(); err != nil {
		return done(errs.Automation("mouse up "+name, err))
	}
	return done(nil)
}

// ClickAt clicks absolute viewport coordinates.
func (e *ElementActions) ClickAt(x, y float64, name string) error {
	done := e.a.step(fmt.Sprintf("click at (%v, %v): %s", x, y, name))
	if err := e.a.page.Mouse().Move(x, y); err != nil {
		return done(errs.Automation("move to coordinates", err))
	}
	if err := e.a.page.Mouse().Click(x, y); err != nil {
		return done(errs.Automation("click at coordinates", err))
	}
	return done(nil)
}

// =============================================================================
// Checkboxes
// =============================================================================

// Check marks a checkbox.
func (e *ElementActions) Check(loc playwright.Locator, name string) error {
	done := e.a.step("check: " + name)
	if err := loc.Check(playwright.LocatorCheckOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("check "+name, err))
	}
	return done(nil)
}

// Uncheck clears a checkbox.
func (e *ElementActions) Uncheck(loc playwright.Locator, name string) error {
	done := e.a.step("uncheck: " + name)
	if err := loc.Uncheck(playwright.LocatorUncheckOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("uncheck "+name, err))
	}
	return done(nil)
}

// ExpectChecked asserts a checkbox state.
func (e *ElementActions) ExpectChecked(loc playwright.Locator, want bool, name string) error {
	done := e.a.step(fmt.Sprintf("expect checked=%v: %s", want, name))
	got, err := loc.IsChecked()
	if err != nil {
		return done(errs.Automation("checked state "+name, err))
	}
	if got != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("checkbox %s checked=%v, expected %v", name, got, want)))
	}
	return done(nil)
}

// =============================================================================
// Value checks
// =============================================================================

// Value reads the element's value, falling back to its text content for
// non-input elements (including disabled ones).
func (e *ElementActions) Value(loc playwright.Locator, name string) (string, error) {
	done := e.a.quietStep("read value: " + name)
	value, err := loc.InputValue()
	if err == nil {
		return value, done(nil)
	}
	text, terr := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	})
	if terr != nil {
		return "", done(errs.Automation("read value of "+name, terr))
	}
	return strings.TrimSpace(text), done(nil)
}

// ExpectValue asserts an input's value.
func (e *ElementActions) ExpectValue(loc playwright.Locator, want, name string) error {
	done := e.a.step("expect value: " + name)
	value, err := loc.InputValue()
	if err != nil {
		return done(errs.Automation("read value "+name, err))
	}
	if value != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("value of %s is %q, expected %q", name, value, want)))
	}
	return done(nil)
}

// ExpectIntValue asserts an input holds exactly the integer want.
func (e *ElementActions) ExpectIntValue(loc playwright.Locator, want int, name string) error {
	done := e.a.step("expect int value: " + name)
	value, err := loc.InputValue()
	if err != nil {
		return done(errs.Automation("read value "+name, err))
	}
	got, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("value of %s is %q, not an integer", name, value)))
	}
	if got != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("value of %s is %d, expected %d", name, got, want)))
	}
	return done(nil)
}

// ExpectFloatValue asserts an input holds want within tolerance.
func (e *ElementActions) ExpectFloatValue(loc playwright.Locator, want, tolerance float64, name string) error {
	done := e.a.step("expect float value: " + name)
	value, err := loc.InputValue()
	if err != nil {
		return done(errs.Automation("read value "+name, err))
	}
	got, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("value of %s is %q, not a number", name, value)))
	}
	if math.Abs(got-want) > tolerance {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("value of %s is %v, expected %v (±%v)", name, got, want, tolerance)))
	}
	return done(nil)
}

// =============================================================================
// Images
// =============================================================================

// ExpectImageAlt asserts an image's alt attribute.
func (e *ElementActions) ExpectImageAlt(loc playwright.Locator, want, name string) error {
	done := e.a.step("expect image alt: " + name)
	alt, err := loc.GetAttribute("alt")
	if err != nil {
		return done(errs.Automation("read alt "+name, err))
	}
	if alt != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("alt of %s is %q, expected %q", name, alt, want)))
	}
	return done(nil)
}

// ExpectImageLoaded asserts an image finished loading with real pixels.
func (e *ElementActions) ExpectImageLoaded(loc playwright.Locator, name string) error {
	done := e.a.step("expect image loaded: " + name)
	raw, err := loc.Evaluate("img => img.complete && img.naturalWidth > 0", nil)
	if err != nil {
		return done(errs.Automation("image load state "+name, err))
	}
	loaded, _ := raw.(bool)
	if !loaded {
		return done(errs.New(errs.AssertionFailed, "image failed to load: "+name))
	}
	return done(nil)
}

// =============================================================================
// Drag, sliders, scrolling
// =============================================================================

// DragAndDrop drags source onto target. When the native drag protocol is
// rejected by the page (custom DnD implementations), it falls back to a raw
// press-move-release mouse sequence.
func (e *ElementActions) DragAndDrop(source, target playwright.Locator, name string) error {
	done := e.a.step("drag and drop: " + name)
	err := source.DragTo(target, playwright.LocatorDragToOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	})
	if err == nil {
		return done(nil)
	}
	e.a.log.Warn("native drag failed, retrying with mouse sequence", "step", name, "error", err)
	if err := e.dragManually(source, target); err != nil {
		return done(errs.Automation("drag and drop "+name, err))
	}
	return done(nil)
}

func (e *ElementActions) dragManually(source, target playwright.Locator) error {
	from, err := source.BoundingBox()
	if err != nil {
		return err
	}
	to, err := target.BoundingBox()
	if err != nil {
		return err
	}
	if from == nil || to == nil {
		return errs.New(errs.NotFound, "drag endpoints have no bounding box")
	}
	mouse := e.a.page.Mouse()
	if err := mouse.Move(from.X+from.Width/2, from.Y+from.Height/2); err != nil {
		return err
	}
	if err := mouse.Down(); err != nil {
		return err
	}
	if err := mouse.Move(to.X+to.Width/2, to.Y+to.Height/2, playwright.MouseMoveOptions{
		Steps: playwright.Int(12),
	}); err != nil {
		_ = mouse.Up()
		return err
	}
	return mouse.Up()
}

// MoveSliderTo drags a slider thumb to a horizontal fraction (0..1) of its
// track. Used twice for dual-thumb range sliders.
func (e *ElementActions) MoveSliderTo(thumb, track playwright.Locator, fraction float64, name string) error {
	done := e.a.step(fmt.Sprintf("move slider to %.0f%%: %s", fraction*100, name))
	if fraction < 0 || fraction > 1 {
		return done(errs.New(errs.InvalidArgument,
			fmt.Sprintf("slider fraction must be in [0,1], got %v", fraction)))
	}
	thumbBox, err := thumb.BoundingBox()
	if err != nil {
		return done(errs.Automation("slider thumb box "+name, err))
	}
	trackBox, err := track.BoundingBox()
	if err != nil {
		return done(errs.Automation("slider track box "+name, err))
	}
	if thumbBox == nil || trackBox == nil {
		return done(errs.New(errs.NotFound, "slider parts have no bounding box: "+name))
	}
	targetX := trackBox.X + trackBox.Width*fraction
	targetY := trackBox.Y + trackBox.Height/2
	mouse := e.a.page.Mouse()
	if err := mouse.Move(thumbBox.X+thumbBox.Width/2, thumbBox.Y+thumbBox.Height/2); err != nil {
		return done(errs.Automation("move to slider thumb "+name, err))
	}
	if err := mouse.Down(); err != nil {
		return done(errs.Automation("press slider thumb "+name, err))
	}
	if err := mouse.Move(targetX, targetY, playwright.MouseMoveOptions{
		Steps: playwright.Int(10),
	}); err != nil {
		_ = mouse.Up()
		return done(errs.Automation("drag slider thumb "+name, err))
	}
	if err := mouse.Up(); err != nil {
		return done(errs.Automation("release slider thumb "+name, err))
	}
	return done(nil)
}

// ScrollIntoView scrolls until the element is inside the viewport.
func (e *ElementActions) ScrollIntoView(loc playwright.Locator, name string) error {
	done := e.a.step("scroll into view: " + name)
	if err := loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(e.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("scroll into view "+name, err))
	}
	return done(nil)
}

// =============================================================================
// Obstacles
// =============================================================================

// Obstacle is a known overlay (cookie banner, subscription popup) and the
// control that dismisses it.
type Obstacle struct {
	Name    string
	Dismiss playwright.Locator
}

// DismissObstacles closes every listed obstacle that is currently visible.
// Absent obstacles are skipped quickly; only a failing dismissal is an error.
func (e *ElementActions) DismissObstacles(obstacles []Obstacle) error {
	done := e.a.quietStep("dismiss screen obstacles")
	for _, o := range obstacles {
		visible, err := o.Dismiss.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := o.Dismiss.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(2000),
		}); err != nil {
			return done(errs.Automation("dismiss obstacle "+o.Name, err))
		}
		e.a.log.Info("obstacle dismissed", "obstacle", o.Name)
	}
	return done(nil)
}
