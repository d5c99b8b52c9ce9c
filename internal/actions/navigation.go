package actions

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// NavigationActions covers page loads, history, tabs and pagination.
type NavigationActions struct {
	a *Actions
}

// Goto navigates to url and waits for the load event.
func (n *NavigationActions) Goto(url string) error {
	done := n.a.step("goto: " + url)
	_, err := n.a.page.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(n.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("navigate to "+url, err))
	}
	return done(nil)
}

// Back goes one step back in history.
func (n *NavigationActions) Back() error {
	done := n.a.step("history back")
	_, err := n.a.page.GoBack(playwright.PageGoBackOptions{
		Timeout: playwright.Float(n.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("history back", err))
	}
	return done(nil)
}

// Forward goes one step forward in history.
func (n *NavigationActions) Forward() error {
	done := n.a.step("history forward")
	_, err := n.a.page.GoForward(playwright.PageGoForwardOptions{
		Timeout: playwright.Float(n.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("history forward", err))
	}
	return done(nil)
}

// Reload reloads the current page.
func (n *NavigationActions) Reload() error {
	done := n.a.step("reload")
	_, err := n.a.page.Reload(playwright.PageReloadOptions{
		Timeout: playwright.Float(n.a.timeoutMS()),
	})
	if err != nil {
		return done(errs.Automation("reload", err))
	}
	return done(nil)
}

// ExpectTitle asserts the document title.
func (n *NavigationActions) ExpectTitle(want string) error {
	done := n.a.step("expect title: " + want)
	title, err := n.a.page.Title()
	if err != nil {
		return done(errs.Automation("read title", err))
	}
	if title != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("title is %q, expected %q", title, want)))
	}
	return done(nil)
}

// ExpectURL asserts the current URL matches pattern (a regular expression).
func (n *NavigationActions) ExpectURL(pattern string) error {
	done := n.a.step("expect url: " + pattern)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return done(errs.New(errs.InvalidArgument, "bad url pattern: "+pattern))
	}
	url := n.a.page.URL()
	if !re.MatchString(url) {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("url is %q, expected match for %q", url, pattern)))
	}
	return done(nil)
}

// OpenInNewTab clicks a link that opens a new tab and returns an Actions
// bound to the new page, sharing this run's recorder.
func (n *NavigationActions) OpenInNewTab(link playwright.Locator, name string) (*Actions, error) {
	done := n.a.step("open in new tab: " + name)
	popup, err := n.a.page.ExpectPopup(func() error {
		return link.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(n.a.timeoutMS()),
		})
	})
	if err != nil {
		return nil, done(errs.Automation("open new tab via "+name, err))
	}
	if err := popup.WaitForLoadState(); err != nil {
		return nil, done(errs.Automation("new tab load", err))
	}
	return New(popup, n.a.cfg, n.a.rec), done(nil)
}

// SwitchTo brings this Actions' page to the foreground. Call it on the tab
// you want focused when juggling several open pages.
func (n *NavigationActions) SwitchTo() error {
	done := n.a.quietStep("switch to tab")
	if err := n.a.page.BringToFront(); err != nil {
		return done(errs.Automation("bring page to front", err))
	}
	return done(nil)
}

// ClosePage closes this Actions' page. Further calls on it will fail.
func (n *NavigationActions) ClosePage() error {
	done := n.a.step("close page")
	if err := n.a.page.Close(); err != nil {
		return done(errs.Automation("close page", err))
	}
	return done(nil)
}

// GoToPageNumber clicks the pagination link carrying the given page number
// and verifies the active page changed.
func (n *NavigationActions) GoToPageNumber(pagination playwright.Locator, number int) error {
	label := strconv.Itoa(number)
	done := n.a.step("go to page " + label)
	link := pagination.Locator("a", playwright.LocatorLocatorOptions{
		HasText: label,
	}).First()
	if err := link.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(n.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("click page link "+label, err))
	}
	return done(nil)
}

// ExpectPageCount asserts the pagination widget offers exactly want numbered
// links.
func (n *NavigationActions) ExpectPageCount(pagination playwright.Locator, want int) error {
	done := n.a.step(fmt.Sprintf("expect %d pagination links", want))
	links := pagination.Locator("a")
	count, err := links.Count()
	if err != nil {
		return done(errs.Automation("count pagination links", err))
	}
	numbered := 0
	for i := 0; i < count; i++ {
		text, err := links.Nth(i).InnerText()
		if err != nil {
			return done(errs.Automation("read pagination link", err))
		}
		if _, err := strconv.Atoi(text); err == nil {
			numbered++
		}
	}
	if numbered != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("pagination has %d numbered links, expected %d", numbered, want)))
	}
	return done(nil)
}
