package actions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// DropdownActions drives native <select> elements.
type DropdownActions struct {
	a *Actions
}

// SelectByValue picks the option with the given value attribute.
func (d *DropdownActions) SelectByValue(loc playwright.Locator, value, name string) error {
	done := d.a.step(fmt.Sprintf("select %q in %s", value, name))
	_, err := loc.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return done(errs.Automation("select value in "+name, err))
	}
	return done(nil)
}

// SelectByLabel picks the option with the given visible label.
func (d *DropdownActions) SelectByLabel(loc playwright.Locator, label, name string) error {
	done := d.a.step(fmt.Sprintf("select label %q in %s", label, name))
	_, err := loc.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	if err != nil {
		return done(errs.Automation("select label in "+name, err))
	}
	return done(nil)
}

// SelectMany picks several options of a multi-select and verifies all took.
func (d *DropdownActions) SelectMany(loc playwright.Locator, values []string, name string) error {
	done := d.a.step(fmt.Sprintf("select %d options in %s", len(values), name))
	if len(values) == 0 {
		return done(errs.New(errs.InvalidArgument, "no values given for "+name))
	}
	selected, err := loc.SelectOption(playwright.SelectOptionValues{
		Values: &values,
	})
	if err != nil {
		return done(errs.Automation("multi select in "+name, err))
	}
	if len(selected) != len(values) {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("%s selected %d of %d requested options", name, len(selected), len(values))))
	}
	return done(nil)
}

// Options returns the value attribute of every option in the dropdown.
func (d *DropdownActions) Options(loc playwright.Locator, name string) ([]string, error) {
	done := d.a.quietStep("list options: " + name)
	opts := loc.Locator("option")
	count, err := opts.Count()
	if err != nil {
		return nil, done(errs.Automation("count options of "+name, err))
	}
	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		value, err := opts.Nth(i).GetAttribute("value")
		if err != nil {
			return nil, done(errs.Automation("read option of "+name, err))
		}
		values = append(values, value)
	}
	return values, done(nil)
}

// OptionLabels returns the visible text of every option in the dropdown.
func (d *DropdownActions) OptionLabels(loc playwright.Locator, name string) ([]string, error) {
	done := d.a.quietStep("list option labels: " + name)
	opts := loc.Locator("option")
	count, err := opts.Count()
	if err != nil {
		return nil, done(errs.Automation("count options of "+name, err))
	}
	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := opts.Nth(i).InnerText()
		if err != nil {
			return nil, done(errs.Automation("read option of "+name, err))
		}
		labels = append(labels, strings.TrimSpace(text))
	}
	return labels, done(nil)
}

// ExpectOptions asserts the dropdown offers exactly the wanted values,
// regardless of order.
func (d *DropdownActions) ExpectOptions(loc playwright.Locator, want []string, name string) error {
	done := d.a.step("expect options: " + name)
	got, err := d.Options(loc, name)
	if err != nil {
		return done(err)
	}
	a := append([]string(nil), got...)
	b := append([]string(nil), want...)
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("%s has %d options %v, expected %d %v", name, len(got), got, len(want), want)))
	}
	for i := range a {
		if a[i] != b[i] {
			return done(errs.New(errs.AssertionFailed,
				fmt.Sprintf("options of %s are %v, expected %v", name, got, want)))
		}
	}
	return done(nil)
}

// ExpectSelected asserts the dropdown's current value.
func (d *DropdownActions) ExpectSelected(loc playwright.Locator, want, name string) error {
	done := d.a.step(fmt.Sprintf("expect selected %q in %s", want, name))
	value, err := loc.InputValue()
	if err != nil {
		return done(errs.Automation("read selection of "+name, err))
	}
	if value != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("%s has %q selected, expected %q", name, value, want)))
	}
	return done(nil)
}
