package actions

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// TableActions inspects and drives HTML tables.
type TableActions struct {
	a *Actions
}

func (t *TableActions) rows(table playwright.Locator) playwright.Locator {
	return table.Locator("tbody tr")
}

// Dimensions returns the body row count and the header column count.
func (t *TableActions) Dimensions(table playwright.Locator, name string) (rows, cols int, err error) {
	done := t.a.quietStep("table dimensions: " + name)
	rows, err = t.rows(table).Count()
	if err != nil {
		return 0, 0, done(errs.Automation("count rows of "+name, err))
	}
	cols, err = table.Locator("thead th").Count()
	if err != nil {
		return 0, 0, done(errs.Automation("count columns of "+name, err))
	}
	return rows, cols, done(nil)
}

// ExpectHeaders asserts the table headers in order.
func (t *TableActions) ExpectHeaders(table playwright.Locator, want []string, name string) error {
	done := t.a.step("expect headers: " + name)
	headers := table.Locator("thead th")
	count, err := headers.Count()
	if err != nil {
		return done(errs.Automation("count headers of "+name, err))
	}
	if count != len(want) {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("%s has %d headers, expected %d", name, count, len(want))))
	}
	for i, w := range want {
		text, err := headers.Nth(i).InnerText()
		if err != nil {
			return done(errs.Automation("read header of "+name, err))
		}
		if strings.TrimSpace(text) != w {
			return done(errs.New(errs.AssertionFailed,
				fmt.Sprintf("header %d of %s is %q, expected %q", i, name, strings.TrimSpace(text), w)))
		}
	}
	return done(nil)
}

// ExpectRowCount asserts the table's body row count.
func (t *TableActions) ExpectRowCount(table playwright.Locator, want int, name string) error {
	done := t.a.step(fmt.Sprintf("expect %d rows: %s", want, name))
	count, err := t.rows(table).Count()
	if err != nil {
		return done(errs.Automation("count rows of "+name, err))
	}
	if count != want {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("%s has %d rows, expected %d", name, count, want)))
	}
	return done(nil)
}

// FindRowContaining returns the index of the first body row with a cell whose
// text contains want, or an error when no row matches.
func (t *TableActions) FindRowContaining(table playwright.Locator, want, name string) (int, error) {
	return t.findRow(table, want, name, strings.Contains)
}

// FindRowExact returns the index of the first body row with a cell whose
// trimmed text equals want.
func (t *TableActions) FindRowExact(table playwright.Locator, want, name string) (int, error) {
	return t.findRow(table, want, name, func(cell, w string) bool { return cell == w })
}

func (t *TableActions) findRow(table playwright.Locator, want, name string, match func(cell, want string) bool) (int, error) {
	done := t.a.quietStep(fmt.Sprintf("find row %q in %s", want, name))
	rows := t.rows(table)
	count, err := rows.Count()
	if err != nil {
		return -1, done(errs.Automation("count rows of "+name, err))
	}
	for i := 0; i < count; i++ {
		cells := rows.Nth(i).Locator("td")
		cellCount, err := cells.Count()
		if err != nil {
			return -1, done(errs.Automation("count cells of "+name, err))
		}
		for j := 0; j < cellCount; j++ {
			text, err := cells.Nth(j).InnerText()
			if err != nil {
				return -1, done(errs.Automation("read cell of "+name, err))
			}
			if match(strings.TrimSpace(text), want) {
				return i, done(nil)
			}
		}
	}
	return -1, done(errs.New(errs.NotFound,
		fmt.Sprintf("no row of %s holds %q", name, want)))
}

// CellText reads the trimmed text of cell (row, col), zero-based.
func (t *TableActions) CellText(table playwright.Locator, row, col int, name string) (string, error) {
	done := t.a.quietStep(fmt.Sprintf("read cell (%d,%d) of %s", row, col, name))
	text, err := t.rows(table).Nth(row).Locator("td").Nth(col).InnerText()
	if err != nil {
		return "", done(errs.Automation(fmt.Sprintf("read cell (%d,%d) of %s", row, col, name), err))
	}
	return strings.TrimSpace(text), done(nil)
}

// ExpectRowData asserts the full cell contents of a zero-based row.
func (t *TableActions) ExpectRowData(table playwright.Locator, row int, want []string, name string) error {
	done := t.a.quietStep(fmt.Sprintf("expect row %d of %s", row, name))
	cells := t.rows(table).Nth(row).Locator("td")
	count, err := cells.Count()
	if err != nil {
		return done(errs.Automation("count cells of "+name, err))
	}
	if count != len(want) {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("row %d of %s has %d cells, expected %d", row, name, count, len(want))))
	}
	for i, wantCell := range want {
		text, err := cells.Nth(i).InnerText()
		if err != nil {
			return done(errs.Automation("read cell of "+name, err))
		}
		if got := strings.TrimSpace(text); got != wantCell {
			return done(errs.New(errs.AssertionFailed,
				fmt.Sprintf("cell (%d,%d) of %s is %q, expected %q", row, i, name, got, wantCell)))
		}
	}
	return done(nil)
}

// NumericColumn parses every cell of a zero-based column as a float. Cells
// may carry a unit suffix ("5%", "20 MB"); the leading number is used.
func (t *TableActions) NumericColumn(table playwright.Locator, col int, name string) ([]float64, error) {
	done := t.a.quietStep(fmt.Sprintf("numeric column %d of %s", col, name))
	rows := t.rows(table)
	count, err := rows.Count()
	if err != nil {
		return nil, done(errs.Automation("count rows of "+name, err))
	}
	values := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		text, err := rows.Nth(i).Locator("td").Nth(col).InnerText()
		if err != nil {
			return nil, done(errs.Automation("read cell of "+name, err))
		}
		value, err := parseLeadingFloat(strings.TrimSpace(text))
		if err != nil {
			return nil, done(errs.New(errs.AssertionFailed,
				fmt.Sprintf("cell (%d,%d) of %s is %q, not numeric", i, col, name, text)))
		}
		values = append(values, value)
	}
	return values, done(nil)
}

// ExpectColumnWithin asserts every value of a numeric column lies in
// [min, max].
func (t *TableActions) ExpectColumnWithin(table playwright.Locator, col int, min, max float64, name string) error {
	done := t.a.step(fmt.Sprintf("expect column %d of %s within [%v, %v]", col, name, min, max))
	values, err := t.NumericColumn(table, col, name)
	if err != nil {
		return done(err)
	}
	for i, v := range values {
		if v < min || v > max {
			return done(errs.New(errs.AssertionFailed,
				fmt.Sprintf("row %d of %s has %v, outside [%v, %v]", i, name, v, min, max)))
		}
	}
	return done(nil)
}

// CheckRowByCellText checks the checkbox of the first row holding want.
func (t *TableActions) CheckRowByCellText(table playwright.Locator, want, name string) error {
	done := t.a.step(fmt.Sprintf("check row %q in %s", want, name))
	row, err := t.FindRowExact(table, want, name)
	if err != nil {
		return done(err)
	}
	box := t.rows(table).Nth(row).Locator("input[type=checkbox]").First()
	if err := box.Check(playwright.LocatorCheckOptions{
		Timeout: playwright.Float(t.a.timeoutMS()),
	}); err != nil {
		return done(errs.Automation("check row in "+name, err))
	}
	return done(nil)
}

// CheckConsecutiveRows checks the checkboxes of count rows starting at from,
// zero-based.
func (t *TableActions) CheckConsecutiveRows(table playwright.Locator, from, count int, name string) error {
	done := t.a.step(fmt.Sprintf("check rows %d..%d of %s", from, from+count-1, name))
	total, err := t.rows(table).Count()
	if err != nil {
		return done(errs.Automation("count rows of "+name, err))
	}
	if from < 0 || from+count > total {
		return done(errs.New(errs.InvalidArgument,
			fmt.Sprintf("rows %d..%d outside table of %d rows", from, from+count-1, total)))
	}
	for i := from; i < from+count; i++ {
		box := t.rows(table).Nth(i).Locator("input[type=checkbox]").First()
		if err := box.Check(playwright.LocatorCheckOptions{
			Timeout: playwright.Float(t.a.timeoutMS()),
		}); err != nil {
			return done(errs.Automation(fmt.Sprintf("check row %d of %s", i, name), err))
		}
	}
	return done(nil)
}

// CheckRandomRows checks count distinct random rows and returns their
// indices in the order they were checked.
func (t *TableActions) CheckRandomRows(table playwright.Locator, count int, name string) ([]int, error) {
	done := t.a.step(fmt.Sprintf("check %d random rows of %s", count, name))
	total, err := t.rows(table).Count()
	if err != nil {
		return nil, done(errs.Automation("count rows of "+name, err))
	}
	if count > total {
		return nil, done(errs.New(errs.InvalidArgument,
			fmt.Sprintf("asked for %d rows, table %s has %d", count, name, total)))
	}
	picked := rand.Perm(total)[:count]
	for _, i := range picked {
		box := t.rows(table).Nth(i).Locator("input[type=checkbox]").First()
		if err := box.Check(playwright.LocatorCheckOptions{
			Timeout: playwright.Float(t.a.timeoutMS()),
		}); err != nil {
			return nil, done(errs.Automation(fmt.Sprintf("check row %d of %s", i, name), err))
		}
	}
	return picked, done(nil)
}

// UncheckAll clears every checked checkbox inside the table body.
func (t *TableActions) UncheckAll(table playwright.Locator, name string) error {
	done := t.a.step("uncheck all rows: " + name)
	boxes := table.Locator("tbody input[type=checkbox]")
	count, err := boxes.Count()
	if err != nil {
		return done(errs.Automation("count checkboxes of "+name, err))
	}
	for i := 0; i < count; i++ {
		box := boxes.Nth(i)
		checked, err := box.IsChecked()
		if err != nil {
			return done(errs.Automation("checkbox state in "+name, err))
		}
		if !checked {
			continue
		}
		if err := box.Uncheck(playwright.LocatorUncheckOptions{
			Timeout: playwright.Float(t.a.timeoutMS()),
		}); err != nil {
			return done(errs.Automation("uncheck row in "+name, err))
		}
	}
	return done(nil)
}

func parseLeadingFloat(s string) (float64, error) {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, fmt.Errorf("no leading number in %q", s)
	}
	return strconv.ParseFloat(s[:end], 64)
}
