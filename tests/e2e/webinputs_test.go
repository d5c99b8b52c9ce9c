package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/uiharness/internal/pages"
)

func TestWebInputsDisplayEchoesValues(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	p := pages.NewWebInputs(a.Page())

	require.NoError(t, a.Element.FillNumber(p.NumberInput, 42, "number input"))
	require.NoError(t, a.Element.Fill(p.TextInput, "hello world", "text input"))
	require.NoError(t, a.Element.Fill(p.PasswordInput, "s3cret", "password input"))
	require.NoError(t, a.Element.Fill(p.DateInput, "2026-03-14", "date input"))

	require.NoError(t, a.Element.Click(p.DisplayButton, "display button"))

	require.NoError(t, a.Element.ExpectTextEquals(p.NumberOutput, "42", "number output"))
	require.NoError(t, a.Element.ExpectTextEquals(p.TextOutput, "hello world", "text output"))
	require.NoError(t, a.Element.ExpectTextEquals(p.PasswordOutput, "s3cret", "password output"))
	require.NoError(t, a.Element.ExpectTextEquals(p.DateOutput, "2026-03-14", "date output"))
}

func TestWebInputsClearEmptiesEverything(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	p := pages.NewWebInputs(a.Page())

	require.NoError(t, a.Element.Fill(p.TextInput, "to be cleared", "text input"))
	require.NoError(t, a.Element.Click(p.DisplayButton, "display button"))
	require.NoError(t, a.Element.Click(p.ClearButton, "clear button"))

	require.NoError(t, a.Element.ExpectEmpty(p.TextInput, "text input"))
	require.NoError(t, a.Element.ExpectTextEquals(p.TextOutput, "", "text output"))
}

func TestWebInputsRejectsNegativeNumber(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	p := pages.NewWebInputs(a.Page())

	err := a.Element.FillNumber(p.NumberInput, -5, "number input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestWebInputsRequiredFieldValidationMessage(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	p := pages.NewWebInputs(a.Page())

	require.NoError(t, a.Element.ExpectValidationMessage(p.NumberInput, []string{
		"Please fill out this field.",
		"Please fill in this field.",
	}, "number input"))

	require.NoError(t, a.Element.FillNumber(p.NumberInput, 1, "number input"))
	require.NoError(t, a.Element.ExpectValidationMessage(p.NumberInput,
		[]string{""}, "number input"))
}

func TestWebInputsIntAndFloatValues(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	p := pages.NewWebInputs(a.Page())

	require.NoError(t, a.Element.FillNumber(p.NumberInput, 7, "number input"))
	require.NoError(t, a.Element.ExpectIntValue(p.NumberInput, 7, "number input"))

	require.NoError(t, a.Element.FillNumber(p.NumberInput, 3.25, "number input"))
	require.NoError(t, a.Element.ExpectFloatValue(p.NumberInput, 3.25, 0.001, "number input"))
}

func TestWebInputsDropdowns(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	fruits := a.Loc("#fruits")
	colors := a.Loc("#colors")

	require.NoError(t, a.Dropdown.ExpectOptions(fruits,
		[]string{"", "apple", "banana", "cherry"}, "fruit dropdown"))
	labels, err := a.Dropdown.OptionLabels(fruits, "fruit dropdown")
	require.NoError(t, err)
	assert.Contains(t, labels, "Apple")
	assert.Contains(t, labels, "Cherry")
	require.NoError(t, a.Dropdown.SelectByValue(fruits, "banana", "fruit dropdown"))
	require.NoError(t, a.Dropdown.ExpectSelected(fruits, "banana", "fruit dropdown"))
	require.NoError(t, a.Dropdown.SelectByLabel(fruits, "Cherry", "fruit dropdown"))
	require.NoError(t, a.Dropdown.ExpectSelected(fruits, "cherry", "fruit dropdown"))

	require.NoError(t, a.Dropdown.SelectMany(colors, []string{"red", "blue"}, "color multi-select"))
}

func TestWebInputsKeyboardTraversal(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	p := pages.NewWebInputs(a.Page())

	require.NoError(t, a.Element.Focus(p.NumberInput, "number input"))
	require.NoError(t, a.Keyboard.PressTabExpectFocus("input-text"))
	require.NoError(t, a.Keyboard.PressTabExpectFocus("input-password"))
	require.NoError(t, a.Keyboard.PressShiftTab())
	require.NoError(t, a.Keyboard.ExpectFocused(p.TextInput, "text input"))

	require.NoError(t, a.Keyboard.Type("typed via keyboard"))
	require.NoError(t, a.Element.ExpectValue(p.TextInput, "typed via keyboard", "text input"))
}

func TestWebInputsFileUpload(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/inputs")))
	input := a.Loc("#input-file")

	path := writeTempFile(t, "upload.txt", "file upload payload")
	require.NoError(t, a.File.Upload(input, path, "file input"))
	require.NoError(t, a.File.ClearUpload(input, "file input"))

	second := writeTempFile(t, "upload.csv", "a,b\n1,2\n")
	require.NoError(t, a.File.UploadMany(input, []string{path, second}, "file input"))
	require.NoError(t, a.File.ClearUpload(input, "file input"))
}
