package pages

import "github.com/playwright-community/playwright-go"

// WebInputs is the inputs playground: four typed fields, a display button
// that echoes the values into an output area, and a clear button.
type WebInputs struct {
	NumberInput   playwright.Locator
	TextInput     playwright.Locator
	PasswordInput playwright.Locator
	DateInput     playwright.Locator

	DisplayButton playwright.Locator
	ClearButton   playwright.Locator

	NumberOutput   playwright.Locator
	TextOutput     playwright.Locator
	PasswordOutput playwright.Locator
	DateOutput     playwright.Locator
}

func NewWebInputs(page playwright.Page) *WebInputs {
	return &WebInputs{
		NumberInput:   page.Locator("#input-number"),
		TextInput:     page.Locator("#input-text"),
		PasswordInput: page.Locator("#input-password"),
		DateInput:     page.Locator("#input-date"),

		DisplayButton: page.Locator("#btn-display-inputs"),
		ClearButton:   page.Locator("#btn-clear-inputs"),

		NumberOutput:   page.Locator("#output-number"),
		TextOutput:     page.Locator("#output-text"),
		PasswordOutput: page.Locator("#output-password"),
		DateOutput:     page.Locator("#output-date"),
	}
}
