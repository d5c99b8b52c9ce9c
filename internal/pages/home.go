// Package pages holds the locator bundles for the practice site. Each page
// struct is a plain collection of named locators built once from a
// playwright.Page; behavior lives in the actions catalog, not here.
package pages

import "github.com/playwright-community/playwright-go"

// Home is the practice site landing page with its navigation cards.
type Home struct {
	Title            playwright.Locator
	WebInputsLink    playwright.Locator
	LoginLink        playwright.Locator
	RegisterLink     playwright.Locator
	DynamicTableLink playwright.Locator
	SignInLink       playwright.Locator
	SignUpLink       playwright.Locator
}

func NewHome(page playwright.Page) *Home {
	return &Home{
		Title:            page.Locator("h1"),
		WebInputsLink:    page.Locator("a[href*='inputs']").First(),
		LoginLink:        page.Locator("a[href*='login']").First(),
		RegisterLink:     page.Locator("a[href*='register']").First(),
		DynamicTableLink: page.Locator("a[href*='dynamic-table']").First(),
		SignInLink:       page.Locator("a[href*='sign-in'], a[href='#/login']").First(),
		SignUpLink:       page.Locator("a[href*='sign-up'], a[href='#/register']").First(),
	}
}
