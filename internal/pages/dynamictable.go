package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/actions"
)

// DynamicTable is the page with the process metrics table whose cell order
// shuffles on every load.
type DynamicTable struct {
	Table      playwright.Locator
	ChromeCPU  playwright.Locator
	Pagination playwright.Locator
}

func NewDynamicTable(page playwright.Page) *DynamicTable {
	return &DynamicTable{
		Table:      page.Locator("table").First(),
		ChromeCPU:  page.Locator("#chrome-cpu"),
		Pagination: page.Locator("ul.pagination, nav.pagination").First(),
	}
}

// ScreenObstacles lists the overlays the practice site throws over its pages
// in the order they usually stack.
func ScreenObstacles(page playwright.Page) []actions.Obstacle {
	return []actions.Obstacle{
		{Name: "cookie banner", Dismiss: page.Locator("#cookie-accept, .cookie-banner button").First()},
		{Name: "subscription modal", Dismiss: page.Locator("#modal-close, .modal .close").First()},
		{Name: "ad overlay", Dismiss: page.Locator("#ad-dismiss, .ad-overlay .dismiss").First()},
	}
}
