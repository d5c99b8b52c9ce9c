package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragBoxOntoTarget(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/interactions")))
	status := a.Loc("#drop-status")

	require.NoError(t, a.Element.ExpectTextEquals(status, "waiting", "drop status"))
	require.NoError(t, a.Element.DragAndDrop(
		a.Loc("#drag-source"), a.Loc("#drop-target"), "box onto target"))
	require.NoError(t, a.Element.ExpectTextEquals(status, "dropped", "drop status"))
}

func TestSliderDragsToFraction(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/interactions")))
	slider := a.Loc("#slider")

	// thumb geometry shifts the landed value a little, hence the tolerance
	require.NoError(t, a.Element.MoveSliderTo(slider, slider, 0.9, "range slider"))
	require.NoError(t, a.Element.ExpectFloatValue(slider, 90, 10, "range slider"))

	require.NoError(t, a.Element.MoveSliderTo(slider, slider, 0.1, "range slider"))
	require.NoError(t, a.Element.ExpectFloatValue(slider, 10, 10, "range slider"))
}

func TestSliderRejectsFractionOutOfRange(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/interactions")))
	slider := a.Loc("#slider")

	err := a.Element.MoveSliderTo(slider, slider, 1.5, "range slider")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fraction")
}

func TestScrollRevealsBottomMarker(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/interactions")))

	require.NoError(t, a.Scroll(0, 800))
	scrolled, err := a.Page().Evaluate("() => window.scrollY > 0")
	require.NoError(t, err)
	assert.Equal(t, true, scrolled)

	require.NoError(t, a.Element.ScrollIntoView(a.Loc("#bottom-marker"), "bottom marker"))
	require.NoError(t, a.Element.ExpectVisible(a.Loc("#bottom-marker"), "bottom marker"))

	require.NoError(t, a.Swipe(-200))
}

func TestPaginatedTableNavigation(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/paginated")))
	table := a.Loc("#items")
	nav := a.Loc("#pagination")

	require.NoError(t, a.Navigation.ExpectPageCount(nav, 5))
	require.NoError(t, a.Table.ExpectRowCount(table, 10, "items table"))
	require.NoError(t, a.Table.ExpectRowData(table, 0, []string{"item-1", "1"}, "items table"))

	require.NoError(t, a.Navigation.GoToPageNumber(nav, 3))
	require.NoError(t, a.Table.ExpectRowData(table, 0, []string{"item-21", "21"}, "items table"))
	require.NoError(t, a.Table.ExpectRowData(table, 9, []string{"item-30", "30"}, "items table"))
}
