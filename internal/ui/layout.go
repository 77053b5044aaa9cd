package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the club, year, gap
	// and race columns are hidden.
	LayoutCompactWidth = 100

	// LayoutURLWidth is the minimum width to show the API URL in the header.
	LayoutURLWidth = 120
)

// Vertical chrome around the results table.
const (
	headerHeight    = 1
	searchBarHeight = 3 // bordered single line
	footerHeight    = 1

	// minTableHeight keeps the header row and one result visible.
	minTableHeight = 3
)

// Fixed widths of the search bar and results columns.
const (
	searchButtonWidth = 14
	nameColumnMin     = 16
	cellPadding       = 2 // bubbles table pads each cell by one on each side
)
