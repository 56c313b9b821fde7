package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which secondary columns hide.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show the subregion column.
	LayoutWideWidth = 140
)

// Column widths of the country table.
const (
	colMarks      = 3
	colCode       = 4
	colPopulation = 15
	colArea       = 13
	colRegion     = 10
	colSubregion  = 20
)

// Timing constants.
const (
	// DefaultTick is how often the model re-reads the store and notices.
	DefaultTick = time.Second

	// DetailFetchTimeout bounds the detail enrichment request.
	DetailFetchTimeout = 10 * time.Second

	// ThemeSyncInterval is how often the system color preference is
	// re-read besides on terminal focus.
	ThemeSyncInterval = 30 * time.Second
)

// chromeHeight is the number of rows used by the header, command bar and
// notice line.
const chromeHeight = 3

// logTailLines is how many log records the diagnostics view shows.
const logTailLines = 8
