// Package state holds the country collection and derives the views the UI
// renders from it.
//
// # Overview
//
// A Store owns the raw collection loaded by Refresh, the active filter
// criteria and the active sort. Everything the UI displays is computed from
// those three on demand:
//
//	Refresh ──→ raw collection ──┬─→ FilteredAndSorted (filters + sort)
//	                             ├─→ Regions
//	                             └─→ Statistics (ignores filters)
//
// The raw collection is replaced wholesale on a successful refresh, so readers
// never see a partially updated list. Snapshot returns copies.
//
// # Refresh Failures
//
// Refresh never returns an error. Failures are classified into timeout,
// not-found, offline, server-error or generic, reported as a localized
// notice, and recorded on the snapshot. The previous collection is kept.
// Cancelled refreshes are dropped silently. The loading flag is cleared on
// every exit path.
//
// # Filtering
//
// Search matches the common name, the localized name, or any capital,
// case-insensitively. Region is an exact match. The population range is
// always applied. Language and currency match any name by substring. All
// active filters must match.
//
// # Sorting
//
// Names are ordered with golang.org/x/text/collate for the UI language;
// population and area numerically. Sorting is stable.
package state
