// Package ui implements the atlas terminal explorer with Bubble Tea.
//
// # Architecture Overview
//
// Model owns no data of its own. On every tick it re-reads state.Store for
// the derived collection and notify.Center for transient notices, so
// background refreshes, preference changes from other processes and expired
// notices all show up without extra plumbing. Mutations go straight to the
// owning component (store filters and sort, favorites, comparison, theme,
// locale) and the next render reflects them.
//
// # Views
//
//   - Countries: paginated table of the filtered and sorted collection
//   - Favorites: saved countries in the order they were added
//   - Comparison: up to four countries side by side
//   - Statistics: totals, extremes and the per-region distribution
//   - Diagnostics: cache contents, pending requests and metric counters
//
// The detail overlay opens from any table with enter. It renders the row
// at once and replaces it with the record returned by the client, which is
// served from the response cache when possible.
//
// # Search
//
// "/" edits the search filter, which is applied on every keystroke. When
// no collection is loaded (for example after an offline start), enter sends
// the query to the online name search instead and lists those results.
//
// # Key Bindings
//
// See DefaultKeyMap; "?" shows every binding grouped by section.
package ui
