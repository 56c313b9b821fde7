package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit         key.Binding
	Help         key.Binding
	ToggleTheme  key.Binding
	ToggleLocale key.Binding
	Reload       key.Binding
	Tab          key.Binding
	ShiftTab     key.Binding
	Escape       key.Binding

	// View switching
	ViewList        key.Binding
	ViewFavorites   key.Binding
	ViewComparison  key.Binding
	ViewStats       key.Binding
	ViewDiagnostics key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	First    key.Binding
	Last     key.Binding
	Open     key.Binding

	// Collection
	Search       key.Binding
	CycleRegion  key.Binding
	CycleSort    key.Binding
	FlipSort     key.Binding
	CyclePerPage key.Binding
	ResetFilters key.Binding

	// Sets
	ToggleFavorite   key.Binding
	ToggleComparison key.Binding
	ClearComparison  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("h/?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Light/dark theme"),
		),
		ToggleLocale: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Español/English"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r", "r"),
			key.WithHelp("r", "Clear cache and reload"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to list"),
		),

		// View switching
		ViewList: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Countries"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Favorites"),
		),
		ViewComparison: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Comparison"),
		),
		ViewStats: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Statistics"),
		),
		ViewDiagnostics: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Diagnostics"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "pgdown"),
			key.WithHelp("n/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "pgup"),
			key.WithHelp("p/←", "Previous page"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First page"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last page"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Country details"),
		),

		// Collection
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleRegion: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Cycle region"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort field"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Sort direction"),
		),
		CyclePerPage: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Rows per page"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Reset filters"),
		),

		// Sets
		ToggleFavorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		ToggleComparison: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Toggle comparison"),
		),
		ClearComparison: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Clear comparison"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleRegion, k.CycleSort, k.ToggleFavorite, k.ToggleComparison, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewList, k.ViewFavorites, k.ViewComparison, k.ViewStats, k.ViewDiagnostics, k.Escape},
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.First, k.Last, k.Open},
		{k.Search, k.CycleRegion, k.CycleSort, k.FlipSort, k.CyclePerPage, k.ResetFilters},
		{k.ToggleFavorite, k.ToggleComparison, k.ClearComparison},
		{k.Reload, k.ToggleTheme, k.ToggleLocale, k.Help, k.Quit},
	}
}
