package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/atlas/internal/theme"
)

func TestPaletteFor(t *testing.T) {
	if got := PaletteFor(theme.Dark).Name; got != "Nightfox" {
		t.Fatalf("dark palette = %q, want Nightfox", got)
	}
	if got := PaletteFor(theme.Light).Name; got != "Dayfox" {
		t.Fatalf("light palette = %q, want Dayfox", got)
	}
	for _, mode := range []theme.Mode{theme.Dark, theme.Light} {
		p := PaletteFor(mode)
		for _, region := range []string{"Africa", "Americas", "Asia", "Europe", "Oceania"} {
			if p.RegionColors[region] == "" {
				t.Errorf("%s palette has no color for %s", p.Name, region)
			}
		}
	}
}

func TestKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := make(map[string]string)
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if prev, ok := seen[k]; ok {
					t.Errorf("key %q bound to both %q and %q", k, prev, b.Help().Desc)
				}
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestKeyMap_CaseSensitiveBindings(t *testing.T) {
	km := DefaultKeyMap()
	lower := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}
	upper := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")}
	if !key.Matches(lower, km.CycleSort) || key.Matches(lower, km.FlipSort) {
		t.Fatal("s should only cycle the sort field")
	}
	if !key.Matches(upper, km.FlipSort) || key.Matches(upper, km.CycleSort) {
		t.Fatal("S should only flip the direction")
	}
}
