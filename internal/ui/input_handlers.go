package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/paginate"
	"github.com/five82/atlas/internal/restcountries"
	"github.com/five82/atlas/internal/state"
)

// listItems returns what the list view shows: online search results while
// they are active, otherwise the derived collection.
func (m Model) listItems() []restcountries.Country {
	if m.remoteFor != "" {
		return m.remote
	}
	return m.items
}

func (m Model) pageItems() []restcountries.Country {
	return paginate.Slice(m.pager, m.listItems())
}

func (m Model) selectedCountry() (restcountries.Country, bool) {
	page := m.pageItems()
	if m.selectedRow < 0 || m.selectedRow >= len(page) {
		return restcountries.Country{}, false
	}
	return page[m.selectedRow], true
}

// setCodes returns the codes of the favorites or comparison view.
func (m Model) setCodes() []string {
	switch m.currentView {
	case ViewFavorites:
		if m.favorites != nil {
			return m.favorites.List()
		}
	case ViewComparison:
		if m.comparison != nil {
			return m.comparison.List()
		}
	}
	return nil
}

// handleListKey processes keyboard input for the country list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.listItems())

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Placeholder = i18n.T(m.tag(), i18n.UISearch)
		m.search.SetValue(m.snapshot.Filters.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		} else if m.pager.Prev(total) {
			m.selectedRow = len(m.pageItems()) - 1
		}

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.pageItems())-1 {
			m.selectedRow++
		} else if m.pager.Next(total) {
			m.selectedRow = 0
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.pager.Next(total) {
			m.selectedRow = 0
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.pager.Prev(total) {
			m.selectedRow = 0
		}

	case key.Matches(msg, m.keys.First):
		m.pager.First(total)
		m.selectedRow = 0

	case key.Matches(msg, m.keys.Last):
		m.pager.Last(total)
		m.selectedRow = 0

	case key.Matches(msg, m.keys.Open):
		if c, ok := m.selectedCountry(); ok {
			return m.openDetail(c)
		}

	case key.Matches(msg, m.keys.CycleRegion):
		m.cycleRegion()

	case key.Matches(msg, m.keys.CycleSort):
		if m.store != nil {
			s := m.store.Sort()
			m.store.SetSort(s.Field.Next(), s.Direction)
			m.resetList()
		}

	case key.Matches(msg, m.keys.FlipSort):
		if m.store != nil {
			s := m.store.Sort()
			dir := state.Desc
			if s.Direction == state.Desc {
				dir = state.Asc
			}
			m.store.SetSort(s.Field, dir)
			m.resetList()
		}

	case key.Matches(msg, m.keys.CyclePerPage):
		m.pager.CyclePerPage()
		m.selectedRow = 0

	case key.Matches(msg, m.keys.ResetFilters):
		if m.store != nil {
			m.store.ResetFilters()
		}
		m.search.SetValue("")
		m.resetList()

	case key.Matches(msg, m.keys.ToggleFavorite):
		if c, ok := m.selectedCountry(); ok {
			m.toggleFavorite(c.CCA3)
		}

	case key.Matches(msg, m.keys.ToggleComparison):
		if c, ok := m.selectedCountry(); ok {
			m.toggleComparison(c.CCA3)
		}
	}

	return m, nil
}

// resetList leaves online results, returns to page 1 and re-derives the list.
func (m *Model) resetList() {
	m.remote = nil
	m.remoteFor = ""
	m.pager.Reset()
	m.selectedRow = 0
	m.sync()
}

// cycleRegion steps through "all regions" followed by every known region.
func (m *Model) cycleRegion() {
	if m.store == nil {
		return
	}
	regions := append([]string{""}, m.store.Regions()...)
	current := m.store.Filters().Region
	next := regions[0]
	for i, r := range regions {
		if r == current {
			next = regions[(i+1)%len(regions)]
			break
		}
	}
	m.store.SetFilters(state.FilterPatch{Region: &next})
	m.resetList()
}

// handleSearchKey feeds the search input. The filter follows every
// keystroke; enter with no local data falls back to the online search.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil

	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		query := strings.TrimSpace(m.search.Value())
		if query != "" && len(m.snapshot.Countries) == 0 && m.client != nil {
			m.remoteFor = query
			m.remote = nil
			m.pager.Reset()
			m.selectedRow = 0
			return m, searchRemoteCmd(m.ctx, m.client, query)
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before && m.store != nil {
		m.store.SetFilters(state.FilterPatch{Search: &value})
		m.resetList()
	}
	return m, cmd
}

// handleSetKey processes keyboard input for the favorites and comparison
// views.
func (m Model) handleSetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	codes := m.setCodes()
	if len(codes) == 0 {
		return m, nil
	}
	if m.setRow >= len(codes) {
		m.setRow = len(codes) - 1
	}
	code := codes[m.setRow]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.setRow > 0 {
			m.setRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.setRow < len(codes)-1 {
			m.setRow++
		}
	case key.Matches(msg, m.keys.First):
		m.setRow = 0
	case key.Matches(msg, m.keys.Last):
		m.setRow = len(codes) - 1
	case key.Matches(msg, m.keys.Open):
		if c, ok := m.lookup(code); ok {
			return m.openDetail(c)
		}
	case key.Matches(msg, m.keys.ToggleFavorite):
		m.toggleFavorite(code)
	case key.Matches(msg, m.keys.ToggleComparison):
		m.toggleComparison(code)
	case key.Matches(msg, m.keys.ClearComparison):
		if m.currentView == ViewComparison && m.comparison != nil {
			if _, err := m.comparison.Clear(); err != nil {
				m.logger.Warn("persist comparison failed", slog.Any("error", err))
			}
		}
	}
	m.clampSelection()
	return m, nil
}

// handleDetailKey processes keyboard input while the detail overlay is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Open), msg.String() == "backspace":
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.ToggleFavorite):
		m.toggleFavorite(m.detail.CCA3)
		m.refreshDetailContent()
		return m, nil
	case key.Matches(msg, m.keys.ToggleComparison):
		m.toggleComparison(m.detail.CCA3)
		m.refreshDetailContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// lookup finds code in the loaded collection or the online results.
func (m Model) lookup(code string) (restcountries.Country, bool) {
	if m.store != nil {
		if c, ok := m.store.Country(code); ok {
			return c, true
		}
	}
	for _, c := range m.remote {
		if c.CCA3 == code {
			return c, true
		}
	}
	return restcountries.Country{}, false
}
