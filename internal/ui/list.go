package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/restcountries"
	"github.com/five82/atlas/internal/state"
)

// tableColumns holds the widths of the flexible country table.
type tableColumns struct {
	name, capital, region, subregion, population, area int
}

func (m Model) columns(width int) tableColumns {
	cols := tableColumns{region: colRegion, population: colPopulation, area: colArea}
	withCapital := m.width >= LayoutCompactWidth
	if m.width >= LayoutWideWidth {
		cols.subregion = colSubregion
	}

	// marks, code, name, region, population and area are always rendered.
	cells := 6
	if withCapital {
		cells++
	}
	if cols.subregion > 0 {
		cells++
	}
	separators := cells - 1

	fixed := colMarks + colCode + cols.region + cols.subregion + cols.population + cols.area + separators
	flex := max(width-fixed, 12)
	if withCapital {
		cols.capital = flex / 3
	}
	cols.name = flex - cols.capital
	return cols
}

// renderList renders the paginated country table.
func (m Model) renderList(height int) string {
	tag := m.tag()
	items := m.listItems()

	if len(items) == 0 {
		switch {
		case m.snapshot.Loading, m.remoteFor != "" && m.remote == nil:
			return m.renderEmpty(i18n.T(tag, i18n.UILoading), height)
		case m.snapshot.LastError != nil && len(m.snapshot.Countries) == 0:
			return m.renderEmpty(i18n.ErrorMessage(tag, m.snapshot.LastError), height)
		default:
			return m.renderEmpty(i18n.T(tag, i18n.UIEmpty), height)
		}
	}

	palette := m.palette()
	innerWidth := m.width - 2
	bodyRows := max(height-4, 1) // borders, column header and page footer

	lines := []string{m.renderListHeader(innerWidth, palette.FocusBg)}

	page := m.pageItems()
	offset := max(m.selectedRow-bodyRows+1, 0)
	for i := offset; i < len(page) && i < offset+bodyRows; i++ {
		lines = append(lines, m.renderCountryRow(page[i], innerWidth, i == m.selectedRow))
	}
	for len(lines) < bodyRows+1 {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderPageFooter(len(items), innerWidth, palette.FocusBg))

	return m.renderTitledBox(m.listTitle(), strings.Join(lines, "\n"), m.width, height, true)
}

// listTitle describes the active region, sort and search.
func (m Model) listTitle() string {
	tag := m.tag()
	if m.remoteFor != "" {
		return fmt.Sprintf("%s: %q", i18n.T(tag, i18n.UIRemoteResults), m.remoteFor)
	}

	filters := m.snapshot.Filters
	region := filters.Region
	if region == "" {
		region = i18n.T(tag, i18n.UIAllRegions)
	}
	parts := []string{region, i18n.T(tag, i18n.UISortBy) + ": " + m.sortLabel(m.snapshot.Sort)}
	if filters.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", filters.Search))
	}
	return strings.Join(parts, " · ")
}

func (m Model) sortLabel(s state.Sort) string {
	tag := m.tag()
	var field string
	switch s.Field {
	case state.SortByPopulation:
		field = i18n.T(tag, i18n.UIPopulation)
	case state.SortByArea:
		field = i18n.T(tag, i18n.UIArea)
	default:
		field = i18n.T(tag, i18n.UIName)
	}
	return field + ternary(s.Direction == state.Desc, " ↓", " ↑")
}

func (m Model) renderListHeader(width int, bgColor string) string {
	tag := m.tag()
	styles := m.styles()
	bg := NewBgStyle(bgColor)
	cols := m.columns(width)
	head := styles.MutedText.Bold(true)

	cells := []string{
		bg.Cell("", colMarks, head),
		bg.Cell("", colCode, head),
		bg.Cell(i18n.T(tag, i18n.UIName), cols.name, head),
		bg.Cell(i18n.T(tag, i18n.UICapital), cols.capital, head),
		bg.Cell(i18n.T(tag, i18n.UIRegion), cols.region, head),
		bg.Cell(i18n.T(tag, i18n.UISubregion), cols.subregion, head),
		bg.RightCell(i18n.T(tag, i18n.UIPopulation), cols.population, head),
		bg.RightCell(i18n.T(tag, i18n.UIArea), cols.area, head),
	}
	return bg.FillLine(joinCells(cells, bg), width)
}

// renderCountryRow formats one table row. Selected rows use SelectionText
// for every cell to keep contrast.
func (m Model) renderCountryRow(c restcountries.Country, width int, selected bool) string {
	palette := m.palette()
	styles := m.styles()
	tag := m.tag()
	cols := m.columns(width)

	bgColor := palette.FocusBg
	if selected {
		bgColor = palette.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var codeStyle, nameStyle, textStyle, regionStyle, markStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.SelectionText))
		codeStyle, nameStyle, textStyle, regionStyle, markStyle = sel, sel.Bold(true), sel, sel, sel
	} else {
		codeStyle = styles.FaintText
		nameStyle = styles.Text
		textStyle = styles.MutedText
		regionStyle = styles.RegionStyle(c.Region)
		markStyle = styles.WarningText
	}

	capital := "-"
	if len(c.Capital) > 0 {
		capital = c.Capital[0]
	}

	cells := []string{
		bg.Cell(m.marks(c.CCA3), colMarks, markStyle),
		bg.Cell(c.CCA3, colCode, codeStyle),
		bg.Cell(c.DisplayName(m.localeCode()), cols.name, nameStyle),
		bg.Cell(capital, cols.capital, textStyle),
		bg.Cell(c.Region, cols.region, regionStyle),
		bg.Cell(c.Subregion, cols.subregion, textStyle),
		bg.RightCell(formatInt(tag, c.Population), cols.population, textStyle),
		bg.RightCell(formatArea(tag, c.Area), cols.area, textStyle),
	}
	return bg.FillLine(joinCells(cells, bg), width)
}

// marks returns the favorite and comparison indicators for code.
func (m Model) marks(code string) string {
	fav := m.favorites != nil && m.favorites.Contains(code)
	cmp := m.comparison != nil && m.comparison.Contains(code)
	return ternary(fav, "★", " ") + ternary(cmp, "⚖", " ")
}

// renderPageFooter shows "Page x of y", the visible page window and the
// page size.
func (m Model) renderPageFooter(total, width int, bgColor string) string {
	styles := m.styles()
	bg := NewBgStyle(bgColor)
	tag := m.tag()

	current := m.pager.Current()
	pages := m.pager.TotalPages(total)
	parts := []string{bg.Render(i18n.T(tag, i18n.UIPage, current, pages), styles.MutedText)}

	window := make([]string, 0, 5)
	for _, p := range m.pager.Visible(total) {
		label := fmt.Sprintf("%d", p)
		if p == current {
			window = append(window, bg.Render("["+label+"]", styles.AccentText.Bold(true)))
		} else {
			window = append(window, bg.Render(label, styles.FaintText))
		}
	}
	if len(window) > 0 {
		parts = append(parts, bg.Render("‹", styles.FaintText)+bg.Space()+bg.Join(window, " ")+bg.Space()+bg.Render("›", styles.FaintText))
	}
	parts = append(parts, bg.Render(fmt.Sprintf("%d/pg", m.pager.PerPage()), styles.FaintText))

	return bg.FillLine(bg.Join(parts, "   "), width)
}

func joinCells(cells []string, bg BgStyle) string {
	kept := make([]string, 0, len(cells))
	for _, c := range cells {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return bg.Join(kept, " ")
}
