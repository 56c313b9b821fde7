package ui

import (
	"fmt"
	"strings"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/restcountries"
)

// renderFavorites renders the favorites as a table in saved order.
func (m Model) renderFavorites(height int) string {
	tag := m.tag()
	var codes []string
	limit := 0
	if m.favorites != nil {
		codes = m.favorites.List()
		limit = m.favorites.Max()
	}
	if len(codes) == 0 {
		return m.renderEmpty(i18n.T(tag, i18n.UINoFavorites), height)
	}

	palette := m.palette()
	innerWidth := m.width - 2
	bodyRows := max(height-3, 1)

	lines := []string{m.renderListHeader(innerWidth, palette.FocusBg)}
	offset := max(m.setRow-bodyRows+1, 0)
	for i := offset; i < len(codes) && i < offset+bodyRows; i++ {
		lines = append(lines, m.renderCountryRow(m.countryOrStub(codes[i]), innerWidth, i == m.setRow))
	}

	title := fmt.Sprintf("%s (%d/%d)", i18n.T(tag, i18n.UIFavorites), len(codes), limit)
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

// renderComparison lays the compared countries out side by side, one
// column per country and one row per attribute.
func (m Model) renderComparison(height int) string {
	tag := m.tag()
	var codes []string
	limit := 0
	if m.comparison != nil {
		codes = m.comparison.List()
		limit = m.comparison.Max()
	}
	if len(codes) == 0 {
		return m.renderEmpty(i18n.T(tag, i18n.UINoComparison), height)
	}

	palette := m.palette()
	styles := m.styles()
	bg := NewBgStyle(palette.FocusBg)
	innerWidth := m.width - 2

	countries := make([]restcountries.Country, len(codes))
	for i, code := range codes {
		countries[i] = m.countryOrStub(code)
	}

	labelWidth := 18
	colWidth := max((innerWidth-labelWidth)/len(countries)-1, 8)

	header := []string{bg.Cell("", labelWidth, styles.MutedText)}
	for i, c := range countries {
		style := styles.AccentText.Bold(true)
		if i == m.setRow {
			style = styles.Selected.Bold(true)
		}
		header = append(header, bg.Cell(c.DisplayName(m.localeCode()), colWidth, style))
	}

	type attribute struct {
		key   string
		value func(restcountries.Country) string
	}
	attributes := []attribute{
		{i18n.UICapital, func(c restcountries.Country) string { return joinSorted(c.Capital) }},
		{i18n.UIRegion, func(c restcountries.Country) string { return c.Region }},
		{i18n.UISubregion, func(c restcountries.Country) string { return c.Subregion }},
		{i18n.UIPopulation, func(c restcountries.Country) string { return formatInt(tag, c.Population) }},
		{i18n.UIArea, func(c restcountries.Country) string { return formatArea(tag, c.Area) }},
		{i18n.UILanguages, func(c restcountries.Country) string { return joinSorted(c.LanguageNames()) }},
		{i18n.UICurrencies, func(c restcountries.Country) string { return joinSorted(c.CurrencyNames()) }},
		{i18n.UITimezones, func(c restcountries.Country) string { return joinSorted(c.Timezones) }},
		{i18n.UIBorders, func(c restcountries.Country) string { return fmt.Sprintf("%d", len(c.Borders)) }},
	}

	lines := []string{bg.FillLine(joinCells(header, bg), innerWidth), ""}
	for _, attr := range attributes {
		cells := []string{bg.Cell(i18n.T(tag, attr.key), labelWidth, styles.MutedText)}
		for _, c := range countries {
			cells = append(cells, bg.Cell(attr.value(c), colWidth, styles.Text))
		}
		lines = append(lines, bg.FillLine(joinCells(cells, bg), innerWidth))
	}

	title := fmt.Sprintf("%s (%d/%d)", i18n.T(tag, i18n.UIComparison), len(codes), limit)
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

// countryOrStub returns the known country for code, or a placeholder that
// carries only the code while the collection is not loaded.
func (m Model) countryOrStub(code string) restcountries.Country {
	if c, ok := m.lookup(code); ok {
		return c
	}
	return restcountries.Country{CCA3: code, Name: restcountries.Name{Common: code}}
}
