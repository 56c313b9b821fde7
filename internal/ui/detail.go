package ui

import (
	"fmt"
	"strings"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/restcountries"
)

// resizeDetail fits the detail viewport inside the titled box.
func (m *Model) resizeDetail() {
	m.detailViewport.Width = max(m.width-4, 10)
	m.detailViewport.Height = max(m.height-chromeHeight-2, 1)
	m.refreshDetailContent()
}

func (m *Model) refreshDetailContent() {
	if !m.showDetail {
		return
	}
	m.detailViewport.SetContent(m.detailContent(m.detail))
}

// renderDetail renders the selected country inside a focused box.
func (m Model) renderDetail(height int) string {
	title := m.detail.DisplayName(m.localeCode())
	if m.detail.CCA3 != "" {
		title += " (" + m.detail.CCA3 + ")"
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, height, true)
}

// detailContent lays out every field of c as label/value rows.
func (m Model) detailContent(c restcountries.Country) string {
	styles := m.styles()
	tag := m.tag()

	label := func(key string) string {
		return styles.MutedText.Width(18).Render(i18n.T(tag, key))
	}
	row := func(key, value string) string {
		return label(key) + styles.Text.Render(value)
	}

	capital := joinSorted(c.Capital)
	var lines []string
	lines = append(lines,
		styles.AccentText.Bold(true).Render(c.DisplayName(m.localeCode()))+"  "+styles.WarningText.Render(m.marks(c.CCA3)),
		"",
		row(i18n.UIOfficialName, c.Name.Official),
		row(i18n.UICapital, capital),
		label(i18n.UIRegion)+styles.RegionStyle(c.Region).Render(c.Region),
		row(i18n.UISubregion, ternary(c.Subregion == "", "-", c.Subregion)),
		row(i18n.UIPopulation, formatInt(tag, c.Population)),
		row(i18n.UIArea, formatArea(tag, c.Area)),
		row(i18n.UILanguages, joinSorted(c.LanguageNames())),
		row(i18n.UICurrencies, joinSorted(currencyLabels(c))),
		row(i18n.UITimezones, joinSorted(c.Timezones)),
		row(i18n.UIBorders, m.borderNames(c.Borders)),
	)

	if c.Maps.OpenStreetMaps != "" || c.Maps.GoogleMaps != "" {
		lines = append(lines, "")
		if c.Maps.OpenStreetMaps != "" {
			lines = append(lines, styles.FaintText.Render("OSM    ")+styles.InfoText.Render(c.Maps.OpenStreetMaps))
		}
		if c.Maps.GoogleMaps != "" {
			lines = append(lines, styles.FaintText.Render("Google ")+styles.InfoText.Render(c.Maps.GoogleMaps))
		}
	}
	if c.Flags.PNG != "" {
		lines = append(lines, styles.FaintText.Render("Flag   ")+styles.InfoText.Render(c.Flags.PNG))
	}

	if m.detailErr != nil {
		lines = append(lines, "", styles.DangerText.Render(i18n.ErrorMessage(tag, m.detailErr)))
	}
	return strings.Join(lines, "\n")
}

// borderNames resolves neighbour codes to localized names where known.
func (m Model) borderNames(codes []string) string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if c, ok := m.lookup(code); ok {
			names = append(names, c.DisplayName(m.localeCode()))
			continue
		}
		names = append(names, code)
	}
	return joinSorted(names)
}

func currencyLabels(c restcountries.Country) []string {
	out := make([]string, 0, len(c.Currencies))
	for code, cur := range c.Currencies {
		label := fmt.Sprintf("%s (%s)", cur.Name, code)
		if cur.Symbol != "" {
			label = fmt.Sprintf("%s (%s, %s)", cur.Name, code, cur.Symbol)
		}
		out = append(out, label)
	}
	return out
}
