package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/restcountries"
)

// renderStats renders collection totals, extremes and the per-region
// distribution as bars.
func (m Model) renderStats(height int) string {
	tag := m.tag()
	if m.store == nil || len(m.snapshot.Countries) == 0 {
		if m.snapshot.Loading {
			return m.renderEmpty(i18n.T(tag, i18n.UILoading), height)
		}
		return m.renderEmpty(i18n.T(tag, i18n.UIEmpty), height)
	}

	stats := m.store.Statistics()
	styles := m.styles()
	label := func(key string) string {
		return styles.MutedText.Width(22).Render(i18n.T(tag, key))
	}
	named := func(c *restcountries.Country, value string) string {
		if c == nil {
			return styles.FaintText.Render("-")
		}
		return styles.Text.Render(c.DisplayName(m.localeCode())) + styles.FaintText.Render(" ("+value+")")
	}

	average := "-"
	if stats.HasAverage {
		average = formatInt(tag, int64(stats.AveragePopulation))
	}

	var left []string
	left = append(left,
		label(i18n.UICount)+styles.Text.Render(fmt.Sprintf("%d", stats.TotalCountries)),
		label(i18n.UITotal)+styles.Text.Render(formatInt(tag, stats.TotalPopulation)),
		label(i18n.UIAverage)+styles.Text.Render(average),
		"",
	)
	if c := stats.Largest; c != nil {
		left = append(left, label(i18n.UILargest)+named(c, formatArea(tag, c.Area)+" km²"))
	}
	if c := stats.Smallest; c != nil {
		left = append(left, label(i18n.UISmallest)+named(c, formatArea(tag, c.Area)+" km²"))
	}
	if c := stats.MostPopulated; c != nil {
		left = append(left, label(i18n.UIMostPopulated)+named(c, formatCompact(float64(c.Population))))
	}
	if c := stats.LeastPopulated; c != nil {
		left = append(left, label(i18n.UILeastPopulated)+named(c, formatCompact(float64(c.Population))))
	}

	regions := make([]string, 0, len(stats.RegionDistribution))
	peak := 0
	for region, n := range stats.RegionDistribution {
		regions = append(regions, region)
		peak = max(peak, n)
	}
	sort.Slice(regions, func(i, j int) bool {
		a, b := stats.RegionDistribution[regions[i]], stats.RegionDistribution[regions[j]]
		if a != b {
			return a > b
		}
		return regions[i] < regions[j]
	})

	barWidth := max(m.width/2-34, 10)
	right := []string{styles.AccentText.Bold(true).Render(i18n.T(tag, i18n.UIByRegion)), ""}
	for _, region := range regions {
		n := stats.RegionDistribution[region]
		filled := 0
		if peak > 0 {
			filled = max(n*barWidth/peak, 1)
		}
		right = append(right,
			styles.RegionStyle(region).Width(11).Render(region)+
				styles.RegionStyle(region).Render(strings.Repeat("█", filled))+
				styles.FaintText.Render(fmt.Sprintf(" %d · %s", n, formatCompact(float64(stats.PopulationByRegion[region])))))
	}

	half := max(m.width/2-2, 20)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(strings.Join(left, "\n")),
		lipgloss.NewStyle().Width(half).Render(strings.Join(right, "\n")),
	)
	return m.renderTitledBox(i18n.T(tag, i18n.UIStatistics), body, m.width, height, true)
}

// renderDiagnostics shows cache, in-flight and metric counters.
func (m Model) renderDiagnostics(height int) string {
	tag := m.tag()
	styles := m.styles()
	row := func(name, value string) string {
		return styles.MutedText.Width(24).Render(name) + styles.Text.Render(value)
	}

	var lines []string
	if m.client != nil {
		cached := m.client.CacheStats()
		inflight := m.client.InFlightStats()
		lines = append(lines,
			styles.AccentText.Bold(true).Render("Cache"),
			row("Entries", fmt.Sprintf("%d", cached.Size)),
			row("Keys", strings.Join(cached.Keys, ", ")),
			"",
			styles.AccentText.Bold(true).Render("Requests"),
			row("Pending", fmt.Sprintf("%d", inflight.Pending)),
			row("Keys", strings.Join(inflight.Keys, ", ")),
			"",
		)
	}
	if m.metrics != nil {
		t := m.metrics.Totals()
		lines = append(lines,
			styles.AccentText.Bold(true).Render("Metrics"),
			row("Cache hits / misses", fmt.Sprintf("%.0f / %.0f (%.0f%%)", t.CacheHits, t.CacheMisses, t.HitRatio()*100)),
			row("Evictions", fmt.Sprintf("%.0f", t.CacheEvictions)),
			row("Requests settled", fmt.Sprintf("%.0f", t.Requests)),
			row("Retries", fmt.Sprintf("%.0f", t.Retries)),
			row("Superseded", fmt.Sprintf("%.0f", t.Superseded)),
			row("Refreshes", fmt.Sprintf("%.0f", t.Refreshes)),
			"",
		)
	}
	lines = append(lines,
		styles.AccentText.Bold(true).Render("Store"),
		row("Consecutive failures", fmt.Sprintf("%d", m.snapshot.ConsecutiveFailures)),
	)
	if err := m.snapshot.LastError; err != nil {
		lines = append(lines, row("Last error", err.Error()))
	}
	if len(m.logLines) > 0 {
		lines = append(lines, "", styles.AccentText.Bold(true).Render("Recent log"))
		for _, l := range m.logLines {
			lines = append(lines, m.logStyle(l.Level).Render(truncate(l.Text, max(m.width-4, 10))))
		}
	}
	return m.renderTitledBox(i18n.T(tag, i18n.UIDiagnostics), strings.Join(lines, "\n"), m.width, height, true)
}

func (m Model) logStyle(level slog.Level) lipgloss.Style {
	styles := m.styles()
	switch {
	case level >= slog.LevelError:
		return styles.DangerText
	case level >= slog.LevelWarn:
		return styles.WarningText
	case level < slog.LevelInfo:
		return styles.FaintText
	default:
		return styles.MutedText
	}
}
