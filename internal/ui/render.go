package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/i18n"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar or search input
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent(max(m.height-chromeHeight, 3)))
	b.WriteString("\n")

	b.WriteString(m.renderNotices())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent(height int) string {
	if m.showDetail {
		return m.renderDetail(height)
	}
	switch m.currentView {
	case ViewList:
		return m.renderList(height)
	case ViewFavorites:
		return m.renderFavorites(height)
	case ViewComparison:
		return m.renderComparison(height)
	case ViewStats:
		return m.renderStats(height)
	case ViewDiagnostics:
		return m.renderDiagnostics(height)
	default:
		return ""
	}
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	palette := m.palette()
	styles := m.styles().WithBackground(palette.Surface)
	bg := NewBgStyle(palette.Surface)
	tag := m.tag()

	parts := []string{
		bg.Render("atlas", styles.Logo),
		bg.Render(i18n.T(tag, i18n.UITitle), styles.Text.Bold(true)),
	}

	if total := len(m.snapshot.Countries); total > 0 {
		parts = append(parts,
			bg.Render(i18n.T(tag, i18n.UICount)+":", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", len(m.items), total), styles.Text))
	}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, bg.Render("● "+i18n.T(tag, i18n.UILoading), styles.WarningText.Bold(true)))
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● "+i18n.T(tag, i18n.UIOffline), styles.DangerText))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render("● "+i18n.ErrorMessage(tag, m.snapshot.LastError), styles.DangerText))
	case !m.snapshot.LastUpdated.IsZero():
		age := humanizeDuration(time.Since(m.snapshot.LastUpdated))
		parts = append(parts, bg.Render("● "+i18n.T(tag, i18n.UIUpdated, age), styles.SuccessText))
	}

	if m.width >= LayoutCompactWidth {
		mode := "dark"
		if m.theme != nil {
			mode = string(m.theme.Mode())
		}
		parts = append(parts, bg.Render(strings.ToUpper(m.localeCode())+" · "+mode, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints, or the search input while typing.
func (m Model) renderCommandBar() string {
	palette := m.palette()
	styles := m.styles().WithBackground(palette.Background)
	bg := NewBgStyle(palette.Background)

	if m.searching {
		return bg.FillLine(" "+m.search.View(), m.width)
	}

	hints := make([]string, 0, 8)
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		hints = append(hints,
			bg.Render("<"+help.Key+">", styles.AccentText)+bg.Space()+
				bg.Render(help.Desc, styles.MutedText))
	}
	line := bg.Join(hints, "  ")
	if lipgloss.Width(line) > m.width-2 && m.width > 0 {
		// Drop hints from the right until the bar fits.
		for len(hints) > 1 && lipgloss.Width(bg.Join(hints, "  ")) > m.width-2 {
			hints = hints[:len(hints)-1]
		}
		line = bg.Join(hints, "  ")
	}
	return bg.FillLine(" "+line, m.width)
}

// renderNotices shows the newest notification and how many are queued.
func (m Model) renderNotices() string {
	palette := m.palette()
	styles := m.styles().WithBackground(palette.Background)
	bg := NewBgStyle(palette.Background)

	if m.notices == nil {
		return bg.FillLine("", m.width)
	}
	items := m.notices.List()
	if len(items) == 0 {
		return bg.FillLine("", m.width)
	}
	latest := items[len(items)-1]
	line := bg.Render(latest.Message, styles.NoticeStyle(latest.Kind))
	if more := len(items) - 1; more > 0 {
		line += bg.Space() + bg.Render(fmt.Sprintf("(+%d)", more), styles.FaintText)
	}
	return bg.FillLine(" "+line, m.width)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	palette := m.palette()
	borderColorStr := palette.Border
	bgColorStr := palette.SurfaceAlt
	if focused {
		borderColorStr = palette.BorderFocus
		bgColorStr = palette.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// renderEmpty centers a muted message in the content area.
func (m Model) renderEmpty(message string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.styles().MutedText.Render(message))
}
