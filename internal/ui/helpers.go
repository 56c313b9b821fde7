package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/i18n"
)

// humanizeDuration renders an age such as "12s", "3m", "2h 3m" or "1d".
func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// truncate shortens value to limit display cells, ending with an ellipsis.
func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= limit {
		return value
	}
	runes := []rune(value)
	if limit == 1 {
		return "…"
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// formatInt groups digits the way tag expects ("1.234.567" for Spanish).
func formatInt(tag language.Tag, n int64) string {
	return i18n.Printer(tag).Sprintf("%d", n)
}

// formatArea renders square kilometres with locale grouping and no decimals.
func formatArea(tag language.Tag, area float64) string {
	return i18n.Printer(tag).Sprintf("%.0f", area)
}

// formatCompact renders large counts as 1.2K, 3.4M or 1.1B.
func formatCompact(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

// joinSorted joins values alphabetically, or returns "-" when empty.
func joinSorted(values []string) string {
	filtered := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return "-"
	}
	sort.Strings(filtered)
	return strings.Join(filtered, ", ")
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
