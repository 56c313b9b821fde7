package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/theme"
)

// Palette defines the colors for one appearance mode.
type Palette struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Content panels
	FocusBg    string // Focused panel

	// Table colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	RegionColors map[string]string
}

// PaletteFor returns the palette used for mode.
func PaletteFor(mode theme.Mode) Palette {
	if mode == theme.Light {
		return dayfoxPalette()
	}
	return nightfoxPalette()
}

// Styles returns Lipgloss styles for this palette.
func (p Palette) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Surface)).
			Foreground(lipgloss.Color(p.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.SelectionBg)).
			Foreground(lipgloss.Color(p.SelectionText)),

		regionColors: p.RegionColors,
		muted:        p.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for a palette.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	regionColors map[string]string
	muted        string
}

// RegionStyle returns the foreground style for a region name.
func (s Styles) RegionStyle(region string) lipgloss.Style {
	color := s.regionColors[region]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// NoticeStyle returns the text style for a notification kind.
func (s Styles) NoticeStyle(kind notify.Kind) lipgloss.Style {
	switch kind {
	case notify.Success:
		return s.SuccessText
	case notify.Error:
		return s.DangerText
	case notify.Warning:
		return s.WarningText
	default:
		return s.InfoText
	}
}

// WithBackground returns a copy of Styles whose text styles all carry bgColor
// instead of inheriting the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

func nightfoxPalette() Palette {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Palette{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#dfdfe0", // fg0

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		RegionColors: map[string]string{
			"Africa":    "#f4a261", // orange
			"Americas":  "#81b29a", // green
			"Asia":      "#c94f6d", // red
			"Europe":    "#719cd6", // blue
			"Oceania":   "#63cdcf", // cyan
			"Antarctic": "#9d79d6", // magenta
		},
	}
}

func dayfoxPalette() Palette {
	// Dayfox palette: https://github.com/EdenEast/nightfox.nvim
	return Palette{
		Name: "Dayfox",

		Background: "#e4dcd4", // bg0
		Surface:    "#f6f2ee", // bg1
		SurfaceAlt: "#dbd1dd", // bg2
		FocusBg:    "#d3c7bb", // bg3

		SelectionBg:   "#e7d2be", // sel0
		SelectionText: "#302b5d", // fg0

		Border:      "#aab0ad", // bg4
		BorderFocus: "#2848a9", // blue

		Text:    "#3d2b5a", // fg1
		Muted:   "#837a72", // comment
		Faint:   "#643f61", // fg3
		Accent:  "#2848a9", // blue
		Success: "#396847", // green
		Warning: "#ac5402", // yellow
		Danger:  "#a5222f", // red
		Info:    "#287980", // cyan

		RegionColors: map[string]string{
			"Africa":    "#955f61", // orange
			"Americas":  "#396847", // green
			"Asia":      "#a5222f", // red
			"Europe":    "#2848a9", // blue
			"Oceania":   "#287980", // cyan
			"Antarctic": "#6e33ce", // magenta
		},
	}
}
