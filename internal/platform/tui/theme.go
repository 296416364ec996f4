package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shroom-run/internal/core"
)

// Background identifies one of the scenery sets, selected by difficulty level.
type Background int

const (
	BackgroundMeadow Background = iota + 1 // bg1
	BackgroundForest                       // bg2
	BackgroundDusk                         // bg3
	BackgroundNight                        // bg4
)

// String returns the asset-style name of the background.
func (b Background) String() string {
	switch b {
	case BackgroundMeadow:
		return "bg1"
	case BackgroundForest:
		return "bg2"
	case BackgroundDusk:
		return "bg3"
	case BackgroundNight:
		return "bg4"
	default:
		return "bg?"
	}
}

// BackgroundFor maps a difficulty level to its scenery.
func BackgroundFor(level int) Background {
	switch {
	case level >= 10:
		return BackgroundNight
	case level >= 6:
		return BackgroundDusk
	case level >= 3:
		return BackgroundForest
	default:
		return BackgroundMeadow
	}
}

// Palette holds the cell colors and runes of one background.
type Palette struct {
	SkyRune    rune
	Sky        core.Color
	HillRune   rune
	Hill       core.Color
	GroundRune rune
	Ground     core.Color
	Dirt       core.Color
	Text       core.Color
}

var palettes = map[Background]Palette{
	BackgroundMeadow: {SkyRune: '~', Sky: core.ColorBrightCyan, HillRune: '^', Hill: core.ColorGreen,
		GroundRune: '▀', Ground: core.ColorBrightGreen, Dirt: core.ColorBrown, Text: core.ColorBrightWhite},
	BackgroundForest: {SkyRune: '~', Sky: core.ColorCyan, HillRune: '♣', Hill: core.ColorGreen,
		GroundRune: '▀', Ground: core.ColorGreen, Dirt: core.ColorBrown, Text: core.ColorBrightWhite},
	BackgroundDusk: {SkyRune: '-', Sky: core.ColorMagenta, HillRune: '^', Hill: core.ColorOrange,
		GroundRune: '▀', Ground: core.ColorYellow, Dirt: core.ColorBrown, Text: core.ColorBrightYellow},
	BackgroundNight: {SkyRune: '*', Sky: core.ColorBrightBlue, HillRune: '^', Hill: core.ColorBlue,
		GroundRune: '▀', Ground: core.ColorGray, Dirt: core.ColorGray, Text: core.ColorBrightCyan},
}

// PaletteFor returns the palette of a background, falling back to bg1.
func PaletteFor(b Background) Palette {
	if p, ok := palettes[b]; ok {
		return p
	}
	return palettes[BackgroundMeadow]
}

// Theme contains the lipgloss styles used outside the play field.
type Theme struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	MenuItemNormal lipgloss.Style
	MenuItemActive lipgloss.Style
	Help           lipgloss.Style
	Empty          lipgloss.Style
	Status         lipgloss.Style
	Error          lipgloss.Style
	Panel          lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Subtitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Help:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
