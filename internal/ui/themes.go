package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color theme for the panel
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
}

// buildTheme takes light/dark pairs in field order
func buildTheme(name string, colors ...[2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   adaptive(colors[0]),
		Secondary: adaptive(colors[1]),
		Accent:    adaptive(colors[2]),
		Success:   adaptive(colors[3]),
		Warning:   adaptive(colors[4]),
		Error:     adaptive(colors[5]),
		Border:    adaptive(colors[6]),
		Muted:     adaptive(colors[7]),
		Selected:  adaptive(colors[8]),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#DBEAFE", "#1E3A8A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"})
)

var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetThemeByName sets the theme by name and reports whether it exists
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		currentTheme = DefaultTheme
	case "high-contrast":
		currentTheme = HighContrastTheme
	case "minimal":
		currentTheme = MinimalTheme
	default:
		return false
	}
	return true
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles are the panel styles of one theme
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Row      lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Chart    lipgloss.Style
}

// GetStyles builds the styles of the current theme. With NO_COLOR set every
// style is plain.
func GetStyles() *Styles {
	if IsColorDisabled() {
		plain := lipgloss.NewStyle()
		return &Styles{
			Theme: currentTheme, Title: plain.Bold(true), Row: plain, Label: plain, Value: plain,
			Focused: plain.Reverse(true), Disabled: plain, Muted: plain, Success: plain, Error: plain,
			Chart: plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		}
	}

	theme := currentTheme
	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Row: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Value: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Focused: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Chart: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
