package views

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha.
var Colours = struct {
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Sapphire lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Overlay1 lipgloss.Color
	Surface1 lipgloss.Color
	Surface0 lipgloss.Color
	Base     lipgloss.Color
}{
	Red:      lipgloss.Color("#f38ba8"),
	Peach:    lipgloss.Color("#fab387"),
	Yellow:   lipgloss.Color("#f9e2af"),
	Green:    lipgloss.Color("#a6e3a1"),
	Sapphire: lipgloss.Color("#74c7ec"),
	Blue:     lipgloss.Color("#89b4fa"),
	Lavender: lipgloss.Color("#b4befe"),
	Text:     lipgloss.Color("#cdd6f4"),
	Subtext0: lipgloss.Color("#a6adc8"),
	Overlay1: lipgloss.Color("#7f849c"),
	Surface1: lipgloss.Color("#45475a"),
	Surface0: lipgloss.Color("#313244"),
	Base:     lipgloss.Color("#1e1e2e"),
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Colours.Text).
			Background(Colours.Surface0).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(Colours.Overlay1).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(Colours.Overlay1)

	labelStyle = lipgloss.NewStyle().
			Foreground(Colours.Subtext0).
			Width(10)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(Colours.Yellow)

	offlineStyle = lipgloss.NewStyle().
			Foreground(Colours.Base).
			Background(Colours.Peach).
			Padding(0, 1)

	focusedStyle = lipgloss.NewStyle().
			Foreground(Colours.Blue).
			Bold(true)

	methodTypeStyle = lipgloss.NewStyle().
			Foreground(Colours.Sapphire)
)

func modalStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(56)
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    100 * time.Millisecond,
	}), spinner.WithStyle(lipgloss.NewStyle().Foreground(Colours.Yellow)))
}

// truncate shortens s to at most max cells, ending in "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
