package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/gainplug/pkg/framework/editor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("#888888"))

	focusStyle = labelStyle.
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	fillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

const (
	minBarWidth = 10
	maxBarWidth = 60
)

// renderWindow renders the title, one line per slider and the status line
func renderWindow(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	width := min(max(m.Width-30, minBarWidth), maxBarWidth)
	for i, s := range m.Controls {
		b.WriteString(renderSlider(s, i == m.Focus, width))
		b.WriteString("\n")
	}

	if m.Status != nil {
		b.WriteString(statusStyle.Render(m.Status()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/→ ±0.5  pgup/pgdn ±6  home/end  0 reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderSlider renders a single slider as label, bar and value
func renderSlider(s editor.Slider, focused bool, width int) string {
	label := labelStyle.Render(s.Label)
	if focused {
		label = focusStyle.Render("> " + s.Label)
	}

	value := 0.0
	if s.Get != nil {
		value = s.Get()
	}
	filled := barFill(s, value, width)

	bar := fillStyle.Render(strings.Repeat("█", filled)) +
		trackStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s %s %s", label, bar, valueStyle.Render(fmt.Sprintf("%6.1f", value)))
}

// barFill returns how many of width cells represent value.
func barFill(s editor.Slider, value float64, width int) int {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	frac := (s.Clamp(value) - s.Min) / span
	return int(frac*float64(width) + 0.5)
}
