// Package cli holds the styled terminal output of gainhost.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#A40000")
	accentColor  = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	okColor      = lipgloss.Color("#00AA00")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	OKStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(okColor)

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)
)

// Out is where the Print helpers write.
var Out io.Writer = os.Stdout

// PrintTitle prints a section title
func PrintTitle(title string) {
	fmt.Fprintln(Out, TitleStyle.Render(title))
}

// PrintKV prints an aligned key-value pair
func PrintKV(key string, value any) {
	fmt.Fprintf(Out, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintResult prints a pass/fail line
func PrintResult(ok bool, message string) {
	mark := OKStyle.Render("✓")
	if !ok {
		mark = WarnStyle.Render("✗")
	}
	fmt.Fprintf(Out, "%s %s\n", mark, message)
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Fprintln(Out, TitleStyle.Render("gainhost"))
	PrintKV("Version", version)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
