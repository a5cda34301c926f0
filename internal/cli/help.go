package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(okColor).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter creates a help printer with Lipgloss styling for the
// selected command.
func StyledHelpPrinter(title string) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		var sb strings.Builder
		sb.WriteString(helpTitleStyle.Render(title))
		sb.WriteString("\n")
		if node.Help != "" {
			sb.WriteString(helpDescStyle.Render(node.Help))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name)
		if node != ctx.Model.Node {
			sb.WriteString(" " + node.Path())
		}
		sb.WriteString(" [flags]")
		for _, arg := range node.Positional {
			sb.WriteString(" " + arg.Summary())
		}
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			for _, c := range cmds {
				writeEntry(&sb, helpArgStyle.Render(c.Name), c.Help, "")
			}
		}

		if len(node.Positional) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range node.Positional {
				writeEntry(&sb, helpArgStyle.Render(arg.Summary()), arg.Help, "")
			}
		}

		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		writeEntry(&sb, helpFlagStyle.Render("-h, --help"), "Show context-sensitive help.", "")
		for _, group := range node.AllFlags(true) {
			for _, f := range group {
				if f.Name == "help" {
					continue
				}
				writeEntry(&sb, helpFlagStyle.Render(flagString(f)), f.Help, f.FormatPlaceHolder())
			}
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

func commands(node *kong.Node) []*kong.Node {
	var cmds []*kong.Node
	for _, c := range node.Children {
		if c.Type == kong.CommandNode && !c.Hidden {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

func flagString(f *kong.Flag) string {
	s := fmt.Sprintf("--%s", f.Name)
	if f.Short != 0 {
		s = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
	}
	if !f.IsBool() && f.PlaceHolder != "" {
		s += "=" + strings.ToUpper(f.PlaceHolder)
	}
	return s
}

func writeEntry(sb *strings.Builder, name, help, defaultVal string) {
	sb.WriteString("  ")
	sb.WriteString(name)
	if help != "" {
		sb.WriteString("  ")
		sb.WriteString(help)
	}
	if defaultVal != "" {
		sb.WriteString(" ")
		sb.WriteString(helpDefaultStyle.Render("(" + defaultVal + ")"))
	}
	sb.WriteString("\n")
}
