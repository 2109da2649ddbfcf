package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []key.Binding
}

var helpSections = []helpSection{
	{
		title: "Pet",
		keys:  []key.Binding{watchKeys.Add, watchKeys.Spend, watchKeys.Summon},
	},
	{
		title: "View",
		keys:  []key.Binding{watchKeys.Up, watchKeys.Refresh, watchKeys.Help, watchKeys.Quit},
	},
}

// renderHelp renders the help overlay content from the key bindings.
func renderHelp(width int) string {
	maxWidth := 44
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	sections := []string{overlayTitleStyle.Render("Keyboard Shortcuts")}
	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, b := range sec.keys {
			h := b.Help()
			keyCol := lipgloss.NewStyle().
				Width(10).
				Foreground(colorWhite).
				Bold(true).
				Render(h.Key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(h.Desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", overlayDimStyle.Render("Press Esc or ? to close"))

	return overlayStyle.Width(maxWidth).Render(strings.Join(sections, "\n"))
}
