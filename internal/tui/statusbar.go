package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + getKeyHints(m)

	var right string
	switch {
	case m.subscribed:
		right = lipgloss.NewStyle().Foreground(colorGreen).Render("Live") + " "
	case m.connected:
		right = lipgloss.NewStyle().Foreground(colorYellow).Render("Connecting") + " "
	default:
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("⚠ Disconnected") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay != overlayNone {
		return keyHint("Esc", "close")
	}
	return strings.Join([]string{
		keyHint("q", "quit"),
		keyHint("?", "help"),
		keyHint("a", "add"),
		keyHint("s", "feed"),
		keyHint("m", "summon"),
	}, "  ")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}
