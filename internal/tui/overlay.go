package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	overlayNone = iota
	overlayHelp
)

// renderOverlay draws box centered over a dimmed copy of base.
func renderOverlay(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(ansi.Strip(row))
	}

	boxRows := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	top := max(1, (height-len(boxRows))/2)
	left := max(1, (width-boxWidth)/2)

	for i, line := range boxRows {
		y := top + i
		if y >= len(rows) {
			break
		}
		row := rows[y]
		prefix := ansi.Truncate(row, left, "")
		if pad := left - lipgloss.Width(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		suffix := ""
		if end := left + lipgloss.Width(line); end < lipgloss.Width(row) {
			suffix = ansi.Cut(row, end, lipgloss.Width(row))
		}
		rows[y] = prefix + ansi.ResetStyle + line + ansi.ResetStyle + suffix
	}

	return strings.Join(rows, "\n")
}
