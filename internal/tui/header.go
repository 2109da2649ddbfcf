package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pb "github.com/hazzzi/maenggu-run/proto"
)

func renderHeader(state *pb.SaveState, st *pb.DaemonStatus, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorOrange).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Maenggu")

	left := fmt.Sprintf(" %s %s", dot, name)
	if st != nil && st.Version != "" {
		left += "  " + hintStyle.Render(st.Version)
	}

	right := snackBadgeStyle.Render(snackLabel(state)) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func snackLabel(state *pb.SaveState) string {
	if state == nil {
		return "… snacks"
	}
	if state.Snacks == 1 {
		return "1 snack"
	}
	return fmt.Sprintf("%d snacks", state.Snacks)
}
