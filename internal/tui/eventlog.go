package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	pb "github.com/hazzzi/maenggu-run/proto"
)

const maxLogLines = 200

// EventLog is a scrollable list of received events, newest at the bottom.
type EventLog struct {
	viewport viewport.Model
	lines    []string
	width    int
	follow   bool
}

// NewEventLog creates an empty log that follows new events.
func NewEventLog() *EventLog {
	return &EventLog{
		viewport: viewport.New(40, 10),
		follow:   true,
	}
}

// SetSize resizes the visible area.
func (l *EventLog) SetSize(width, height int) {
	l.width = width
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// Append records an event received at t.
func (l *EventLog) Append(t time.Time, ev *pb.Event) {
	l.AppendLine(eventTimeStyle.Render(t.Format("15:04:05")) + " " + describeEvent(ev))
}

// AppendLine records a preformatted line.
func (l *EventLog) AppendLine(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
	l.refresh()
}

// Len returns the number of retained lines.
func (l *EventLog) Len() int {
	return len(l.lines)
}

func (l *EventLog) ScrollUp() {
	l.viewport.ScrollUp(1)
	l.follow = l.viewport.AtBottom()
}

func (l *EventLog) ScrollDown() {
	l.viewport.ScrollDown(1)
	l.follow = l.viewport.AtBottom()
}

func (l *EventLog) View() string {
	if len(l.lines) == 0 {
		return hintStyle.Render("Waiting for events…")
	}
	return l.viewport.View()
}

func (l *EventLog) refresh() {
	rendered := make([]string, len(l.lines))
	for i, line := range l.lines {
		if l.width > 0 {
			line = ansi.Truncate(line, l.width, "…")
		}
		rendered[i] = line
	}
	l.viewport.SetContent(strings.Join(rendered, "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

func describeEvent(ev *pb.Event) string {
	if ev == nil {
		return ""
	}
	switch ev.Type {
	case "snack_update":
		return eventSnackStyle.Render(fmt.Sprintf("snacks → %d", ev.Snacks))
	case "summon":
		return eventSummonStyle.Render("summoned")
	case "bounds_update":
		if ev.Bounds == nil {
			return eventBoundsStyle.Render("overlay → none")
		}
		return eventBoundsStyle.Render(fmt.Sprintf("overlay → %s", formatRect(ev.Bounds)))
	default:
		return ev.Type
	}
}

func formatRect(r *pb.Rect) string {
	if r == nil {
		return "none"
	}
	return fmt.Sprintf("(%d, %d) %dx%d", r.X, r.Y, r.Width, r.Height)
}
