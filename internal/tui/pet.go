package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	pb "github.com/hazzzi/maenggu-run/proto"
)

type mood int

const (
	moodIdle mood = iota
	moodHappy
	moodEating
	moodHungry
	moodSummoned
)

const moodDuration = 1500 * time.Millisecond

var sprites = map[mood][]string{
	moodIdle:     {`  /\_/\  `, ` ( o.o ) `, `  > ^ <  `},
	moodHappy:    {`  /\_/\  `, ` ( ^.^ ) `, `  > ♥ <  `},
	moodEating:   {`  /\_/\  `, ` ( ^o^ ) `, `  nom!   `},
	moodHungry:   {`  /\_/\  `, ` ( ;_; ) `, `  ...    `},
	moodSummoned: {`  /\_/\ !`, ` ( O.O ) `, `  > ^ <  `},
}

func (md mood) style() lipgloss.Style {
	switch md {
	case moodHappy, moodEating:
		return petHappyStyle
	case moodHungry:
		return petHungryStyle
	case moodSummoned:
		return petSummonStyle
	default:
		return petIdleStyle
	}
}

// renderPet renders the sprite, the stats and the overlay rectangle.
func renderPet(md mood, state *pb.SaveState, bounds *pb.Rect) string {
	lines := make([]string, 0, 12)
	for _, row := range sprites[md] {
		lines = append(lines, md.style().Render(row))
	}
	lines = append(lines, "")

	if state == nil {
		lines = append(lines, hintStyle.Render("Loading…"))
		return strings.Join(lines, "\n")
	}

	playtime := (time.Duration(state.Stats.SessionPlaytime) * time.Second).String()
	lines = append(lines,
		statLine("Snacks", snackBadgeStyle.Render(snackLabel(state))),
		statLine("Total clicks", statValueStyle.Render(itoa(state.Stats.TotalClicks))),
		statLine("Feedings", statValueStyle.Render(itoa(state.Stats.TotalFeedings))),
		statLine("Peak snacks", statValueStyle.Render(itoa(state.Stats.PeakSnacks))),
		statLine("Playtime", statValueStyle.Render(playtime)),
		statLine("Overlay", statValueStyle.Render(formatRect(bounds))),
	)
	return strings.Join(lines, "\n")
}

func statLine(label, value string) string {
	return statLabelStyle.Render(label) + value
}

func itoa(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
