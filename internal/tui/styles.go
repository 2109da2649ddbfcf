package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)
)

// Pet panel styles.
var (
	snackBadgeStyle = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	petIdleStyle    = lipgloss.NewStyle().Foreground(colorOrange)
	petHappyStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	petHungryStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	petSummonStyle  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

	statLabelStyle = lipgloss.NewStyle().
			Width(16).
			Foreground(colorDim)

	statValueStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// Event log styles.
var (
	eventTimeStyle   = lipgloss.NewStyle().Foreground(colorDim)
	eventSnackStyle  = lipgloss.NewStyle().Foreground(colorOrange)
	eventSummonStyle = lipgloss.NewStyle().Foreground(colorCyan)
	eventBoundsStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)
