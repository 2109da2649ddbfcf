package tray

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/getlantern/systray"

	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/report"
)

var (
	state   PetState
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	onStart func()
	onExit  func()

	snacksItem    *systray.MenuItem
	portItem      *systray.MenuItem
	summonItem    *systray.MenuItem
	statsItem     *systray.MenuItem
	statLines     [4]*systray.MenuItem
	bugReportItem *systray.MenuItem
	quitItem      *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (launch the server here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s PetState, l *slog.Logger, onStartFn, onExitFn func()) {
	state = s
	if l != nil {
		logger = l.With("component", "tray")
	}
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTitle("")
	systray.SetTooltip(formatTooltip(0))

	header := systray.AddMenuItem("Maenggu Run", "")
	header.Disable()

	snacksItem = systray.AddMenuItem(formatSnacks(0), "")
	snacksItem.Disable()

	portItem = systray.AddMenuItem("Starting...", "")
	portItem.Disable()

	systray.AddSeparator()

	summonItem = systray.AddMenuItem("Summon Maenggu", "Bring Maenggu back on screen")
	statsItem = systray.AddMenuItem("Stats", "Lifetime statistics")
	for i := range statLines {
		statLines[i] = statsItem.AddSubMenuItem("", "")
		statLines[i].Disable()
	}
	bugReportItem = systray.AddMenuItem("Copy Bug Report", "Copy diagnostics to the clipboard")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Shut down Maenggu")

	if onStart != nil {
		onStart()
	}

	if state != nil {
		portItem.SetTitle(fmt.Sprintf("Running on port: %d", state.Port()))
		refresh(state.Snapshot())
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-summonItem.ClickedCh:
			if state != nil {
				state.Summon()
			}

		case <-statsItem.ClickedCh:
			if state != nil {
				refresh(state.Snapshot())
			}

		case <-bugReportItem.ClickedCh:
			copyBugReport()

		case <-quitItem.ClickedCh:
			if state != nil {
				state.RequestShutdown()
			}
		}
	}
}

func copyBugReport() {
	if state == nil {
		return
	}
	text := state.Report()
	if err := report.Copy(text); err != nil {
		logger.Warn("failed to copy bug report", "error", err)
		return
	}
	logger.Info("bug report copied to clipboard", "bytes", len(text))
}

// Update refreshes the snack counter, stats lines and tooltip.
func Update(st models.SaveState) {
	if snacksItem == nil {
		return
	}
	refresh(st)
}

func refresh(st models.SaveState) {
	snacksItem.SetTitle(formatSnacks(st.Snacks))
	for i, line := range formatStats(st.Stats) {
		statLines[i].SetTitle(line)
	}
	systray.SetTooltip(formatTooltip(st.Snacks))
}

func formatSnacks(n uint32) string {
	if n == 1 {
		return "1 snack"
	}
	return fmt.Sprintf("%d snacks", n)
}

func formatTooltip(snacks uint32) string {
	return "Maenggu Run: " + formatSnacks(snacks)
}

func formatStats(s models.SaveStats) [4]string {
	return [4]string{
		fmt.Sprintf("Total Clicks: %d", s.TotalClicks),
		fmt.Sprintf("Total Feedings: %d", s.TotalFeedings),
		fmt.Sprintf("Peak Snacks: %d", s.PeakSnacks),
		"Session Playtime: " + formatPlaytime(s.SessionPlaytime),
	}
}

func formatPlaytime(seconds uint32) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
