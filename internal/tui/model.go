package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pb "github.com/hazzzi/maenggu-run/proto"
)

const (
	minWidth    = 60
	minHeight   = 16
	petPanelW   = 34
	chromeLines = 2 // header + status bar
)

var errDisconnected = errors.New("daemon disconnected")

// Model is the root Bubbletea model for the watch view.
type Model struct {
	client  pb.PetServiceClient
	program *programRef
	now     func() time.Time

	// Connection
	connected  bool
	subscribed bool

	// Daemon data
	state  *pb.SaveState
	status *pb.DaemonStatus
	bounds *pb.Rect

	// UI state
	mood          mood
	moodSeq       int
	activeOverlay int
	width         int
	height        int
	err           error

	log *EventLog

	streamCtx    context.Context
	streamCancel context.CancelFunc
}

// NewModel creates the initial watch model.
func NewModel(client pb.PetServiceClient, program *programRef) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		client:       client,
		program:      program,
		now:          time.Now,
		connected:    true,
		log:          NewEventLog(),
		streamCtx:    ctx,
		streamCancel: cancel,
	}
}

// Init loads the current state and opens the event stream.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadStateCmd(m.client),
		loadStatusCmd(m.client),
		loadBoundsCmd(m.client),
		subscribeCmd(m.streamCtx, m.client, m.program),
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	// ── Daemon data ────────────────────────────────────────────────
	case StateLoadedMsg:
		m.state = msg.State
		return m, nil

	case StatusLoadedMsg:
		m.status = msg.Status
		return m, nil

	case BoundsLoadedMsg:
		m.bounds = msg.Bounds
		return m, nil

	// ── Event stream ───────────────────────────────────────────────
	case SubscribedMsg:
		m.subscribed = true
		return m, nil

	case EventMsg:
		return m, m.applyEvent(msg.Event)

	case StreamEndedMsg:
		m.subscribed = false
		m.log.AppendLine(hintStyle.Render("event stream closed"))
		return m, nil

	case DaemonDisconnectedMsg:
		m.connected = false
		m.subscribed = false
		m.err = errDisconnected
		return m, m.doQuit()

	// ── Action results ─────────────────────────────────────────────
	case SnackAddedMsg:
		m.setSnacks(msg.Snacks)
		return m, m.setMood(moodHappy)

	case SnackSpentMsg:
		m.setSnacks(msg.Snacks)
		if !msg.Success {
			m.err = fmt.Errorf("not enough snacks")
			return m, tea.Batch(m.setMood(moodHungry), clearErrorAfter(3*time.Second))
		}
		return m, m.setMood(moodEating)

	case SummonedMsg:
		return m, nil

	case moodResetMsg:
		if msg.seq == m.moodSeq {
			m.mood = moodIdle
		}
		return m, nil

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// applyEvent folds a streamed event into the model.
func (m *Model) applyEvent(ev *pb.Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	m.log.Append(m.now(), ev)

	switch ev.Type {
	case "snack_update":
		m.setSnacks(ev.Snacks)
		// Stats moved too; refresh them.
		if m.client != nil {
			return loadStateCmd(m.client)
		}
	case "summon":
		return m.setMood(moodSummoned)
	case "bounds_update":
		m.bounds = ev.Bounds
	}
	return nil
}

func (m *Model) setSnacks(n uint32) {
	if m.state == nil {
		m.state = &pb.SaveState{}
	}
	m.state.Snacks = n
}

func (m *Model) setMood(md mood) tea.Cmd {
	m.mood = md
	m.moodSeq++
	return resetMoodAfter(moodDuration, m.moodSeq)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.activeOverlay != overlayNone {
		if key.Matches(msg, overlayKeys.Close) {
			m.activeOverlay = overlayNone
		}
		return nil
	}

	switch {
	case key.Matches(msg, watchKeys.Quit):
		return m.doQuit()
	case key.Matches(msg, watchKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	case key.Matches(msg, watchKeys.Up):
		m.log.ScrollUp()
		return nil
	case key.Matches(msg, watchKeys.Down):
		m.log.ScrollDown()
		return nil
	}

	if m.client == nil {
		return nil
	}
	switch {
	case key.Matches(msg, watchKeys.Add):
		return addSnackCmd(m.client)
	case key.Matches(msg, watchKeys.Spend):
		return spendSnackCmd(m.client)
	case key.Matches(msg, watchKeys.Summon):
		return summonCmd(m.client)
	case key.Matches(msg, watchKeys.Refresh):
		return tea.Batch(loadStateCmd(m.client), loadStatusCmd(m.client), loadBoundsCmd(m.client))
	}
	return nil
}

func (m *Model) doQuit() tea.Cmd {
	m.streamCancel()
	m.program.Clear()
	return tea.Quit
}

// bodyHeight is the space between header and status bar.
func (m *Model) bodyHeight() int {
	return max(0, m.height-chromeLines)
}

func (m *Model) updateDimensions() {
	// Panel borders take two columns and two rows.
	logWidth := max(10, m.width-petPanelW-4)
	logHeight := max(1, m.bodyHeight()-3)
	m.log.SetSize(logWidth, logHeight)
}

// View renders the watch screen.
func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					fmt.Sprintf("Need %dx%d, have %s", minWidth, minHeight,
						lipgloss.NewStyle().Bold(true).Render(sizeStr)),
				),
			))
	}

	header := renderHeader(m.state, m.status, m.width)

	bodyH := m.bodyHeight() - 2
	pet := panelStyle.
		Width(petPanelW - 2).
		Height(bodyH).
		Render(panelTitleStyle.Render("Maenggu") + "\n\n" + renderPet(m.mood, m.state, m.bounds))
	events := panelStyle.
		Width(m.width - petPanelW - 2).
		Height(bodyH).
		Render(panelTitleStyle.Render("Events") + "\n" + m.log.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, pet, events)

	status := renderStatusBar(&m, m.width)
	view := lipgloss.JoinVertical(lipgloss.Left, header, body, status)

	if m.activeOverlay == overlayHelp {
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}
