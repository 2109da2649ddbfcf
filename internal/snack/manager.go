// Package snack owns the in-memory save state and serializes every
// read-modify-persist cycle on it.
package snack

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/store"
	"github.com/hazzzi/maenggu-run/internal/telemetry"
)

// DefaultAmount is used when a command omits the amount.
const DefaultAmount uint32 = 1

// AmountOrDefault resolves an optional command amount.
func AmountOrDefault(amount *uint32) uint32 {
	if amount == nil {
		return DefaultAmount
	}
	return *amount
}

// Persister writes and reads save snapshots.
type Persister interface {
	Load() (models.SaveState, error)
	Save(models.SaveState) error
}

// Notifier receives the new snack total after every successful change.
// It is called with the manager lock held and must not block or call back
// into the Manager.
type Notifier interface {
	SnackUpdated(total uint32)
}

// Manager is the single owner of the game state.
type Manager struct {
	mu    sync.Mutex
	state models.SaveState

	persister Persister
	notifier  Notifier
	telemetry telemetry.Client
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier sets the change notification sink.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTelemetry sets the telemetry client for persistence failures.
func WithTelemetry(c telemetry.Client) Option {
	return func(m *Manager) { m.telemetry = c }
}

// NewManager creates a manager holding the default state. Call Load to
// pick up the persisted document.
func NewManager(p Persister, opts ...Option) *Manager {
	m := &Manager{
		state:     models.NewSaveState(),
		persister: p,
		telemetry: telemetry.Nop{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "snack")
	return m
}

// Load replaces the in-memory state with the persisted document, or with
// the default state when the document is missing, unreadable or invalid.
func (m *Manager) Load() models.SaveState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

// Reload adopts a save file that was edited outside the daemon and sends a
// change notification. If the file cannot be used the current state is kept,
// nothing is notified and the load error is returned.
func (m *Manager) Reload() (models.SaveState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.persister.Load()
	if err != nil {
		m.logger.Warn("save file changed but unusable, keeping current state", "error", err)
		m.telemetry.Capture(telemetry.EventLoadFailed, map[string]any{"error": err.Error(), "op": "reload"})
		return m.state, err
	}
	m.state = state
	m.notifyLocked()
	return m.state, nil
}

func (m *Manager) loadLocked() models.SaveState {
	state, err := m.persister.Load()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.logger.Warn("save file unusable, starting from defaults", "error", err)
			m.telemetry.Capture(telemetry.EventLoadFailed, map[string]any{"error": err.Error()})
		}
		state = models.NewSaveState()
	}
	m.state = state
	return m.state
}

// Add increases the snack total by amount, counts a click and raises the
// peak if needed. The state is persisted before the new total is returned.
func (m *Manager) Add(amount uint32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Snacks = addSaturating(m.state.Snacks, amount)
	m.state.Stats.TotalClicks = addSaturating(m.state.Stats.TotalClicks, 1)
	m.state.Stats.PeakSnacks = max(m.state.Stats.PeakSnacks, m.state.Snacks)

	m.persistLocked("add")
	m.notifyLocked()
	return m.state.Snacks
}

// Spend removes amount snacks if that many are available. It returns false
// and changes nothing otherwise.
func (m *Manager) Spend(amount uint32) bool {
	ok, _ := m.SpendTotal(amount)
	return ok
}

// SpendTotal is Spend that also returns the snack total observed in the
// same critical section, after the spend when it succeeded.
func (m *Manager) SpendTotal(amount uint32) (bool, uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Snacks < amount {
		return false, m.state.Snacks
	}

	m.state.Snacks -= amount
	m.state.Stats.TotalFeedings = addSaturating(m.state.Stats.TotalFeedings, 1)

	m.persistLocked("spend")
	m.notifyLocked()
	return true, m.state.Snacks
}

// RecordPlaytime adds seconds to the session playtime counter and persists.
func (m *Manager) RecordPlaytime(seconds uint32) {
	if seconds == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Stats.SessionPlaytime = addSaturating(m.state.Stats.SessionPlaytime, seconds)
	m.persistLocked("playtime")
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() models.SaveState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// persistLocked writes the state. Failures are logged and reported but never
// returned: the in-memory state stays authoritative.
func (m *Manager) persistLocked(op string) {
	if err := m.persister.Save(m.state); err != nil {
		m.logger.Error("failed to persist save state", "op", op, "error", err)
		m.telemetry.Capture(telemetry.EventSaveFailed, map[string]any{"op": op, "error": err.Error()})
	}
}

func (m *Manager) notifyLocked() {
	if m.notifier != nil {
		m.notifier.SnackUpdated(m.state.Snacks)
	}
}

func addSaturating(a, b uint32) uint32 {
	if b > math.MaxUint32-a {
		return math.MaxUint32
	}
	return a + b
}
