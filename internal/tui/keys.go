package tui

import "github.com/charmbracelet/bubbles/key"

// WatchKeys are active while no overlay is shown.
type WatchKeys struct {
	Quit    key.Binding
	Help    key.Binding
	Add     key.Binding
	Spend   key.Binding
	Summon  key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
}

var watchKeys = WatchKeys{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "ctrl+q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "ctrl+h"),
		key.WithHelp("?", "help"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "+"),
		key.WithHelp("a", "add snack"),
	),
	Spend: key.NewBinding(
		key.WithKeys("s", "-"),
		key.WithHelp("s", "feed"),
	),
	Summon: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "summon"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "scroll"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "scroll"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Close key.Binding
}

var overlayKeys = OverlayKeys{
	Close: key.NewBinding(
		key.WithKeys("esc", "?", "ctrl+h", "q"),
		key.WithHelp("Esc", "close"),
	),
}
