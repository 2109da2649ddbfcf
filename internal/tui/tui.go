// Package tui implements the live "maenggu watch" view.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	pb "github.com/hazzzi/maenggu-run/proto"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	if r == nil {
		return
	}
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run shows the watch view until the user quits or the daemon goes away.
func Run(client pb.PetServiceClient) error {
	ref := &programRef{}
	model := NewModel(client, ref)

	p := tea.NewProgram(model, tea.WithAltScreen())
	ref.Set(p)
	defer ref.Clear()

	_, err := p.Run()
	return err
}
