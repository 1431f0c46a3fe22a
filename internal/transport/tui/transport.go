package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/helpbot/internal/service/chat"
)

// Transport runs the chat surface as a service. When the user quits the TUI,
// done() is called so the rest of the process can shut down.
type Transport struct {
	prog *tea.Program
	done context.CancelFunc
}

func NewTransport(ctx context.Context, svc *chat.Service, showSidebar bool, done context.CancelFunc) *Transport {
	model := NewModel(ctx, svc, showSidebar)
	return &Transport{
		prog: tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)),
		done: done,
	}
}

func (t *Transport) Start(ctx context.Context) error {
	defer t.done()
	if _, err := t.prog.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

func (t *Transport) Shutdown(ctx context.Context) error {
	t.prog.Quit()
	return nil
}
