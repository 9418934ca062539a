package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the bubbletea program for m and binds the waker to it.
func NewProgram(ctx context.Context, m *Model) *tea.Program {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	m.waker.Bind(p.Send)
	return p
}

// Run runs the program until the user quits or ctx is done. It returns the
// error that stopped the pump, if any.
func Run(ctx context.Context, m *Model) error {
	if _, err := NewProgram(ctx, m).Run(); err != nil {
		if m.Err() != nil {
			return m.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return m.Err()
}
