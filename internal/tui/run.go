package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
	"todo/internal/store"
)

// Run shows the interactive view until the user quits or ctx is done.
// st must already be mounted; the view follows it through a subscription.
func Run(ctx context.Context, st *store.Store, defaultColor service.Color, opts ...tea.ProgramOption) error {
	m := New(ctx, st, defaultColor)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	program := tea.NewProgram(m, opts...)

	unsubscribe := st.Subscribe(func(s store.State) {
		program.Send(stateMsg(s))
	})
	defer unsubscribe()

	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted
		return nil
	}
	return err
}
