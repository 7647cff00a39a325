package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/commentary"
	"tally/internal/engine"
)

// RunDesk opens the interactive desk: timer, thought log, receipt
// preview, publish.
func RunDesk(ctx context.Context, svc *engine.Service, owner string, cmt commentary.Commentator, out io.Writer) error {
	m := newDeskModel(ctx, svc, owner, commentary.WithFallback(cmt))
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
