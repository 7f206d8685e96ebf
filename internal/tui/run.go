package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Run starts the interactive session and blocks until the user quits.
func Run(ctx context.Context, loader Loader, feeds []string) error {
	if len(feeds) == 0 {
		return errors.New("no feeds configured")
	}
	p := tea.NewProgram(NewModel(ctx, loader, feeds), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive session: %w", err)
	}
	return nil
}
