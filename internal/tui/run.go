package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/finance-pro/internal/app"
)

// Run shows the terminal UI until the user quits or ctx is canceled. The
// controller must already be loaded and should have been created with the
// same Host passed through WithHost.
func Run(ctx context.Context, ctrl *app.Controller, recorder *Recorder, opts ...Option) error {
	if ctrl == nil {
		return fmt.Errorf("controller is required")
	}

	var root tea.Model = New(ctx, ctrl, opts...)
	if recorder != nil && recorder.enabled {
		root = recordingModel{recorder: recorder, model: root.(Model)}
	}

	program := tea.NewProgram(
		root,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
