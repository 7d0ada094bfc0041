package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/finance-pro/internal/app"
)

// adviceMsg carries a finished advice request.
type adviceMsg struct {
	text string
}

// requestAdvice runs the advice request off the update loop.
func requestAdvice(ctx context.Context, ctrl *app.Controller) tea.Cmd {
	return func() tea.Msg {
		return adviceMsg{text: ctrl.RequestAdvice(ctx)}
	}
}
