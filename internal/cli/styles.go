// Package cli renders finpro's terminal output: styled messages, tables,
// the weekly chart and interactive prompts.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#6366f1") // indigo
	IncomeColor  = lipgloss.Color("#34d399") // emerald
	ExpenseColor = lipgloss.Color("#fb7185") // rose
	WarningColor = lipgloss.Color("#fbbf24") // amber
	InfoColor    = lipgloss.Color("#a5b4fc")
	SubtleColor  = lipgloss.Color("#64748b") // slate
	// BarColor fills the chart bars of days that are not highlighted.
	BarColor   = lipgloss.Color("#334155")
	frameColor = lipgloss.Color("#1e293b")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles. Income and expense styles double as success and error.
var (
	TitleStyle    = fg(PrimaryColor).Bold(true).MarginBottom(1)
	SubtitleStyle = fg(SubtleColor)
	SubtleStyle   = fg(SubtleColor)
	IncomeStyle   = fg(IncomeColor)
	ExpenseStyle  = fg(ExpenseColor)
	WarningStyle  = fg(WarningColor)
	InfoStyle     = fg(InfoColor)
	PromptStyle   = fg(PrimaryColor).Bold(true)
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	BalanceStyle  = lipgloss.NewStyle().Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frameColor).
			Padding(1, 2)
)

const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "👛"
	RobotIcon   = "🤖"
	IncomeIcon  = "↗"
	ExpenseIcon = "↘"
)

func FormatSuccess(message string) string { return IncomeStyle.Render(SuccessIcon + " " + message) }
func FormatError(message string) string   { return ExpenseStyle.Render(ErrorIcon + " " + message) }
func FormatWarning(message string) string { return WarningStyle.Render(WarningIcon + " " + message) }
func FormatInfo(message string) string    { return InfoStyle.Render(InfoIcon + " " + message) }

// FormatTitle prefixes title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt renders the lead-in of an interactive question.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}

// ColorStyle returns a foreground style for a category hex color.
func ColorStyle(hex string) lipgloss.Style {
	return fg(lipgloss.Color(hex))
}
