package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/model"
)

const (
	minContentWidth = 40
	maxContentWidth = 100
	// rows used by the header, tab bar and footer around the history list
	historyChrome = 16
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(cli.SubtleColor)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(cli.InfoColor).Underline(true)
	dialogStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cli.ExpenseColor).Padding(0, 2)
	cursorStyle    = lipgloss.NewStyle().Foreground(cli.PrimaryColor).Bold(true)
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.contentWidth()
	var body string
	if m.form != nil {
		body = m.form.View(width)
	} else {
		body = m.renderTab(width)
	}

	sections := []string{m.renderHeader(), "", body}

	if m.pendingID != "" {
		sections = append(sections, "", dialogStyle.Render(m.renderer.Text().ConfirmDelete))
	}
	if warning := m.ctrl.Warning(); warning != nil {
		sections = append(sections, "", cli.FormatWarning(warning.Error()))
	}
	if m.status != "" {
		style := cli.IncomeStyle
		if m.statusError {
			style = cli.ExpenseStyle
		}
		sections = append(sections, style.Render(m.status))
	}

	sections = append(sections, "", m.renderTabBar())
	if m.config.ShowHelp {
		if m.form != nil {
			sections = append(sections, m.help.View(formKeys(m.keymap)))
		} else {
			sections = append(sections, m.help.View(m.keymap))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) contentWidth() int {
	w := m.width - 6
	if w < minContentWidth {
		w = minContentWidth
	}
	if w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

func (m Model) renderHeader() string {
	title := cli.FormatTitle(m.renderer.Text().AppName)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.renderer.Totals(m.ctrl.Totals()))
}

func (m Model) renderTabBar() string {
	text := m.renderer.Text()
	labels := map[model.Tab]string{
		model.TabDashboard: text.TabDashboard,
		model.TabHistory:   text.TabHistory,
		model.TabInsights:  text.TabInsights,
	}

	active := m.ctrl.ActiveTab()
	tabs := make([]string, 0, len(labels))
	for i, tab := range model.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, labels[tab])
		if tab == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTab(width int) string {
	switch m.ctrl.ActiveTab() {
	case model.TabHistory:
		return m.renderHistory()
	case model.TabInsights:
		return m.renderInsights(width)
	default:
		return m.renderDashboard(width)
	}
}

func (m Model) renderDashboard(width int) string {
	barWidth := width / 2
	chart := m.renderer.WeeklyChart(m.ctrl.DailyExpenseSeries(m.ctrl.Now()), barWidth)
	return lipgloss.JoinVertical(lipgloss.Left, chart, "", m.renderBreakdown(barWidth))
}

// renderBreakdown draws one progress bar per category, scaled to the
// largest category and filled with the category color.
func (m Model) renderBreakdown(barWidth int) string {
	text := m.renderer.Text()
	entries := m.ctrl.CategoryBreakdown()

	lines := []string{cli.BoldStyle.Render(text.Categories)}
	if len(entries) == 0 {
		lines = append(lines, cli.SubtleStyle.Render(text.NoData))
		return strings.Join(lines, "\n")
	}

	var highest float64
	nameWidth := 0
	for _, e := range entries {
		if e.Total > highest {
			highest = e.Total
		}
		if w := lipgloss.Width(e.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for _, e := range entries {
		bar := progress.New(
			progress.WithSolidFill(e.Color),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
		percent := 0.0
		if highest > 0 {
			percent = e.Total / highest
		}
		name := e.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(e.Name))
		lines = append(lines, fmt.Sprintf("%s %s %s", name, bar.ViewAs(percent), m.renderer.Formatter().Amount(e.Total)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHistory() string {
	text := m.renderer.Text()
	transactions := m.ctrl.Transactions()

	lines := []string{cli.BoldStyle.Render(text.History)}
	if len(transactions) == 0 {
		lines = append(lines, cli.SubtleStyle.Render(text.Empty))
		return strings.Join(lines, "\n")
	}

	visible := m.height - historyChrome
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(transactions) {
		end = len(transactions)
	}

	for i := start; i < end; i++ {
		t := transactions[i]
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("› ")
		}
		lines = append(lines, prefix+m.renderer.TransactionLine(t, cli.ResolveCategory(m.ctrl.LookupCategory, t)))
	}
	if end < len(transactions) {
		lines = append(lines, cli.SubtleStyle.Render(fmt.Sprintf("  … %d", len(transactions)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderInsights(width int) string {
	text := m.renderer.Text()
	lines := []string{cli.BoldStyle.Render(cli.RobotIcon + " " + text.Insights), ""}

	advice, _ := m.ctrl.Advice()
	switch {
	case m.adviceLoading():
		lines = append(lines, m.spinner.View()+" "+cli.SubtleStyle.Render(text.Thinking))
	case advice == "":
		lines = append(lines,
			lipgloss.NewStyle().Italic(true).Width(width).Render(app.AdvicePromptText),
			"",
			cli.PromptStyle.Render("⏎ "+text.GetAdvice),
		)
	default:
		lines = append(lines, lipgloss.NewStyle().Italic(true).Width(width).Render(advice))
	}
	return strings.Join(lines, "\n")
}
