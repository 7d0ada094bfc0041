package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/finance-pro/internal/aggregate"
	"github.com/Veraticus/finance-pro/internal/locale"
	"github.com/Veraticus/finance-pro/internal/model"
)

// DefaultChartWidth is the bar width used when the terminal size is unknown.
const DefaultChartWidth = 30

const barGlyph = "█"

// CategoryLookup resolves a category name to its display attributes.
type CategoryLookup func(t model.TransactionType, name string) (model.Category, bool)

// Renderer turns application views into styled terminal text.
type Renderer struct {
	format *locale.Formatter
	text   Text
	loc    locale.Locale
}

// NewRenderer creates a renderer for the locale and currency suffix.
func NewRenderer(l locale.Locale, currency string) *Renderer {
	return &Renderer{
		format: locale.NewFormatter(l, currency),
		text:   TextFor(l),
		loc:    l,
	}
}

// Text returns the labels used by the renderer.
func (r *Renderer) Text() Text {
	return r.text
}

// Formatter returns the amount formatter.
func (r *Renderer) Formatter() *locale.Formatter {
	return r.format
}

// Balance renders the headline balance, in the expense color when negative.
func (r *Renderer) Balance(t model.Totals) string {
	style := BalanceStyle
	if t.Balance < 0 {
		style = style.Foreground(ExpenseColor)
	}
	return SubtleStyle.Render(r.text.Balance) + "\n" + style.Render(r.format.Amount(t.Balance))
}

// Totals renders the balance header followed by the income and expense tiles.
func (r *Renderer) Totals(t model.Totals) string {
	income := IncomeStyle.Render(fmt.Sprintf("%s %s %s", IncomeIcon, r.text.Income, r.format.Signed(t.Income, true)))
	expense := ExpenseStyle.Render(fmt.Sprintf("%s %s %s", ExpenseIcon, r.text.Expense, r.format.Signed(t.Expense, false)))
	return lipgloss.JoinVertical(lipgloss.Left,
		r.Balance(t),
		"",
		income+"   "+expense,
	)
}

// Bar returns a bar of at most width cells proportional to value/highest.
func Bar(value, highest float64, width int) string {
	if highest <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	cells := int(math.Round(value / highest * float64(width)))
	if cells < 1 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat(barGlyph, cells)
}

// WeeklyChart renders the daily expense series as horizontal bars. The
// last bar (today) is highlighted.
func (r *Renderer) WeeklyChart(points []model.DayPoint, width int) string {
	if width <= 0 {
		width = DefaultChartWidth
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(r.text.WeeklySpending))
	b.WriteString("\n")

	highest := aggregate.MaxValue(points)
	if highest == 0 {
		b.WriteString(SubtleStyle.Render(r.text.NoData))
		return b.String()
	}

	labelWidth := 0
	for _, p := range points {
		if w := lipgloss.Width(p.Label); w > labelWidth {
			labelWidth = w
		}
	}

	for i, p := range points {
		style := lipgloss.NewStyle().Foreground(BarColor)
		if i == len(points)-1 {
			style = style.Foreground(PrimaryColor)
		}
		label := p.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(p.Label))
		bar := Bar(p.Value, highest, width)
		pad := strings.Repeat(" ", width-lipgloss.Width(bar))
		fmt.Fprintf(&b, "%s %s%s %s", SubtleStyle.Render(label), style.Render(bar), pad, r.format.Amount(p.Value))
		if i < len(points)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Breakdown renders per-category expense totals as colored bars.
func (r *Renderer) Breakdown(entries []model.CategoryBreakdownEntry, width int) string {
	if width <= 0 {
		width = DefaultChartWidth
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(r.text.Categories))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(SubtleStyle.Render(r.text.NoData))
		return b.String()
	}

	var highest float64
	nameWidth := 0
	for _, e := range entries {
		highest = math.Max(highest, e.Total)
		if w := lipgloss.Width(e.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for i, e := range entries {
		name := e.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(e.Name))
		bar := Bar(e.Total, highest, width)
		pad := strings.Repeat(" ", width-lipgloss.Width(bar))
		fmt.Fprintf(&b, "%s %s%s %s", name, ColorStyle(e.Color).Render(bar), pad, r.format.Amount(e.Total))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ResolveCategory returns the display category for a transaction. Names
// that no longer resolve get the default icon and the neutral color.
func ResolveCategory(lookup CategoryLookup, t model.Transaction) model.Category {
	if lookup != nil {
		if c, ok := lookup(t.Type, t.Category); ok {
			return c
		}
	}
	return model.Category{Name: t.Category, IconID: model.DefaultIcon, Color: model.NeutralColor}
}

// TransactionLine renders one history row.
func (r *Renderer) TransactionLine(t model.Transaction, c model.Category) string {
	desc := t.Description
	if desc == "" {
		desc = r.text.NoDescription
	}

	amountStyle := ExpenseStyle
	if t.IsIncome() {
		amountStyle = IncomeStyle
	}

	return fmt.Sprintf("%s %s %s  %s  %s",
		ColorStyle(c.Color).Render(c.IconID.Glyph()),
		BoldStyle.Render(t.Category),
		SubtleStyle.Render(desc),
		amountStyle.Render(r.format.Signed(t.Amount, t.IsIncome())),
		SubtleStyle.Render(r.loc.DayMonth(t.Date.Local())),
	)
}

// History renders up to limit transactions, newest first. A limit of zero
// or less renders all of them. IDs are included so rows can be removed.
func (r *Renderer) History(ts []model.Transaction, lookup CategoryLookup, limit int) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(r.text.History))
	b.WriteString("\n")

	if len(ts) == 0 {
		b.WriteString(SubtleStyle.Render(r.text.Empty))
		return b.String()
	}

	if limit > 0 && limit < len(ts) {
		ts = ts[:limit]
	}
	for i, t := range ts {
		b.WriteString(r.TransactionLine(t, ResolveCategory(lookup, t)))
		b.WriteString("\n  ")
		b.WriteString(SubtleStyle.Render(t.ID))
		if i < len(ts)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Categories renders a list of categories with their icons and colors.
func (r *Renderer) Categories(cats []model.Category) string {
	lines := make([]string, 0, len(cats))
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			ColorStyle(c.Color).Render(c.IconID.Glyph()),
			c.Name,
			SubtleStyle.Render(c.Color),
		))
	}
	return strings.Join(lines, "\n")
}
