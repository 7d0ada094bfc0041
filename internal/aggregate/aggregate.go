// Package aggregate derives balance, the weekly expense series and the
// per-category breakdown from a snapshot of transactions.
//
// The functions are pure: they never fail and never read the clock.
// Non-finite amounts propagate into the results as NaN or Inf.
package aggregate

import (
	"time"

	"github.com/Veraticus/finance-pro/internal/locale"
	"github.com/Veraticus/finance-pro/internal/model"
)

// SeriesDays is the number of points in the daily expense series.
const SeriesDays = 7

// ColorResolver resolves the display color of a category name.
type ColorResolver interface {
	ColorOf(t model.TransactionType, name string) string
}

// LabelFunc formats the label of a daily bucket.
type LabelFunc func(day time.Time) string

// Totals sums income and expense and derives the balance.
func Totals(ts []model.Transaction) model.Totals {
	var totals model.Totals
	for _, txn := range ts {
		switch txn.Type {
		case model.TypeIncome:
			totals.Income += txn.Amount
		case model.TypeExpense:
			totals.Expense += txn.Amount
		}
	}
	totals.Balance = totals.Income - totals.Expense
	return totals
}

// DailyExpenseSeries returns seven daily expense sums ending on today,
// oldest first, labelled in the default locale.
func DailyExpenseSeries(ts []model.Transaction, today time.Time) []model.DayPoint {
	return DailyExpenseSeriesWith(ts, today, locale.Default.DayMonth)
}

// DailyExpenseSeriesWith is DailyExpenseSeries with a custom label format.
// Days are compared as calendar dates in today's location.
func DailyExpenseSeriesWith(ts []model.Transaction, today time.Time, label LabelFunc) []model.DayPoint {
	loc := today.Location()
	y, m, d := today.Date()

	points := make([]model.DayPoint, SeriesDays)
	index := make(map[time.Time]int, SeriesDays)
	for i := range points {
		day := time.Date(y, m, d-(SeriesDays-1-i), 0, 0, 0, 0, loc)
		points[i] = model.DayPoint{Date: day, Label: label(day)}
		index[day] = i
	}

	for _, txn := range ts {
		if txn.Type != model.TypeExpense {
			continue
		}
		ty, tm, td := txn.Date.In(loc).Date()
		if i, ok := index[time.Date(ty, tm, td, 0, 0, 0, 0, loc)]; ok {
			points[i].Value += txn.Amount
		}
	}

	return points
}

// CategoryBreakdown groups expenses by category name. Entries follow the
// order in which each name first appears in ts.
func CategoryBreakdown(ts []model.Transaction, colors ColorResolver) []model.CategoryBreakdownEntry {
	var entries []model.CategoryBreakdownEntry
	positions := make(map[string]int)

	for _, txn := range ts {
		if txn.Type != model.TypeExpense {
			continue
		}
		i, ok := positions[txn.Category]
		if !ok {
			i = len(entries)
			positions[txn.Category] = i
			entries = append(entries, model.CategoryBreakdownEntry{
				Name:  txn.Category,
				Color: colors.ColorOf(model.TypeExpense, txn.Category),
			})
		}
		entries[i].Total += txn.Amount
	}

	return entries
}

// MaxValue returns the largest value in the series, used to scale charts.
func MaxValue(points []model.DayPoint) float64 {
	var highest float64
	for _, p := range points {
		if p.Value > highest {
			highest = p.Value
		}
	}
	return highest
}
