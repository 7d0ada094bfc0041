package model

import "time"

// Totals summarizes all transactions.
type Totals struct {
	Income  float64
	Expense float64
	Balance float64
}

// DayPoint is one bucket of the daily expense series.
type DayPoint struct {
	Date  time.Time
	Label string
	Value float64
}

// CategoryBreakdownEntry is the expense total for one category name.
type CategoryBreakdownEntry struct {
	Name  string
	Color string
	Total float64
}
