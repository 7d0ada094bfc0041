package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/finance-pro/internal/model"
)

// StateBuilder provides a fluent interface for constructing application
// state in tests. Transactions keep the order they are added in, so add
// the newest one first.
type StateBuilder struct {
	now   time.Time
	t     *testing.T
	state model.AppState
	next  int
}

// NewStateBuilder starts an empty dashboard state relative to now.
func NewStateBuilder(t *testing.T, now time.Time) *StateBuilder {
	t.Helper()
	return &StateBuilder{
		t:   t,
		now: now,
		state: model.AppState{
			Transactions:     []model.Transaction{},
			CustomCategories: model.CustomCategories{}.Clone(),
			ActiveTab:        model.TabDashboard,
		},
	}
}

// WithTransaction adds a transaction daysAgo days before now.
func (b *StateBuilder) WithTransaction(t model.TransactionType, amount float64, category, description string, daysAgo int) *StateBuilder {
	b.t.Helper()
	if !t.IsValid() {
		b.t.Fatalf("invalid transaction type %q", t)
	}
	b.next++
	b.state.Transactions = append(b.state.Transactions, model.Transaction{
		ID:          fmt.Sprintf("tx-%d", b.next),
		Date:        b.now.AddDate(0, 0, -daysAgo).UTC(),
		Type:        t,
		Amount:      amount,
		Category:    category,
		Description: description,
	})
	return b
}

// WithIncome adds an income transaction.
func (b *StateBuilder) WithIncome(amount float64, category, description string, daysAgo int) *StateBuilder {
	b.t.Helper()
	return b.WithTransaction(model.TypeIncome, amount, category, description, daysAgo)
}

// WithExpense adds an expense transaction.
func (b *StateBuilder) WithExpense(amount float64, category, description string, daysAgo int) *StateBuilder {
	b.t.Helper()
	return b.WithTransaction(model.TypeExpense, amount, category, description, daysAgo)
}

// WithCustomCategory adds a user-created category.
func (b *StateBuilder) WithCustomCategory(t model.TransactionType, c model.Category) *StateBuilder {
	if c.IconID == "" {
		c.IconID = model.DefaultIcon
	}
	if t == model.TypeIncome {
		b.state.CustomCategories.Income = append(b.state.CustomCategories.Income, c)
	} else {
		b.state.CustomCategories.Expense = append(b.state.CustomCategories.Expense, c)
	}
	return b
}

// WithTab selects the active tab.
func (b *StateBuilder) WithTab(tab model.Tab) *StateBuilder {
	b.state.ActiveTab = tab
	return b
}

// Adding marks the add form as open.
func (b *StateBuilder) Adding() *StateBuilder {
	b.state.IsAdding = true
	return b
}

// Build returns a copy of the built state.
func (b *StateBuilder) Build() model.AppState {
	return b.state.Clone()
}

// BuildPtr returns a pointer to a copy of the built state.
func (b *StateBuilder) BuildPtr() *model.AppState {
	state := b.Build()
	return &state
}
