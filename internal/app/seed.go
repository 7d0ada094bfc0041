package app

import (
	"time"

	"github.com/Veraticus/finance-pro/internal/model"
)

// Seed returns the state used when nothing usable is stored.
func Seed(now time.Time) model.AppState {
	now = now.UTC()
	return model.AppState{
		ActiveTab: model.TabDashboard,
		Transactions: []model.Transaction{
			{
				ID:          "1",
				Amount:      2500,
				Category:    "Зарплата",
				Description: "Основная выплата",
				Type:        model.TypeIncome,
				Date:        now.Add(-48 * time.Hour),
			},
			{
				ID:          "2",
				Amount:      120,
				Category:    "Продукты",
				Description: "Евроопт",
				Type:        model.TypeExpense,
				Date:        now.Add(-24 * time.Hour),
			},
		},
		CustomCategories: model.CustomCategories{
			Expense: []model.Category{},
			Income:  []model.Category{},
		},
	}
}
