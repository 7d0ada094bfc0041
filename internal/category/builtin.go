package category

import "github.com/Veraticus/finance-pro/internal/model"

// Palette holds the colors assigned to user-created categories.
var Palette = []string{
	"#f43f5e",
	"#8b5cf6",
	"#06b6d4",
	"#10b981",
	"#f59e0b",
	"#ec4899",
	"#6366f1",
}

var builtinExpense = []model.Category{
	{Name: "Продукты", IconID: model.IconShoppingBag, Color: "#ef4444"},
	{Name: "Транспорт", IconID: model.IconCar, Color: "#f59e0b"},
	{Name: "Жилье", IconID: model.IconHome, Color: "#6366f1"},
	{Name: "Развлечения", IconID: model.IconCoffee, Color: "#ec4899"},
	{Name: "Еда вне дома", IconID: model.IconUtensils, Color: "#8b5cf6"},
	{Name: "Связь", IconID: model.IconSmartphone, Color: "#10b981"},
	{Name: "Коммуналка", IconID: model.IconZap, Color: "#06b6d4"},
}

var builtinIncome = []model.Category{
	{Name: "Зарплата", IconID: model.IconBriefcase, Color: "#22c55e"},
	{Name: "Бонус", IconID: model.IconTrendingUp, Color: "#3b82f6"},
	{Name: "Подарок", IconID: model.IconGift, Color: "#fbbf24"},
}

// Builtins returns a copy of the built-in categories for t.
func Builtins(t model.TransactionType) []model.Category {
	src := builtinExpense
	if t == model.TypeIncome {
		src = builtinIncome
	}
	return append([]model.Category(nil), src...)
}

// DefaultName returns the name preselected for new transactions of type t.
func DefaultName(t model.TransactionType) string {
	if t == model.TypeIncome {
		return builtinIncome[0].Name
	}
	return builtinExpense[0].Name
}
