package cli

import "github.com/Veraticus/finance-pro/internal/locale"

// Text holds the user-facing labels of the CLI and the terminal UI.
type Text struct {
	AppName        string
	Balance        string
	Income         string
	Expense        string
	WeeklySpending string
	Categories     string
	NoData         string
	History        string
	Empty          string
	NoDescription  string
	Insights       string
	GetAdvice      string
	Thinking       string
	NewTransaction string
	Amount         string
	Category       string
	CustomCategory string
	Description    string
	DescriptionTip string
	NewCategory    string
	NewCategoryTip string
	CategoryTip    string
	CreateCategory string
	AddExpense     string
	AddIncome      string
	ConfirmDelete  string
	TabDashboard   string
	TabHistory     string
	TabInsights    string
}

var texts = map[locale.Locale]Text{
	locale.Russian: {
		AppName:        "Finance Pro",
		Balance:        "Ваш баланс",
		Income:         "Доход",
		Expense:        "Расход",
		WeeklySpending: "Траты за неделю",
		Categories:     "Категории",
		NoData:         "Нет данных для анализа",
		History:        "История операций",
		Empty:          "Пока пусто...",
		NoDescription:  "Нет описания",
		Insights:       "Интеллектуальный анализ",
		GetAdvice:      "Получить рекомендации",
		Thinking:       "Анализируем ваши финансы...",
		NewTransaction: "Новая запись",
		Amount:         "Сумма",
		Category:       "Категория",
		CustomCategory: "Своя",
		Description:    "Описание",
		DescriptionTip: "На что потратили?",
		NewCategory:    "Новая категория",
		NewCategoryTip: "Придумайте название для своей категории",
		CategoryTip:    "Напр. Подписки, Здоровье...",
		CreateCategory: "Создать категорию",
		AddExpense:     "Добавить расход",
		AddIncome:      "Добавить доход",
		ConfirmDelete:  "Удалить операцию? (y/n)",
		TabDashboard:   "Обзор",
		TabHistory:     "История",
		TabInsights:    "AI Советы",
	},
	locale.English: {
		AppName:        "Finance Pro",
		Balance:        "Your balance",
		Income:         "Income",
		Expense:        "Expense",
		WeeklySpending: "Spending this week",
		Categories:     "Categories",
		NoData:         "No data to analyze",
		History:        "Transaction history",
		Empty:          "Nothing here yet...",
		NoDescription:  "No description",
		Insights:       "Smart analysis",
		GetAdvice:      "Get recommendations",
		Thinking:       "Analyzing your finances...",
		NewTransaction: "New entry",
		Amount:         "Amount",
		Category:       "Category",
		CustomCategory: "Custom",
		Description:    "Description",
		DescriptionTip: "What was it for?",
		NewCategory:    "New category",
		NewCategoryTip: "Pick a name for your category",
		CategoryTip:    "e.g. Subscriptions, Health...",
		CreateCategory: "Create category",
		AddExpense:     "Add expense",
		AddIncome:      "Add income",
		ConfirmDelete:  "Delete this transaction? (y/n)",
		TabDashboard:   "Overview",
		TabHistory:     "History",
		TabInsights:    "AI Advice",
	},
}

// TextFor returns the labels for l, falling back to the default locale.
func TextFor(l locale.Locale) Text {
	if t, ok := texts[l]; ok {
		return t
	}
	return texts[locale.Default]
}
