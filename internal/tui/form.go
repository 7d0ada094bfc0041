package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/ledger"
	"github.com/Veraticus/finance-pro/internal/model"
)

type formField int

const (
	fieldAmount formField = iota
	fieldCategory
	fieldDescription
	fieldCount
)

type formAction int

const (
	formNone formAction = iota
	formCancel
	formSubmit
	formCreateCategory
)

// addForm is the new-transaction form. The last category slot opens the
// new-category screen.
type addForm struct {
	categoriesFor func(model.TransactionType) []model.Category
	keys          KeyMap
	text          cli.Text
	currency      string
	err           string
	txType        model.TransactionType
	amount        textinput.Model
	description   textinput.Model
	newCategory   textinput.Model
	categories    []model.Category
	selected      int
	focus         formField
	creating      bool
}

func newAddForm(text cli.Text, currency string, keys KeyMap, categoriesFor func(model.TransactionType) []model.Category) addForm {
	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 16
	amount.Prompt = ""

	description := textinput.New()
	description.Placeholder = text.DescriptionTip
	description.CharLimit = 120
	description.Prompt = ""

	newCategory := textinput.New()
	newCategory.Placeholder = text.CategoryTip
	newCategory.CharLimit = 40
	newCategory.Prompt = ""

	f := addForm{
		categoriesFor: categoriesFor,
		keys:          keys,
		text:          text,
		currency:      currency,
		txType:        model.TypeExpense,
		amount:        amount,
		description:   description,
		newCategory:   newCategory,
	}
	f.reloadCategories()
	f.amount.Focus()
	return f
}

func (f *addForm) reloadCategories() {
	f.categories = f.categoriesFor(f.txType)
	if f.selected > len(f.categories) {
		f.selected = 0
	}
}

// customSelected reports whether the "new category" slot is selected.
func (f addForm) customSelected() bool {
	return f.selected == len(f.categories)
}

// categoryName returns the name of the selected category.
func (f addForm) categoryName() string {
	if f.customSelected() || len(f.categories) == 0 {
		return ""
	}
	return f.categories[f.selected].Name
}

func (f *addForm) toggleType() {
	if f.txType == model.TypeExpense {
		f.txType = model.TypeIncome
	} else {
		f.txType = model.TypeExpense
	}
	f.selected = 0
	f.reloadCategories()
}

func (f *addForm) setFocus(field formField) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	f.amount.Blur()
	f.description.Blur()
	switch f.focus {
	case fieldAmount:
		return f.amount.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *addForm) openCreate() tea.Cmd {
	f.creating = true
	f.err = ""
	f.newCategory.Reset()
	return f.newCategory.Focus()
}

func (f *addForm) closeCreate() tea.Cmd {
	f.creating = false
	f.newCategory.Blur()
	return f.setFocus(fieldCategory)
}

// selectCategory reloads the categories and moves the selection to name.
func (f *addForm) selectCategory(name string) {
	f.reloadCategories()
	for i, c := range f.categories {
		if c.Name == name {
			f.selected = i
			return
		}
	}
}

// draft builds the transaction draft from the inputs.
func (f addForm) draft() (model.TransactionDraft, error) {
	amount, err := ledger.ParseAmount(f.amount.Value())
	if err != nil {
		return model.TransactionDraft{}, err
	}
	return model.TransactionDraft{
		Type:        f.txType,
		Amount:      amount,
		Category:    f.categoryName(),
		Description: strings.TrimSpace(f.description.Value()),
	}, nil
}

// Update handles a message and reports what the model should do next.
func (f addForm) Update(msg tea.Msg) (addForm, formAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInputs(msg)
	}

	if f.creating {
		switch {
		case key.Matches(keyMsg, f.keys.Cancel):
			return f, formNone, f.closeCreate()
		case key.Matches(keyMsg, f.keys.Submit):
			if strings.TrimSpace(f.newCategory.Value()) == "" {
				return f, formNone, nil
			}
			return f, formCreateCategory, nil
		}
		var cmd tea.Cmd
		f.newCategory, cmd = f.newCategory.Update(msg)
		return f, formNone, cmd
	}

	switch {
	case key.Matches(keyMsg, f.keys.Cancel):
		return f, formCancel, nil
	case key.Matches(keyMsg, f.keys.ToggleType):
		f.toggleType()
		return f, formNone, nil
	case key.Matches(keyMsg, f.keys.NextField):
		return f, formNone, f.setFocus(f.focus + 1)
	case key.Matches(keyMsg, f.keys.PrevField):
		return f, formNone, f.setFocus(f.focus - 1)
	case key.Matches(keyMsg, f.keys.Submit):
		if f.focus == fieldCategory && f.customSelected() {
			return f, formNone, f.openCreate()
		}
		return f, formSubmit, nil
	}

	if f.focus == fieldCategory {
		slots := len(f.categories) + 1
		switch {
		case key.Matches(keyMsg, f.keys.Left):
			f.selected = (f.selected - 1 + slots) % slots
		case key.Matches(keyMsg, f.keys.Right):
			f.selected = (f.selected + 1) % slots
		}
		return f, formNone, nil
	}

	return f.updateInputs(msg)
}

func (f addForm) updateInputs(msg tea.Msg) (addForm, formAction, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case f.creating:
		f.newCategory, cmd = f.newCategory.Update(msg)
	case f.focus == fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case f.focus == fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, formNone, cmd
}

func (f addForm) label(field formField, text string) string {
	style := cli.SubtleStyle
	if f.focus == field {
		style = cli.PromptStyle
	}
	return style.Render(strings.ToUpper(text))
}

// View renders the form.
func (f addForm) View(width int) string {
	if f.creating {
		return f.createView()
	}

	expense := " " + f.text.Expense + " "
	income := " " + f.text.Income + " "
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
	if f.txType == model.TypeExpense {
		expense = active.Background(cli.ExpenseColor).Render(expense)
		income = cli.SubtleStyle.Render(income)
	} else {
		income = active.Background(cli.IncomeColor).Render(income)
		expense = cli.SubtleStyle.Render(expense)
	}

	tiles := make([]string, 0, len(f.categories)+1)
	for i, c := range f.categories {
		tile := cli.ColorStyle(c.Color).Render(c.IconID.Glyph()) + " " + c.Name
		tiles = append(tiles, f.tile(tile, i == f.selected))
	}
	tiles = append(tiles, f.tile("+ "+f.text.CustomCategory, f.customSelected()))

	submit := f.text.AddExpense
	if f.txType == model.TypeIncome {
		submit = f.text.AddIncome
	}

	parts := []string{
		cli.TitleStyle.Render(f.text.NewTransaction),
		expense + income,
		"",
		f.label(fieldAmount, fmt.Sprintf("%s (%s)", f.text.Amount, f.currency)),
		f.amount.View(),
		"",
		f.label(fieldCategory, f.text.Category),
		lipgloss.NewStyle().Width(width).Render(strings.Join(tiles, " ")),
		"",
		f.label(fieldDescription, f.text.Description),
		f.description.View(),
		"",
		cli.PromptStyle.Render("⏎ " + submit),
	}
	if f.err != "" {
		parts = append(parts, cli.FormatError(f.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (f addForm) tile(content string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().Underline(true).Bold(true).Render("[" + content + "]")
	}
	return " " + content + " "
}

func (f addForm) createView() string {
	parts := []string{
		cli.TitleStyle.Render(f.text.NewCategory),
		cli.SubtleStyle.Render(f.text.NewCategoryTip),
		"",
		f.newCategory.View(),
		"",
		cli.PromptStyle.Render("⏎ " + f.text.CreateCategory),
	}
	if f.err != "" {
		parts = append(parts, cli.FormatError(f.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
