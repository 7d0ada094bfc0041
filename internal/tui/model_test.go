package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/locale"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/service"
	"github.com/Veraticus/finance-pro/internal/testutil"
	"github.com/Veraticus/finance-pro/internal/tui/tuitest"
)

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type advisorFunc func(ctx context.Context, ts []model.Transaction) (string, error)

func (f advisorFunc) Summarize(ctx context.Context, ts []model.Transaction) (string, error) {
	return f(ctx, ts)
}

type fixture struct {
	model Model
	ctrl  *app.Controller
	db    *testutil.TestDB
	host  *Host
}

func newFixture(t *testing.T, state *model.AppState, opts ...app.Option) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t, state)
	host := NewHost()

	seq := 0
	base := []app.Option{
		app.WithConfirmer(host),
		app.WithVibrator(host),
		app.WithLogger(testutil.DiscardLogger()),
		app.WithClock(func() time.Time { return testNow }),
		app.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		app.WithColorPicker(func() string { return "#f43f5e" }),
	}
	ctrl := app.New(db.Gateway, append(base, opts...)...)
	ctrl.Load(context.Background())

	m := New(context.Background(), ctrl,
		WithHost(host),
		WithLocale(locale.Russian, "Br"),
		WithSize(100, 40),
		WithLogger(testutil.DiscardLogger()),
	)
	return &fixture{model: m, ctrl: ctrl, db: db, host: host}
}

func (f *fixture) send(t *testing.T, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = f.model.Update(msg)
		m, ok := next.(Model)
		require.True(t, ok)
		f.model = m
	}
	return cmd
}

func (f *fixture) typeText(t *testing.T, text string) {
	t.Helper()
	next := tuitest.NewInputSequence().Type(text).Apply(f.model)
	m, ok := next.(Model)
	require.True(t, ok)
	f.model = m
}

func seededState(t *testing.T) *model.AppState {
	return testutil.NewStateBuilder(t, testNow).
		WithExpense(120, "Продукты", "Евроопт", 1).
		WithIncome(2500, "Зарплата", "Основная выплата", 2).
		BuildPtr()
}

func TestModel_TabSwitching(t *testing.T) {
	f := newFixture(t, seededState(t))

	tests := []struct {
		key  tea.KeyMsg
		want model.Tab
	}{
		{key: tuitest.KeyPress("2"), want: model.TabHistory},
		{key: tuitest.KeyTab(), want: model.TabInsights},
		{key: tuitest.KeyTab(), want: model.TabDashboard},
		{key: tuitest.KeyShiftTab(), want: model.TabInsights},
		{key: tuitest.KeyPress("1"), want: model.TabDashboard},
		{key: tuitest.KeyPress("3"), want: model.TabInsights},
	}

	for _, tt := range tests {
		f.send(t, tt.key)
		assert.Equal(t, tt.want, f.ctrl.ActiveTab(), "after %s", tt.key)
		assert.Equal(t, tt.want, f.db.MustLoadState().ActiveTab)
	}
}

func TestModel_AddExpense(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("a"))
	require.NotNil(t, f.model.form)
	assert.True(t, f.ctrl.IsAdding())
	assert.True(t, f.db.MustLoadState().IsAdding)

	f.typeText(t, "12,5")
	f.send(t, tuitest.KeyTab(), tuitest.KeyRight(), tuitest.KeyTab())
	f.typeText(t, "Такси")
	f.send(t, tuitest.KeyEnter())

	assert.Nil(t, f.model.form)
	assert.False(t, f.ctrl.IsAdding())

	transactions := f.ctrl.Transactions()
	require.Len(t, transactions, 3)
	added := transactions[0]
	assert.Equal(t, "id-1", added.ID)
	assert.Equal(t, model.TypeExpense, added.Type)
	assert.InDelta(t, 12.5, added.Amount, 0.0001)
	assert.Equal(t, "Транспорт", added.Category)
	assert.Equal(t, "Такси", added.Description)
	assert.Equal(t, testNow, added.Date)

	stored := f.db.MustLoadState()
	assert.Len(t, stored.Transactions, 3)
	assert.False(t, stored.IsAdding)
	assert.Equal(t, "✓", f.model.status)
}

func TestModel_AddIncomeWithToggle(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("+"), tuitest.KeyCtrlT())
	require.NotNil(t, f.model.form)
	assert.Equal(t, model.TypeIncome, f.model.form.txType)
	assert.Equal(t, "Зарплата", f.model.form.categoryName())

	f.typeText(t, "300")
	f.send(t, tuitest.KeyEnter())

	added := f.ctrl.Transactions()[0]
	assert.Equal(t, model.TypeIncome, added.Type)
	assert.Equal(t, "Зарплата", added.Category)
	assert.Equal(t, model.Totals{Income: 2800, Expense: 120, Balance: 2680}, f.ctrl.Totals())
}

func TestModel_InvalidAmountKeepsForm(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not a number", input: "abc"},
		{name: "negative", input: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, seededState(t))
			f.send(t, tuitest.KeyPress("a"))
			f.typeText(t, tt.input)
			f.send(t, tuitest.KeyEnter())

			require.NotNil(t, f.model.form)
			assert.NotEmpty(t, f.model.form.err)
			assert.Len(t, f.ctrl.Transactions(), 2)
			assert.True(t, f.model.statusError)
			assert.True(t, f.ctrl.IsAdding())
		})
	}
}

func TestModel_CreateCategoryFromForm(t *testing.T) {
	f := newFixture(t, seededState(t))

	// Left from the first category wraps to the "new category" slot.
	f.send(t, tuitest.KeyPress("a"), tuitest.KeyTab(), tuitest.KeyLeft())
	require.True(t, f.model.form.customSelected())

	f.send(t, tuitest.KeyEnter())
	require.True(t, f.model.form.creating)
	assert.Contains(t, f.model.View(), "Новая категория")

	// Blank names are ignored.
	f.send(t, tuitest.KeyEnter())
	assert.True(t, f.model.form.creating)

	f.typeText(t, "  Подписки ")
	f.send(t, tuitest.KeyEnter())
	require.False(t, f.model.form.creating)
	assert.Equal(t, "Подписки", f.model.form.categoryName())

	created, ok := f.ctrl.LookupCategory(model.TypeExpense, "Подписки")
	require.True(t, ok)
	assert.Equal(t, model.IconTag, created.IconID)
	assert.Equal(t, "#f43f5e", created.Color)
	assert.Len(t, f.db.MustLoadState().CustomCategories.Expense, 1)

	f.send(t, tuitest.KeyShiftTab())
	f.typeText(t, "9.99")
	f.send(t, tuitest.KeyEnter())

	added := f.ctrl.Transactions()[0]
	assert.Equal(t, "Подписки", added.Category)
	assert.InDelta(t, 9.99, added.Amount, 0.0001)
}

func TestModel_CancelCreateCategory(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("a"), tuitest.KeyTab(), tuitest.KeyLeft(), tuitest.KeyEnter())
	require.True(t, f.model.form.creating)

	f.send(t, tuitest.KeyEsc())
	require.NotNil(t, f.model.form)
	assert.False(t, f.model.form.creating)

	f.send(t, tuitest.KeyEsc())
	assert.Nil(t, f.model.form)
	assert.False(t, f.ctrl.IsAdding())
	assert.False(t, f.db.MustLoadState().IsAdding)
}

func TestModel_RestoresOpenForm(t *testing.T) {
	state := testutil.NewStateBuilder(t, testNow).Adding().BuildPtr()
	f := newFixture(t, state)

	require.NotNil(t, f.model.form)
	assert.Contains(t, f.model.View(), "Новая запись")
}

func TestModel_DeleteTransaction(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("2"), tuitest.KeyDown(), tuitest.KeyPress("d"))
	assert.Equal(t, "tx-2", f.model.pendingID)
	assert.Contains(t, f.model.View(), "Удалить операцию?")

	f.send(t, tuitest.KeyPress("n"))
	assert.Empty(t, f.model.pendingID)
	assert.Len(t, f.ctrl.Transactions(), 2)

	f.send(t, tuitest.KeyPress("d"), tuitest.KeyPress("y"))
	assert.Empty(t, f.model.pendingID)

	transactions := f.ctrl.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, "tx-1", transactions[0].ID)
	assert.Equal(t, 0, f.model.cursor)
	assert.Len(t, f.db.MustLoadState().Transactions, 1)

	// Without the dialog the host refuses.
	assert.False(t, f.ctrl.RemoveTransaction(context.Background(), "tx-1"))
	assert.Len(t, f.ctrl.Transactions(), 1)
}

func TestModel_DeleteVanishedTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("2"), tuitest.KeyPress("d"))
	require.Equal(t, "tx-1", f.model.pendingID)

	f.host.Approve()
	require.True(t, f.ctrl.RemoveTransaction(ctx, "tx-1"))

	f.send(t, tuitest.KeyPress("y"))
	assert.Empty(t, f.model.pendingID)
	assert.Len(t, f.ctrl.Transactions(), 1)

	assert.False(t, f.ctrl.RemoveTransaction(ctx, "tx-2"), "the dialog approval is not left over")
	assert.Len(t, f.ctrl.Transactions(), 1)
}

func TestModel_HistoryCursorBounds(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("2"), tuitest.KeyUp())
	assert.Equal(t, 0, f.model.cursor)

	f.send(t, tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyDown())
	assert.Equal(t, 1, f.model.cursor)
}

func TestModel_Advice(t *testing.T) {
	tests := []struct {
		name    string
		advisor service.Advisor
		want    string
	}{
		{
			name: "advice text",
			advisor: advisorFunc(func(_ context.Context, ts []model.Transaction) (string, error) {
				return fmt.Sprintf("%d операции, всё хорошо 💡", len(ts)), nil
			}),
			want: "2 операции, всё хорошо 💡",
		},
		{
			name: "failure",
			advisor: advisorFunc(func(context.Context, []model.Transaction) (string, error) {
				return "", common.NewServiceError(common.ServiceTransport, errors.New("boom"))
			}),
			want: app.AdviceFailureText,
		},
		{
			name: "not configured",
			want: app.MissingCredentialText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []app.Option
			if tt.advisor != nil {
				opts = append(opts, app.WithAdvisor(tt.advisor))
			}
			f := newFixture(t, seededState(t), opts...)

			f.send(t, tuitest.KeyPress("3"))
			assert.Contains(t, f.model.View(), "Запросите совет")

			cmd := f.send(t, tuitest.KeyPress("r"))
			require.NotNil(t, cmd)
			assert.Equal(t, 1, f.model.adviceQueued)
			assert.Contains(t, f.model.View(), "Анализируем ваши финансы...")

			msg := requestAdvice(context.Background(), f.ctrl)()
			f.send(t, msg)

			assert.Equal(t, 0, f.model.adviceQueued)
			assert.False(t, f.model.adviceLoading())
			text, _ := f.ctrl.Advice()
			assert.Equal(t, tt.want, text)
			assert.Contains(t, f.model.View(), tt.want)
		})
	}
}

func TestModel_Views(t *testing.T) {
	f := newFixture(t, seededState(t))

	view := f.model.View()
	for _, want := range []string{"Finance Pro", "Ваш баланс", "Траты за неделю", "Категории", "Продукты", "Обзор", "История", "AI Советы"} {
		assert.Contains(t, view, want)
	}

	f.send(t, tuitest.KeyPress("2"))
	view = f.model.View()
	assert.Contains(t, view, "История операций")
	assert.Contains(t, view, "Евроопт")
	assert.Contains(t, view, "Основная выплата")

	empty := newFixture(t, testutil.NewStateBuilder(t, testNow).WithTab(model.TabHistory).BuildPtr())
	assert.Contains(t, empty.model.View(), "Пока пусто...")

	empty.send(t, tuitest.KeyPress("1"))
	assert.Contains(t, empty.model.View(), "Нет данных для анализа")
}

func TestModel_WarningShownAfterFailedSave(t *testing.T) {
	f := newFixture(t, seededState(t))
	require.NoError(t, f.db.Gateway.Close())

	f.send(t, tuitest.KeyPress("2"))
	assert.Error(t, f.ctrl.Warning())
	assert.Contains(t, f.model.View(), "⚠️")
	assert.Equal(t, model.TabHistory, f.ctrl.ActiveTab())
}

func TestModel_QuitAndResize(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.WindowSize(60, 20))
	assert.Equal(t, 60, f.model.width)
	assert.Equal(t, 20, f.model.height)

	f.send(t, tuitest.KeyPress("?"))
	assert.True(t, f.model.help.ShowAll)

	cmd := f.send(t, tuitest.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, f.model.View())
}

func TestModel_QuitKeyTypesIntoForm(t *testing.T) {
	f := newFixture(t, seededState(t))

	f.send(t, tuitest.KeyPress("a"), tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyPress("q"))
	assert.False(t, f.model.quitting)
	require.NotNil(t, f.model.form)
	assert.Equal(t, "q", f.model.form.description.Value())
}

func TestHost(t *testing.T) {
	h := NewHost()
	assert.False(t, h.Confirm("Удалить операцию?"))

	h.Approve()
	assert.True(t, h.Confirm("Удалить операцию?"))
	assert.False(t, h.Confirm("Удалить операцию?"))

	_, ok := h.TakeVibration()
	assert.False(t, ok)

	h.Vibrate(service.HapticSuccess)
	got, ok := h.TakeVibration()
	assert.True(t, ok)
	assert.Equal(t, service.HapticSuccess, got)
	_, ok = h.TakeVibration()
	assert.False(t, ok)
}

func TestRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	recorder := NewRecorder(true, dir)
	defer recorder.Close()
	require.Equal(t, dir, recorder.Dir())

	f := newFixture(t, seededState(t))
	var root tea.Model = recordingModel{recorder: recorder, model: f.model}
	root, _ = root.Update(tuitest.KeyPress("2"))
	root, _ = root.Update(tuitest.KeyPress("1"))

	assert.Equal(t, 2, recorder.Frames())
	assert.FileExists(t, filepath.Join(dir, "frame-0001.txt"))
	assert.Contains(t, root.View(), "Траты за неделю")

	_, err := os.Stat(filepath.Join(dir, "tui.log"))
	assert.NoError(t, err)

	disabled := NewRecorder(false, "")
	assert.Empty(t, disabled.Dir())
}
