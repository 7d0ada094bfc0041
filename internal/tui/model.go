// Package tui implements the interactive terminal interface.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/service"
)

// Model holds the TUI state. Application state lives in the controller;
// the model only keeps view state such as the cursor and open dialogs.
type Model struct {
	ctx          context.Context
	ctrl         *app.Controller
	host         *Host
	renderer     *cli.Renderer
	status       string
	pendingID    string
	form         *addForm
	config       Config
	keymap       KeyMap
	help         help.Model
	spinner      spinner.Model
	width        int
	height       int
	cursor       int
	adviceQueued int
	statusError  bool
	quitting     bool
}

// New creates a model on top of a loaded controller.
func New(ctx context.Context, ctrl *app.Controller, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = cli.NewRenderer(ctrl.Locale(), "")
	}
	if cfg.Host == nil {
		cfg.Host = NewHost()
	}

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		host:     cfg.Host,
		renderer: cfg.Renderer,
		config:   cfg,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cli.PromptStyle)),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	if ctrl.IsAdding() {
		m.openForm()
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.renderer.Text().AppName)}
	if m.form != nil {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case adviceMsg:
		if m.adviceQueued > 0 {
			m.adviceQueued--
		}
		return m, nil

	case spinner.TickMsg:
		if !m.adviceLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.pendingID != "" {
			return m.updateConfirm(msg), nil
		}
		return m.handleKeys(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// handleKeys handles keys on the tab screens.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Dashboard):
		m.setTab(model.TabDashboard)
		return m, nil
	case key.Matches(msg, m.keymap.History):
		m.setTab(model.TabHistory)
		return m, nil
	case key.Matches(msg, m.keymap.Insights):
		m.setTab(model.TabInsights)
		return m, nil
	case key.Matches(msg, m.keymap.NextTab):
		m.setTab(m.shiftTab(1))
		return m, nil
	case key.Matches(msg, m.keymap.PrevTab):
		m.setTab(m.shiftTab(-1))
		return m, nil
	case key.Matches(msg, m.keymap.Add):
		m.ctrl.OpenAddFlow(m.ctx)
		m.openForm()
		return m, textinput.Blink
	}

	switch m.ctrl.ActiveTab() {
	case model.TabHistory:
		return m.handleHistoryKeys(msg), nil
	case model.TabInsights:
		if key.Matches(msg, m.keymap.Advice) {
			return m.startAdvice()
		}
	}
	return m, nil
}

func (m Model) handleHistoryKeys(msg tea.KeyMsg) Model {
	transactions := m.ctrl.Transactions()
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(transactions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Delete):
		if m.cursor < len(transactions) {
			m.pendingID = transactions[m.cursor].ID
		}
	}
	return m
}

// updateConfirm handles the delete dialog. Accepting approves the host's
// next Confirm call and asks the controller to remove the transaction.
func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keymap.Yes):
		m.host.Approve()
		removed := m.ctrl.RemoveTransaction(m.ctx, m.pendingID)
		m.host.Revoke()
		if removed {
			m.flash()
		}
		m.pendingID = ""
		if n := len(m.ctrl.Transactions()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
	case key.Matches(msg, m.keymap.No):
		m.pendingID = ""
	}
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, action, cmd := m.form.Update(msg)
	m.form = &form

	switch action {
	case formCancel:
		m.ctrl.CloseAddFlow(m.ctx)
		m.form = nil
	case formSubmit:
		m.submitForm()
	case formCreateCategory:
		cmd = m.createCategory()
	}
	return m, cmd
}

func (m *Model) submitForm() {
	draft, err := m.form.draft()
	if err != nil {
		m.form.err = describeError(err)
		m.host.Vibrate(service.HapticError)
		m.flash()
		return
	}

	if _, err := m.ctrl.AddTransaction(m.ctx, draft); err != nil {
		m.form.err = describeError(err)
		m.flash()
		return
	}
	m.form = nil
	m.cursor = 0
	m.flash()
}

func (m *Model) createCategory() tea.Cmd {
	name := strings.TrimSpace(m.form.newCategory.Value())
	created, err := m.ctrl.AddCategory(m.ctx, m.form.txType, model.Category{Name: name})
	if err != nil {
		m.form.err = describeError(err)
		return nil
	}
	m.form.selectCategory(created.Name)
	return m.form.closeCreate()
}

func (m *Model) openForm() {
	form := newAddForm(m.renderer.Text(), m.renderer.Formatter().Currency(), m.keymap, m.ctrl.EffectiveCategories)
	m.form = &form
}

func (m Model) startAdvice() (tea.Model, tea.Cmd) {
	m.adviceQueued++
	return m, tea.Batch(requestAdvice(m.ctx, m.ctrl), m.spinner.Tick)
}

func (m *Model) setTab(tab model.Tab) {
	if err := m.ctrl.SetActiveTab(m.ctx, tab); err != nil {
		m.config.Logger.Debug("Failed to switch tab", "tab", tab, "error", err)
	}
}

func (m Model) shiftTab(delta int) model.Tab {
	tabs := model.Tabs()
	current := 0
	for i, t := range tabs {
		if t == m.ctrl.ActiveTab() {
			current = i
		}
	}
	return tabs[(current+delta+len(tabs))%len(tabs)]
}

func (m Model) adviceLoading() bool {
	_, loading := m.ctrl.Advice()
	return loading || m.adviceQueued > 0
}

// flash turns the last haptic signal into a status line.
func (m *Model) flash() {
	intensity, ok := m.host.TakeVibration()
	if !ok {
		return
	}
	m.statusError = intensity == service.HapticError
	if m.statusError {
		m.status = cli.ErrorIcon
	} else {
		m.status = cli.SuccessIcon
	}
}

// describeError returns the user-facing part of err.
func describeError(err error) string {
	var validation *common.ValidationError
	if errors.As(err, &validation) {
		return validation.Field + ": " + validation.Reason
	}
	return err.Error()
}
