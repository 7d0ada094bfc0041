// Package app owns the application state and exposes the operations the
// user interfaces drive.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/finance-pro/internal/aggregate"
	"github.com/Veraticus/finance-pro/internal/category"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/ledger"
	"github.com/Veraticus/finance-pro/internal/locale"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/service"
)

// User-facing advice messages.
const (
	AdvicePromptText      = "Запросите совет, чтобы помощник проанализировал ваши финансы и дал персональные рекомендации ✨"
	MissingCredentialText = "Настройте API_KEY для работы финансового помощника."
	AdviceFailureText     = "Не удалось связаться с финансовым оракулом."
)

// DeleteConfirmText is shown to the host before a transaction is removed.
const DeleteConfirmText = "Удалить операцию?"

// Controller is the single owner of the application state. Every
// mutation is followed by a full save through the StateStore.
type Controller struct {
	store     service.StateStore
	advisor   service.Advisor
	confirmer service.Confirmer
	vibrator  service.Vibrator
	logger    *slog.Logger
	now       func() time.Time
	registry  *category.Registry
	ledger    *ledger.Store
	warning   error
	activeTab model.Tab
	advice    string
	locale    locale.Locale
	mu        sync.Mutex
	isAdding  bool
	inflight  int
}

// Option configures a Controller.
type Option func(*controllerOptions)

type controllerOptions struct {
	advisor     service.Advisor
	confirmer   service.Confirmer
	vibrator    service.Vibrator
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	colorPicker category.ColorPicker
	locale      locale.Locale
}

// WithAdvisor sets the advice service.
func WithAdvisor(a service.Advisor) Option {
	return func(o *controllerOptions) { o.advisor = a }
}

// WithConfirmer sets the host confirmation dialog.
func WithConfirmer(c service.Confirmer) Option {
	return func(o *controllerOptions) { o.confirmer = c }
}

// WithVibrator sets the host haptics.
func WithVibrator(v service.Vibrator) Option {
	return func(o *controllerOptions) { o.vibrator = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *controllerOptions) { o.logger = l }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(o *controllerOptions) { o.now = now }
}

// WithIDGenerator sets how new transaction IDs are produced.
func WithIDGenerator(gen func() string) Option {
	return func(o *controllerOptions) { o.newID = gen }
}

// WithColorPicker sets how colors are chosen for new categories.
func WithColorPicker(p category.ColorPicker) Option {
	return func(o *controllerOptions) { o.colorPicker = p }
}

// WithLocale sets the locale of chart labels.
func WithLocale(l locale.Locale) Option {
	return func(o *controllerOptions) { o.locale = l }
}

// New creates a controller holding the seed state. Call Load to read the
// stored state.
func New(store service.StateStore, opts ...Option) *Controller {
	o := controllerOptions{
		confirmer: NopHost{},
		vibrator:  NopHost{},
		logger:    slog.Default(),
		now:       time.Now,
		locale:    locale.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ledgerOpts := []ledger.Option{ledger.WithClock(o.now)}
	if o.newID != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithIDGenerator(o.newID))
	}
	var registryOpts []category.Option
	if o.colorPicker != nil {
		registryOpts = append(registryOpts, category.WithColorPicker(o.colorPicker))
	}

	c := &Controller{
		store:     store,
		advisor:   o.advisor,
		confirmer: o.confirmer,
		vibrator:  o.vibrator,
		logger:    o.logger,
		now:       o.now,
		locale:    o.locale,
		registry:  category.NewRegistry(registryOpts...),
		ledger:    ledger.NewStore(ledgerOpts...),
	}
	c.applyLocked(Seed(c.now()))
	return c
}

// Load replaces the in-memory state with the stored one, falling back to
// the seed. It reports whether the seed was used. The seed is saved
// right away; the gateway keeps a copy of any stored document it could
// not use and refuses to replace one it could not read.
func (c *Controller) Load(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.store.LoadState(ctx)
	if !ok {
		c.logger.Info("Starting from seed state")
		c.applyLocked(Seed(c.now()))
		c.persistLocked(ctx)
		return true
	}

	c.applyLocked(*state)
	c.logger.Debug("Loaded state", "transactions", c.ledger.Len())
	return false
}

// Reset replaces everything with the seed state.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.applyLocked(Seed(c.now()))
	c.advice = ""
	c.persistLocked(ctx)
}

// AddTransaction validates and records a new transaction.
func (c *Controller) AddTransaction(ctx context.Context, draft model.TransactionDraft) (model.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	txn, err := c.ledger.Add(draft)
	if err != nil {
		c.vibrator.Vibrate(service.HapticError)
		return model.Transaction{}, err
	}

	c.isAdding = false
	c.persistLocked(ctx)
	c.vibrator.Vibrate(service.HapticSuccess)
	return txn, nil
}

// ImportTransactions records several drafts as one mutation. Drafts are
// added in order, so the last draft ends up newest. Invalid drafts are
// skipped and reported in the returned error.
func (c *Controller) ImportTransactions(ctx context.Context, drafts []model.TransactionDraft) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	added := 0
	for i, d := range drafts {
		if _, err := c.ledger.Add(d); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i+1, err))
			continue
		}
		added++
	}

	if added > 0 {
		c.persistLocked(ctx)
	}
	return added, errors.Join(errs...)
}

// RemoveTransaction deletes the transaction with id after the host
// confirms. It reports whether anything was removed.
func (c *Controller) RemoveTransaction(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.ledger.Get(id); !ok {
		return false
	}
	if !c.confirmer.Confirm(DeleteConfirmText) {
		return false
	}

	c.ledger.Remove(id)
	c.persistLocked(ctx)
	c.vibrator.Vibrate(service.HapticMedium)
	return true
}

// AddCategory creates a custom category for type t.
func (c *Controller) AddCategory(ctx context.Context, t model.TransactionType, cat model.Category) (model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	created, err := c.registry.AddCustom(t, cat)
	if err != nil {
		return model.Category{}, err
	}

	c.persistLocked(ctx)
	c.vibrator.Vibrate(service.HapticLight)
	return created, nil
}

// SetActiveTab switches the selected tab.
func (c *Controller) SetActiveTab(ctx context.Context, tab model.Tab) error {
	if !tab.IsValid() {
		return common.NewValidationError("tab", fmt.Sprintf("unknown tab %q", tab))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeTab == tab {
		return nil
	}
	c.activeTab = tab
	c.persistLocked(ctx)
	return nil
}

// OpenAddFlow marks the add form as open.
func (c *Controller) OpenAddFlow(ctx context.Context) {
	c.setAdding(ctx, true)
}

// CloseAddFlow marks the add form as closed.
func (c *Controller) CloseAddFlow(ctx context.Context) {
	c.setAdding(ctx, false)
}

func (c *Controller) setAdding(ctx context.Context, adding bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isAdding == adding {
		return
	}
	c.isAdding = adding
	c.persistLocked(ctx)
}

// RequestAdvice asks the advisor about the current transactions and
// stores the resulting message. The lock is not held while the advisor
// runs, so overlapping requests are possible; whichever finishes last
// sets the message.
func (c *Controller) RequestAdvice(ctx context.Context) string {
	c.mu.Lock()
	c.inflight++
	transactions := c.ledger.All()
	advisor := c.advisor
	c.mu.Unlock()

	text := c.summarize(ctx, advisor, transactions)

	c.mu.Lock()
	c.advice = text
	c.inflight--
	c.mu.Unlock()

	return text
}

func (c *Controller) summarize(ctx context.Context, advisor service.Advisor, transactions []model.Transaction) string {
	if advisor == nil {
		return MissingCredentialText
	}

	text, err := advisor.Summarize(ctx, transactions)
	if err == nil {
		return text
	}

	var serviceErr *common.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Kind == common.ServiceMissingCredential {
		c.logger.Info("Advice service is not configured")
		return MissingCredentialText
	}

	c.logger.Warn("Advice request failed", "error", err)
	return AdviceFailureText
}

// Advice returns the last advice message and whether any request is
// still running.
func (c *Controller) Advice() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advice, c.inflight > 0
}

// Warning returns the error of the last failed save, or nil when the
// last save succeeded.
func (c *Controller) Warning() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warning
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() model.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Transactions returns the transactions, newest first.
func (c *Controller) Transactions() []model.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.All()
}

// ActiveTab returns the selected tab.
func (c *Controller) ActiveTab() model.Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// IsAdding reports whether the add form is open.
func (c *Controller) IsAdding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isAdding
}

// Totals derives income, expense and balance.
func (c *Controller) Totals() model.Totals {
	return aggregate.Totals(c.Transactions())
}

// DailyExpenseSeries derives the seven-day expense series ending on today.
func (c *Controller) DailyExpenseSeries(today time.Time) []model.DayPoint {
	return aggregate.DailyExpenseSeriesWith(c.Transactions(), today, c.locale.DayMonth)
}

// CategoryBreakdown derives expense totals per category.
func (c *Controller) CategoryBreakdown() []model.CategoryBreakdownEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return aggregate.CategoryBreakdown(c.ledger.All(), c.registry)
}

// EffectiveCategories lists built-in then custom categories of type t.
func (c *Controller) EffectiveCategories(t model.TransactionType) []model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Effective(t)
}

// LookupCategory finds a category by name, first match wins.
func (c *Controller) LookupCategory(t model.TransactionType, name string) (model.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Lookup(t, name)
}

// Locale returns the configured display locale.
func (c *Controller) Locale() locale.Locale {
	return c.locale
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

func (c *Controller) applyLocked(state model.AppState) {
	c.ledger.Restore(state.Transactions)
	c.registry.Restore(state.CustomCategories)
	c.activeTab = state.ActiveTab
	if !c.activeTab.IsValid() {
		c.activeTab = model.TabDashboard
	}
	c.isAdding = state.IsAdding
}

func (c *Controller) snapshotLocked() model.AppState {
	return model.AppState{
		ActiveTab:        c.activeTab,
		Transactions:     c.ledger.All(),
		CustomCategories: c.registry.Customs(),
		IsAdding:         c.isAdding,
	}
}

// persistLocked saves the full state. A failure is kept as a warning and
// the in-memory state stays authoritative.
func (c *Controller) persistLocked(ctx context.Context) {
	if err := c.store.SaveState(ctx, c.snapshotLocked()); err != nil {
		c.warning = err
		c.logger.Warn("Failed to save state", "error", err)
		return
	}
	c.warning = nil
}
