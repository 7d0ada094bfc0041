// Package ledger holds the ordered collection of transactions.
package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
)

// Store owns the transactions, newest first. There is no update
// operation; corrections are a Remove followed by an Add.
type Store struct {
	now          func() time.Time
	newID        func() string
	transactions []model.Transaction
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets how transaction IDs are produced.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks the fields of a draft that Add would reject.
func Validate(d model.TransactionDraft) error {
	if math.IsNaN(d.Amount) || math.IsInf(d.Amount, 0) {
		return common.NewValidationError("amount", "must be a finite number")
	}
	if d.Amount < 0 {
		return common.NewValidationError("amount", "must not be negative")
	}
	if !d.Type.IsValid() {
		return common.NewValidationError("type", "must be INCOME or EXPENSE")
	}
	return nil
}

// Add validates the draft, assigns an ID and a default date, and
// prepends the resulting transaction.
func (s *Store) Add(d model.TransactionDraft) (model.Transaction, error) {
	if err := Validate(d); err != nil {
		return model.Transaction{}, err
	}

	date := d.Date
	if date.IsZero() {
		date = s.now()
	}

	txn := model.Transaction{
		ID:          s.newID(),
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    d.Category,
		Description: d.Description,
		Date:        date.UTC(),
	}

	s.transactions = append([]model.Transaction{txn}, s.transactions...)
	return txn, nil
}

// Remove deletes the transaction with the given id.
// It reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	for i, txn := range s.transactions {
		if txn.ID == id {
			s.transactions = append(s.transactions[:i:i], s.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (model.Transaction, bool) {
	for _, txn := range s.transactions {
		if txn.ID == id {
			return txn, true
		}
	}
	return model.Transaction{}, false
}

// All returns a copy of the transactions in store order.
func (s *Store) All() []model.Transaction {
	return append(make([]model.Transaction, 0, len(s.transactions)), s.transactions...)
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.transactions)
}

// Restore replaces the collection, keeping the given order.
func (s *Store) Restore(transactions []model.Transaction) {
	s.transactions = append(make([]model.Transaction, 0, len(transactions)), transactions...)
}
