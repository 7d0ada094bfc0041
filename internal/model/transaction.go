package model

import "time"

// TransactionType determines the sign semantics of a transaction.
type TransactionType string

const (
	// TypeIncome marks money coming in.
	TypeIncome TransactionType = "INCOME"
	// TypeExpense marks money going out.
	TypeExpense TransactionType = "EXPENSE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense entry.
// Amount is always a magnitude; the sign is carried by Type.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Category    string          `json:"category"` // Name of a category, not a strong reference
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction subtracts from the balance.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// TransactionDraft carries the user-supplied fields of a transaction
// before the store assigns an ID. A zero Date means "now".
type TransactionDraft struct {
	Date        time.Time
	Category    string
	Description string
	Type        TransactionType
	Amount      float64
}
