package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/finance-pro/internal/common"
)

// ParseAmount converts user input such as "12,50" or "1 200.5" into an
// amount rounded half-up to two decimal places.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", " ", "", " ", "", ",", ".").Replace(s)
	if s == "" {
		return 0, common.NewValidationError("amount", "must not be empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, common.NewValidationError("amount", "is not a number")
	}
	if d.IsNegative() {
		return 0, common.NewValidationError("amount", "must not be negative")
	}

	f, _ := d.Round(2).Float64()
	return f, nil
}
