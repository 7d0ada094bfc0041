// Package category holds the built-in and user-defined transaction categories.
package category

import (
	"math/rand/v2"
	"strings"

	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
)

// ColorPicker chooses a display color for a new custom category.
type ColorPicker func() string

// RandomColor picks a palette color at random.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))]
}

// Registry resolves categories for each transaction type.
// Lookups scan built-ins first, then customs in creation order, and the
// first name match wins.
type Registry struct {
	pickColor ColorPicker
	custom    model.CustomCategories
}

// Option configures a Registry.
type Option func(*Registry)

// WithColorPicker overrides how colors are chosen for new categories.
func WithColorPicker(p ColorPicker) Option {
	return func(r *Registry) {
		r.pickColor = p
	}
}

// NewRegistry creates a registry holding only the built-in categories.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{pickColor: RandomColor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Effective returns built-in categories for t followed by custom ones.
func (r *Registry) Effective(t model.TransactionType) []model.Category {
	customs := r.custom.For(t)
	out := make([]model.Category, 0, len(customs)+8)
	out = append(out, Builtins(t)...)
	return append(out, customs...)
}

// Lookup returns the first category of type t named name.
func (r *Registry) Lookup(t model.TransactionType, name string) (model.Category, bool) {
	for _, c := range r.Effective(t) {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}

// ColorOf returns the display color for name, or model.NeutralColor.
func (r *Registry) ColorOf(t model.TransactionType, name string) string {
	if c, ok := r.Lookup(t, name); ok {
		return c.Color
	}
	return model.NeutralColor
}

// AddCustom appends c to the custom categories of type t.
// Name collisions are allowed; earlier entries keep winning lookups.
func (r *Registry) AddCustom(t model.TransactionType, c model.Category) (model.Category, error) {
	if !t.IsValid() {
		return model.Category{}, common.NewValidationError("type", "must be INCOME or EXPENSE")
	}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return model.Category{}, common.NewValidationError("category name", "must not be blank")
	}
	if !c.IconID.IsKnown() {
		c.IconID = model.DefaultIcon
	}
	if c.Color == "" {
		c.Color = r.pickColor()
	}

	if t == model.TypeIncome {
		r.custom.Income = append(r.custom.Income, c)
	} else {
		r.custom.Expense = append(r.custom.Expense, c)
	}
	return c, nil
}

// Customs returns a copy of the custom categories.
func (r *Registry) Customs() model.CustomCategories {
	return r.custom.Clone()
}

// Restore replaces the custom categories, e.g. after loading state.
func (r *Registry) Restore(custom model.CustomCategories) {
	r.custom = custom.Clone()
}
