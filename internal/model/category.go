package model

import "encoding/json"

// NeutralColor is used for categories that cannot be resolved.
const NeutralColor = "#94a3b8"

// Category is a named classification bucket with display hints.
type Category struct {
	Name   string `json:"name"`
	IconID IconID `json:"iconId"`
	Color  string `json:"color"`
}

// UnmarshalJSON accepts the legacy "iconName" field and maps unknown
// icons to the default icon.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string `json:"name"`
		IconID   string `json:"iconId"`
		IconName string `json:"iconName"`
		Color    string `json:"color"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	icon := raw.IconID
	if icon == "" {
		icon = raw.IconName
	}

	c.Name = raw.Name
	c.IconID = ParseIconID(icon)
	c.Color = raw.Color
	return nil
}

// CustomCategories holds user-created categories partitioned by type.
type CustomCategories struct {
	Expense []Category `json:"expense"`
	Income  []Category `json:"income"`
}

// For returns the custom categories of the given type.
func (c CustomCategories) For(t TransactionType) []Category {
	if t == TypeIncome {
		return c.Income
	}
	return c.Expense
}

// Clone returns a deep copy with non-nil slices.
func (c CustomCategories) Clone() CustomCategories {
	return CustomCategories{
		Expense: append(make([]Category, 0, len(c.Expense)), c.Expense...),
		Income:  append(make([]Category, 0, len(c.Income)), c.Income...),
	}
}
