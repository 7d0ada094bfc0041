package model

import (
	"encoding/json"
	"fmt"
)

// Tab is the currently selected top-level view.
type Tab string

// Available tabs.
const (
	TabDashboard Tab = "dashboard"
	TabHistory   Tab = "history"
	TabInsights  Tab = "insights"
)

// IsValid reports whether the tab is one of the known tabs.
func (t Tab) IsValid() bool {
	switch t {
	case TabDashboard, TabHistory, TabInsights:
		return true
	}
	return false
}

// ParseTab converts s into a Tab.
func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown tab %q", s)
	}
	return t, nil
}

// Tabs returns the tabs in navigation order.
func Tabs() []Tab {
	return []Tab{TabDashboard, TabHistory, TabInsights}
}

// AppState is the unit that gets persisted.
type AppState struct {
	ActiveTab        Tab              `json:"activeTab"`
	Transactions     []Transaction    `json:"transactions"`
	CustomCategories CustomCategories `json:"customCategories"`
	IsAdding         bool             `json:"isAdding"`
}

// UnmarshalJSON degrades an unknown tab to the dashboard.
func (s *AppState) UnmarshalJSON(data []byte) error {
	type plain AppState
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if !p.ActiveTab.IsValid() {
		p.ActiveTab = TabDashboard
	}
	*s = AppState(p)
	return nil
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	return AppState{
		ActiveTab:        s.ActiveTab,
		Transactions:     append(make([]Transaction, 0, len(s.Transactions)), s.Transactions...),
		CustomCategories: s.CustomCategories.Clone(),
		IsAdding:         s.IsAdding,
	}
}
