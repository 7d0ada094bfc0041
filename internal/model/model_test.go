package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIconID(t *testing.T) {
	tests := []struct {
		input string
		want  IconID
	}{
		{"shopping-bag", IconShoppingBag},
		{"ShoppingBag", IconShoppingBag},
		{"TrendingUp", IconTrendingUp},
		{"zap", IconZap},
		{"Bathtub", IconTag},
		{"", IconTag},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIconID(tt.input))
		})
	}
}

func TestCategory_UnmarshalLegacyIconName(t *testing.T) {
	var c Category
	err := json.Unmarshal([]byte(`{"name":"Кафе","iconName":"Coffee","color":"#a855f7"}`), &c)
	require.NoError(t, err)

	assert.Equal(t, Category{Name: "Кафе", IconID: IconCoffee, Color: "#a855f7"}, c)
}

func TestCategory_UnmarshalPrefersIconID(t *testing.T) {
	var c Category
	err := json.Unmarshal([]byte(`{"name":"Дом","iconId":"home","iconName":"Car"}`), &c)
	require.NoError(t, err)

	assert.Equal(t, IconHome, c.IconID)
}

func TestAppState_UnknownTabDegrades(t *testing.T) {
	var s AppState
	err := json.Unmarshal([]byte(`{"activeTab":"settings","transactions":[],"isAdding":true}`), &s)
	require.NoError(t, err)

	assert.Equal(t, TabDashboard, s.ActiveTab)
	assert.True(t, s.IsAdding)
}

func TestAppState_CloneIsIndependent(t *testing.T) {
	s := AppState{
		ActiveTab:    TabHistory,
		Transactions: []Transaction{{ID: "a"}},
		CustomCategories: CustomCategories{
			Expense: []Category{{Name: "x"}},
		},
	}

	c := s.Clone()
	c.Transactions[0].ID = "b"
	c.CustomCategories.Expense[0].Name = "y"

	assert.Equal(t, "a", s.Transactions[0].ID)
	assert.Equal(t, "x", s.CustomCategories.Expense[0].Name)
	assert.NotNil(t, c.CustomCategories.Income)
}

func TestGlyph_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, IconTag.Glyph(), IconID("nope").Glyph())
	assert.Len(t, KnownIcons(), 11)
}
