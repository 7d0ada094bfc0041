package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/storage"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func TestStateBuilder(t *testing.T) {
	state := NewStateBuilder(t, now).
		WithExpense(120, "Продукты", "Евроопт", 1).
		WithIncome(2500, "Зарплата", "Основная выплата", 2).
		WithCustomCategory(model.TypeExpense, model.Category{Name: "Подписки", Color: "#f43f5e"}).
		WithTab(model.TabHistory).
		Adding().
		Build()

	require.Len(t, state.Transactions, 2)
	assert.Equal(t, "tx-1", state.Transactions[0].ID)
	assert.Equal(t, model.TypeExpense, state.Transactions[0].Type)
	assert.Equal(t, now.AddDate(0, 0, -1), state.Transactions[0].Date)
	assert.Equal(t, model.TypeIncome, state.Transactions[1].Type)

	require.Len(t, state.CustomCategories.Expense, 1)
	assert.Equal(t, model.DefaultIcon, state.CustomCategories.Expense[0].IconID)
	assert.NotNil(t, state.CustomCategories.Income)

	assert.Equal(t, model.TabHistory, state.ActiveTab)
	assert.True(t, state.IsAdding)
}

func TestSetupTestDB(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		db := SetupTestDB(t, nil)
		_, ok := db.Gateway.LoadState(context.Background())
		assert.False(t, ok)

		version, err := db.Backend.SchemaVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, storage.ExpectedSchemaVersion, version)
	})

	t.Run("seeded", func(t *testing.T) {
		want := NewStateBuilder(t, now).WithExpense(45, "Транспорт", "", 0).Build()
		db := SetupTestDB(t, &want)

		got := db.MustLoadState()
		assert.Equal(t, want, got)
	})

	t.Run("custom setup", func(t *testing.T) {
		called := false
		db := SetupTestDBWithOptions(t, TestDBOptions{
			CustomSetup: func(ctx context.Context, backend storage.Backend) error {
				called = true
				return backend.Put(ctx, storage.StateKey, []byte("{broken"))
			},
		})
		assert.True(t, called)

		_, ok := db.Gateway.LoadState(context.Background())
		assert.False(t, ok)
	})
}
