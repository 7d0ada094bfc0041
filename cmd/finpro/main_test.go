package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/storage"
)

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240105120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024010501
<NAME>CREDIT
<MEMO>SALARY ACME LLC
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

// setupEnv points every path finpro uses into a temp dir and selects the
// file backend. It returns the state directory.
func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	stateDir := filepath.Join(dir, "state")
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("FINPRO_STORAGE_BACKEND", storage.BackendFile)
	t.Setenv("FINPRO_STORAGE_PATH", stateDir)
	t.Setenv("FINPRO_LOGGING_LEVEL", "error")
	for _, name := range []string{"API_KEY", "FINPRO_LLM_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(name, "")
	}
	return stateDir
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	cfgFile = ""

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func loadState(t *testing.T, stateDir string) model.AppState {
	t.Helper()

	gateway, err := storage.New(context.Background(), storage.Config{Backend: storage.BackendFile, Path: stateDir})
	require.NoError(t, err)
	defer gateway.Close()

	state, ok := gateway.LoadState(context.Background())
	require.True(t, ok, "state should be stored")
	return *state
}

func findByDescription(t *testing.T, state model.AppState, description string) model.Transaction {
	t.Helper()
	for _, txn := range state.Transactions {
		if txn.Description == description {
			return txn
		}
	}
	require.Failf(t, "transaction not found", "description %q", description)
	return model.Transaction{}
}

func TestVersionCmd(t *testing.T) {
	setupEnv(t)

	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "finpro version dev")
}

func TestAddHistoryRemove(t *testing.T) {
	stateDir := setupEnv(t)

	out, err := executeCommand(t, "", "add", "12,5", "--category", "транспорт", "--description", "Такси")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Транспорт")
	assert.Contains(t, out, "Такси")

	state := loadState(t, stateDir)
	// the two example entries plus the new one
	require.Len(t, state.Transactions, 3)
	added := state.Transactions[0]
	assert.Equal(t, "Такси", added.Description)
	assert.Equal(t, "Транспорт", added.Category)
	assert.Equal(t, model.TypeExpense, added.Type)
	assert.InDelta(t, 12.5, added.Amount, 0.0001)

	out, err = executeCommand(t, "", "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "История операций")
	assert.Contains(t, out, "Такси")
	assert.Contains(t, out, added.ID)
	assert.NotContains(t, out, "Евроопт")

	out, err = executeCommand(t, "n\n", "remove", added.ID)
	require.NoError(t, err)
	assert.Contains(t, out, app.DeleteConfirmText)
	assert.Contains(t, out, "Deletion cancelled.")
	assert.Len(t, loadState(t, stateDir).Transactions, 3)

	out, err = executeCommand(t, "да\n", "remove", added.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+added.ID)
	assert.Len(t, loadState(t, stateDir).Transactions, 2)

	_, err = executeCommand(t, "", "remove", "missing", "--yes")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "missing")
}

func TestAddIncomeWithDate(t *testing.T) {
	stateDir := setupEnv(t)

	_, err := executeCommand(t, "", "add", "300", "--income", "--description", "Премия", "--date", "2026-10-16")
	require.NoError(t, err)

	txn := findByDescription(t, loadState(t, stateDir), "Премия")
	assert.Equal(t, model.TypeIncome, txn.Type)
	assert.Equal(t, "Зарплата", txn.Category)
	assert.Equal(t, "2026-10-16", txn.Date.Local().Format(dateLayout))
}

func TestAddErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "bad amount", args: []string{"add", "abc"}, wantMsg: "Invalid amount"},
		{name: "negative amount", args: []string{"add", "--", "-5"}, wantMsg: "Invalid amount"},
		{name: "unknown category", args: []string{"add", "5", "--category", "Космос"}, wantMsg: "Available"},
		{name: "income category for expense", args: []string{"add", "5", "--category", "Зарплата"}, wantMsg: "Unknown expense category"},
		{name: "bad date", args: []string{"add", "5", "--date", "16.10.2026"}, wantMsg: "Invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)

			_, err := executeCommand(t, "", tt.args...)
			var userErr *common.UserError
			require.ErrorAs(t, err, &userErr)
			assert.Contains(t, userErr.UserMessage, tt.wantMsg)
		})
	}
}

func TestCategoriesCmd(t *testing.T) {
	stateDir := setupEnv(t)

	out, err := executeCommand(t, "", "categories", "add", "Подписки", "--icon", "smartphone", "--color", "#0ea5e9")
	require.NoError(t, err)
	assert.Contains(t, out, "Подписки")

	state := loadState(t, stateDir)
	require.Len(t, state.CustomCategories.Expense, 1)
	assert.Equal(t, model.Category{Name: "Подписки", IconID: model.IconSmartphone, Color: "#0ea5e9"}, state.CustomCategories.Expense[0])

	out, err = executeCommand(t, "", "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Продукты")
	assert.Contains(t, out, "Подписки")
	assert.NotContains(t, out, "Зарплата")

	out, err = executeCommand(t, "", "categories", "list", "--income")
	require.NoError(t, err)
	assert.Contains(t, out, "Зарплата")
	assert.NotContains(t, out, "Подписки")

	_, err = executeCommand(t, "", "add", "9.99", "--category", "подписки")
	require.NoError(t, err)
	assert.Equal(t, "Подписки", loadState(t, stateDir).Transactions[0].Category)

	_, err = executeCommand(t, "", "categories", "add", "  ")
	assert.Error(t, err)
}

func TestSummaryCmd(t *testing.T) {
	setupEnv(t)

	out, err := executeCommand(t, "", "summary")
	require.NoError(t, err)
	for _, want := range []string{"Finance Pro", "Ваш баланс", "Траты за неделю", "Категории", "Продукты"} {
		assert.Contains(t, out, want)
	}

	out, err = executeCommand(t, "", "summary", "--date", "2020-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Нет данных для анализа")
}

func TestSummaryCmd_English(t *testing.T) {
	setupEnv(t)

	out, err := executeCommand(t, "", "summary", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Categories")
}

func TestAdviceCmd_NotConfigured(t *testing.T) {
	setupEnv(t)

	out, err := executeCommand(t, "", "advice")
	require.NoError(t, err)
	assert.Contains(t, out, app.MissingCredentialText)
}

func TestImportCmd(t *testing.T) {
	stateDir := setupEnv(t)

	path := filepath.Join(t.TempDir(), "statement.ofx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0600))

	out, err := executeCommand(t, "", "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 2 transactions")
	assert.Len(t, loadState(t, stateDir).Transactions, 2)

	out, err = executeCommand(t, "", "import", path, "--expense-category", "Продукты", "--income-category", "Бонус")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 transactions")

	state := loadState(t, stateDir)
	require.Len(t, state.Transactions, 4)

	// newest imported line first
	assert.Equal(t, "Whole Foods Market", state.Transactions[0].Description)
	assert.Equal(t, "Продукты", state.Transactions[0].Category)
	assert.Equal(t, model.TypeExpense, state.Transactions[0].Type)
	assert.InDelta(t, 125.0, state.Transactions[0].Amount, 0.0001)

	assert.Equal(t, "SALARY ACME LLC", state.Transactions[1].Description)
	assert.Equal(t, "Бонус", state.Transactions[1].Category)
	assert.Equal(t, model.TypeIncome, state.Transactions[1].Type)

	out, err = executeCommand(t, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "auto-import-")

	_, err = executeCommand(t, "", "import", filepath.Join(t.TempDir(), "missing-*.ofx"))
	assert.Error(t, err)
}

func TestResetAndRestore(t *testing.T) {
	stateDir := setupEnv(t)

	_, err := executeCommand(t, "", "add", "40", "--description", "Кино")
	require.NoError(t, err)
	require.Len(t, loadState(t, stateDir).Transactions, 3)

	out, err := executeCommand(t, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "This will delete 3 transactions")
	assert.Contains(t, out, "Reset cancelled.")
	assert.Len(t, loadState(t, stateDir).Transactions, 3)

	out, err = executeCommand(t, "y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Data reset")
	assert.Len(t, loadState(t, stateDir).Transactions, 2)

	gateway, err := storage.New(context.Background(), storage.Config{Backend: storage.BackendFile, Path: stateDir})
	require.NoError(t, err)
	checkpoints, err := gateway.Checkpoints().List(context.Background())
	require.NoError(t, err)
	require.NoError(t, gateway.Close())
	require.Len(t, checkpoints, 1)
	assert.True(t, checkpoints[0].IsAuto)
	assert.Equal(t, 3, checkpoints[0].Transactions)

	out, err = executeCommand(t, "", "checkpoint", "restore", checkpoints[0].ID, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored from checkpoint")

	findByDescription(t, loadState(t, stateDir), "Кино")
}

func TestCheckpointCreateDelete(t *testing.T) {
	setupEnv(t)

	_, err := executeCommand(t, "", "checkpoint", "create")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr, "nothing is stored before the first command loads the state")

	_, err = executeCommand(t, "", "history")
	require.NoError(t, err)

	out, err := executeCommand(t, "", "checkpoint", "create", "--tag", "before-cleanup", "--description", "manual save")
	require.NoError(t, err)
	assert.Contains(t, out, "Created checkpoint before-cleanup")
	assert.Contains(t, out, "manual save")

	_, err = executeCommand(t, "", "checkpoint", "create", "--tag", "before-cleanup")
	assert.ErrorIs(t, err, storage.ErrCheckpointExists)

	out, err = executeCommand(t, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "before-cleanup")
	assert.Contains(t, out, "manual")

	out, err = executeCommand(t, "n\n", "checkpoint", "delete", "before-cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	out, err = executeCommand(t, "y\n", "checkpoint", "delete", "before-cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted checkpoint before-cleanup")

	out, err = executeCommand(t, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No checkpoints found.")

	_, err = executeCommand(t, "", "checkpoint", "restore", "before-cleanup", "--force")
	require.ErrorAs(t, err, &userErr)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEphemeralDoesNotPersist(t *testing.T) {
	stateDir := setupEnv(t)

	_, err := executeCommand(t, "", "add", "5", "--ephemeral")
	require.NoError(t, err)

	_, err = os.Stat(stateDir)
	assert.True(t, os.IsNotExist(err))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{size: 0, want: "0 B"},
		{size: 1023, want: "1023 B"},
		{size: 1024, want: "1.0 KB"},
		{size: 1536, want: "1.5 KB"},
		{size: 5 * 1024 * 1024, want: "5.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFileSize(tt.size))
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: time.Minute, want: "1 minute ago"},
		{ago: 5 * time.Minute, want: "5 minutes ago"},
		{ago: time.Hour, want: "1 hour ago"},
		{ago: 3 * time.Hour, want: "3 hours ago"},
		{ago: 24 * time.Hour, want: "yesterday"},
		{ago: 72 * time.Hour, want: "3 days ago"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRelativeTime(now.Add(-tt.ago), now), "ago %s", tt.ago)
	}

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Local().Format("2006-01-02 15:04"), formatRelativeTime(old, now))
}
