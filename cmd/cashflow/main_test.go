package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/pattern"
	"github.com/Veraticus/cashflow/internal/storage"
)

const testToday = "2024-06-15"

// harness runs commands against a file backend in a temporary directory,
// with a fresh app per invocation like separate process runs.
type harness struct {
	t        *testing.T
	settings map[string]any
	dir      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &harness{t: t, dir: t.TempDir(), settings: map[string]any{}}
}

func (h *harness) runWithInput(stdin string, args ...string) (string, error) {
	h.t.Helper()

	v := viper.New()
	a := newApp(v)
	v.Set(config.KeyStorageBackend, string(config.BackendFile))
	v.Set(config.KeyStorageDir, h.dir)
	v.Set(config.KeyLogLevel, "error")
	for key, value := range h.settings {
		v.Set(key, value)
	}

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--today", testToday}, args...))

	err := cmd.ExecuteContext(context.Background())
	a.close()
	return out.String(), err
}

func (h *harness) run(args ...string) string {
	h.t.Helper()
	out, err := h.runWithInput("", args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) transactions() []model.Transaction {
	h.t.Helper()
	backend, err := storage.NewFileStorage(h.dir)
	require.NoError(h.t, err)
	store := storage.NewCollections(backend)
	defer func() { _ = store.Close() }()
	return store.Transactions(context.Background())
}

func (h *harness) seed() {
	h.t.Helper()
	h.run("transactions", "add", "-t", "income", "-a", "5000", "-c", "1", "-d", "Salário", "--date", "2024-06-05")
	h.run("transactions", "add", "-t", "expense", "-a", "1.500,00", "-c", "7", "-d", "Aluguel", "--date", "2024-06-01", "--due", "2024-06-10")
	h.run("transactions", "add", "-t", "expense", "-a", "80", "-c", "5", "-d", "Mercado", "--date", "2023-12-20")
}

func TestTransactionsAddAndList(t *testing.T) {
	h := newHarness(t)
	out := h.run("transactions", "add", "-t", "income", "-a", "5000", "-c", "1", "-d", "Salário", "--date", "05/06/2024")
	assert.Contains(t, out, "Recorded Receita R$ 5.000,00")

	h.seed()

	transactions := h.transactions()
	require.Len(t, transactions, 4)
	assert.Equal(t, "1500", transactions[2].Amount.String())
	assert.Equal(t, model.ExpenseTypeNormal, transactions[2].ExpenseType)
	require.NotNil(t, transactions[2].DueDate)

	out = h.run("transactions", "list", "--year", "2024", "--month", "6")
	assert.Contains(t, out, "Aluguel")
	assert.Contains(t, out, "Salário")
	assert.NotContains(t, out, "Mercado")

	out = h.run("transactions", "list", "--type", "expense")
	assert.Contains(t, out, "Mercado")
	assert.NotContains(t, out, "Salário")
}

func TestTransactionsAddValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative amount", []string{"-t", "expense", "-a", "-5", "-c", "5"}},
		{"unknown type", []string{"-t", "transfer", "-a", "5", "-c", "5"}},
		{"bad date", []string{"-t", "expense", "-a", "5", "-c", "5", "--date", "2024-13-45"}},
		{"missing amount", []string{"-t", "expense", "-c", "5"}},
		{"dot as thousands separator", []string{"-t", "expense", "-a", "1.234", "-c", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.runWithInput("", append([]string{"transactions", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Empty(t, h.transactions())
		})
	}
}

func TestTransactionsUpdateAndDelete(t *testing.T) {
	h := newHarness(t)
	h.seed()
	rent := h.transactions()[1]

	h.run("transactions", "update", rent.ID, "-a", "1600", "--clear-due")
	updated := h.transactions()[1]
	assert.Equal(t, "1600", updated.Amount.String())
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "Aluguel", updated.Description)

	h.run("transactions", "delete", rent.ID)
	assert.Len(t, h.transactions(), 2)

	_, err := h.runWithInput("", "transactions", "delete", rent.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestDeadlines(t *testing.T) {
	h := newHarness(t)
	h.seed()
	rent := h.transactions()[1]

	out := h.run("deadlines", "list")
	assert.Contains(t, out, "Aluguel")
	assert.Contains(t, out, "Vencido")
	assert.Contains(t, out, "há 5 dias")

	h.run("deadlines", "update", rent.ID, "--due", "2024-06-20", "--title", "Aluguel junho")
	out = h.run("deadlines", "list", "--year", "2024", "--month", "6")
	assert.Contains(t, out, "Aluguel junho")
	assert.Contains(t, out, "Pendente")
	assert.Contains(t, out, "em 5 dias")

	h.run("deadlines", "delete", rent.ID)
	transactions := h.transactions()
	require.Len(t, transactions, 3)
	assert.Nil(t, transactions[1].DueDate)

	_, err := h.runWithInput("", "deadlines", "delete", rent.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = h.runWithInput("", "deadlines", "add")
	require.ErrorIs(t, err, common.ErrUnsupportedOperation)
}

func TestCategoriesAndExpenseTypes(t *testing.T) {
	h := newHarness(t)

	out := h.run("categories", "list")
	assert.Contains(t, out, "Moradia")

	out = h.run("categories", "add", "Pets", "--type", "expense", "--color", "#ff00ff")
	assert.Contains(t, out, `Created category "Pets"`)
	out = h.run("categories", "list")
	assert.Contains(t, out, "Pets")

	h.run("categories", "update", "7", "--name", "Casa")
	out = h.run("categories", "list")
	assert.Contains(t, out, "Casa")
	assert.NotContains(t, out, "Moradia")

	h.run("categories", "delete", "7")
	_, err := h.runWithInput("", "categories", "delete", "7")
	require.ErrorIs(t, err, common.ErrNotFound)

	h.run("expense-types", "add", "Viagem", "--description", "Férias")
	out = h.run("expense-types", "list")
	assert.Contains(t, out, "Viagem")
	assert.Contains(t, out, "built-in")

	_, err = h.runWithInput("", "expense-types", "delete", model.ExpenseTypeReserve)
	require.Error(t, err)
	out = h.run("expense-types", "list")
	assert.Contains(t, out, "Reserva")
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)

	out := h.run("dashboard")
	assert.Contains(t, out, "No transactions yet")

	h.seed()
	out = h.run("dashboard", "--year", "2024", "--month", "6")
	assert.Contains(t, out, "R$ 5.000,00")
	assert.Contains(t, out, "R$ 1.580,00")
	assert.Contains(t, out, "junho 2024")
	assert.Contains(t, out, "Moradia")

	_, err := h.runWithInput("", "dashboard", "--month", "13")
	require.Error(t, err)
}

func TestReports(t *testing.T) {
	h := newHarness(t)
	h.seed()

	out := h.run("report", "evolution", "--year", "2024")
	assert.Contains(t, out, "Monthly evolution 2024")
	assert.Contains(t, out, "junho")
	assert.NotContains(t, out, "R$ 80,00")

	out = h.run("report", "history")
	assert.Contains(t, out, "dezembro 2023")
	assert.Contains(t, out, "junho 2024")

	out = h.run("report", "categories")
	assert.Contains(t, out, "Salário")
	assert.Contains(t, out, "Alimentação")
}

const statement = `OFXHEADER:100
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
<DTSERVER>20240615120000[0:GMT]
<LANGUAGE>POR
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
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>001
<ACCTID>98765
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240601120000[0:GMT]
<DTEND>20240615120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240603120000[0:GMT]
<TRNAMT>-42.90
<FITID>20240603001
<NAME>PADARIA CENTRAL
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240605120000[0:GMT]
<TRNAMT>300.00
<FITID>20240605001
<NAME>REEMBOLSO
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240615120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestImportOFX(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "extrato.ofx")
	require.NoError(t, os.WriteFile(file, []byte(statement), 0o600))

	out := h.run("import", "ofx", file, "--dry-run")
	assert.Contains(t, out, "Would import 2 transactions")
	assert.Contains(t, out, "PADARIA CENTRAL")
	assert.Contains(t, out, "Alimentação")
	assert.Empty(t, h.transactions())

	out = h.run("import", "ofx", file)
	assert.Contains(t, out, "Imported 2 transactions (0 skipped)")

	transactions := h.transactions()
	require.Len(t, transactions, 2)
	assert.Equal(t, model.TransactionTypeExpense, transactions[0].Type)
	assert.Equal(t, "42.9", transactions[0].Amount.String())
	assert.Equal(t, "5", transactions[0].Category)
	assert.Equal(t, model.TransactionTypeIncome, transactions[1].Type)
	assert.Equal(t, "4", transactions[1].Category)

	out = h.run("import", "ofx", file)
	assert.Contains(t, out, "Nothing new to import (2 already in the ledger)")
	assert.Len(t, h.transactions(), 2)

	_, err := h.runWithInput("", "import", "ofx", filepath.Join(t.TempDir(), "*.ofx"))
	require.Error(t, err)
}

func TestImportOFXWithoutRules(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "extrato.ofx")
	require.NoError(t, os.WriteFile(file, []byte(statement), 0o600))

	h.run("import", "ofx", file, "--no-rules", "--expense-category", "10")
	transactions := h.transactions()
	require.Len(t, transactions, 2)
	assert.Equal(t, "10", transactions[0].Category)
	assert.Equal(t, "4", transactions[1].Category)
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.seed()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "junho.csv")
	h.run("export", "csv", "-o", csvPath, "--year", "2024", "--month", "6")
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Aluguel")
	assert.NotContains(t, string(data), "Mercado")

	out := h.run("export", "csv", "-o", "-")
	assert.Contains(t, out, "Mercado")

	xlsxPath := filepath.Join(dir, "ledger.xlsx")
	h.run("export", "xlsx", "-o", xlsxPath)
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Transações")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.seed()

	out, err := h.runWithInput("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset canceled")
	assert.Len(t, h.transactions(), 3)

	out, err = h.runWithInput("y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All data deleted")
	assert.Empty(t, h.transactions())

	h.seed()
	h.run("reset", "--force")
	assert.Empty(t, h.transactions())
	assert.Contains(t, h.run("categories", "list"), "Moradia")
}

func TestMigrateRequiresSQLite(t *testing.T) {
	h := newHarness(t)
	_, err := h.runWithInput("", "migrate")
	require.ErrorIs(t, err, common.ErrUnsupportedOperation)
}

func TestInvalidToday(t *testing.T) {
	h := newHarness(t)
	_, err := h.runWithInput("", "--today", "tomorrow", "dashboard")
	require.Error(t, err)
}

func TestImportOFXConfiguredRules(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "extrato.ofx")
	require.NoError(t, os.WriteFile(file, []byte(statement), 0o600))

	h.settings[config.KeyImportRules] = []map[string]any{
		{"name": "ghost", "pattern": "padaria", "category": "99"},
	}
	_, err := h.runWithInput("", "import", "ofx", file)
	require.ErrorIs(t, err, pattern.ErrInvalidRule)
	assert.Empty(t, h.transactions())

	h.settings[config.KeyImportRules] = []map[string]any{
		{"name": "bakery", "pattern": "padaria", "category": "10", "type": "expense"},
		{"name": "refund", "pattern": "reembolso", "category": "2", "type": "income"},
	}
	h.run("import", "ofx", file)
	transactions := h.transactions()
	require.Len(t, transactions, 2)
	assert.Equal(t, "10", transactions[0].Category)
	assert.Equal(t, "2", transactions[1].Category)
}

func TestMigrateSQLite(t *testing.T) {
	h := newHarness(t)
	h.settings[config.KeyStorageBackend] = config.BackendSQLite
	h.settings[config.KeyDatabasePath] = filepath.Join(t.TempDir(), "data", "cashflow.db")

	out := h.run("migrate", "--status")
	assert.Contains(t, out, "Schema version 0 of 2")
	assert.Contains(t, out, "cashflow migrate")

	out = h.run("migrate")
	assert.Contains(t, out, "schema version 2")

	h.run("transactions", "add", "-t", "income", "-a", "10", "-c", "1")
	out = h.run("migrate", "--status")
	assert.Contains(t, out, "Schema version 2 of 2")
	assert.Contains(t, out, "finance_app_transactions")
}
