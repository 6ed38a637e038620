package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/profitloss"
)

const hdfcHeader = "Date,Narration,Chq./Ref.No.,Value Dt,Withdrawal Amt.,Deposit Amt.,Closing Balance\n"

func parseTestdata(t *testing.T) []model.BankTransaction {
	t.Helper()
	f, err := os.Open("../../testdata/hdfc_statement.csv")
	require.NoError(t, err)
	defer f.Close()

	txns, err := (&HDFCParser{}).Parse(f)
	require.NoError(t, err)
	return txns
}

func TestHDFCParser_Parse(t *testing.T) {
	txns := parseTestdata(t)
	require.Len(t, txns, 5)

	assert.Equal(t, "UPI-RAMESH KIRANA-ramesh@okaxis", txns[0].Description)
	assert.Equal(t, "12500.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "DEPOSIT", txns[0].Type)
	assert.Equal(t, "0000501234567890", txns[0].Reference)
	assert.Equal(t, 2025, txns[0].Date.Year())
	assert.Equal(t, 1, int(txns[0].Date.Month()))
	assert.Equal(t, 3, txns[0].Date.Day())

	assert.Equal(t, "-3420.50", txns[1].Amount.StringFixed(2))
	assert.Equal(t, "WITHDRAWAL", txns[1].Type)
}

func TestHDFCParser_GeneratedReference(t *testing.T) {
	txns := parseTestdata(t)

	assert.Equal(t, "hdfc_20250110_IMPSSHARMA", txns[2].Reference, "blank ref")
	assert.Equal(t, "hdfc_20250115_POS4567XXX", txns[3].Reference, "all-zero ref")
}

func TestHDFCParser_EmptyFile(t *testing.T) {
	txns, err := (&HDFCParser{}).Parse(strings.NewReader(hdfcHeader))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestHDFCParser_BadDate(t *testing.T) {
	csv := hdfcHeader + "2025-01-03,desc,,,4.00,,100.00\n"
	_, err := (&HDFCParser{}).Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestHDFCParser_BadAmount(t *testing.T) {
	csv := hdfcHeader + "03/01/25,desc,,,NOTANUMBER,,100.00\n"
	_, err := (&HDFCParser{}).Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing withdrawal")
}

func TestHDFCParser_AmountOutOfRange(t *testing.T) {
	csv := hdfcHeader + "03/01/25,desc,,,,1e100000000,100.00\n"
	_, err := (&HDFCParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrOutOfRange)
}

func TestGenericParser_Parse(t *testing.T) {
	csv := "date,description,amount,reference\n" +
		"2025-02-01,Counter sales,2500.00,\n" +
		"2025-02-02,Rent,-15000,RENT-FEB\n"
	txns, err := (&GenericParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "generic_20250201_COUNTERSAL", txns[0].Reference)
	assert.Equal(t, "RENT-FEB", txns[1].Reference)
	assert.True(t, txns[1].Amount.IsNegative())
}

func TestGenericParser_ShortRow(t *testing.T) {
	_, err := (&GenericParser{}).Parse(strings.NewReader("date,description,amount\n2025-02-01,x\n"))
	assert.Error(t, err)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&HDFCParser{})
	assert.NotNil(t, r.Get("HDFC"))
	assert.NotNil(t, r.Get("hdfc"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&HDFCParser{})
	assert.Panics(t, func() { r.Register(&HDFCParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"generic", "hdfc"}, r.Formats())
}

func TestToTransactions(t *testing.T) {
	bank := parseTestdata(t)
	txns := ToTransactions(bank, id.NewSequencer("RCT-2025-01-003"))
	require.Len(t, txns, 5)

	assert.Equal(t, model.KindReceipt, txns[0].Kind)
	assert.Equal(t, "RCT-2025-01-004", txns[0].ID)
	assert.Equal(t, "12500.00", txns[0].Amount.StringFixed(2))
	assert.False(t, txns[0].IsExpense)

	assert.Equal(t, model.KindPayment, txns[1].Kind)
	assert.Equal(t, "PAY-2025-01-001", txns[1].ID)
	assert.True(t, txns[1].IsExpense)
	assert.Equal(t, "3420.50", txns[1].Amount.StringFixed(2))

	assert.Equal(t, "RCT-2025-01-005", txns[2].ID)

	set := model.TransactionSet{}
	for _, txn := range txns {
		set.Add(txn)
	}
	a := profitloss.Calculate(set)
	assert.Equal(t, "57500.00", a.Income.Total.StringFixed(2))
	assert.Equal(t, "15619.50", a.Expenses.Total.StringFixed(2))
}

func TestToTransactions_SkipsZero(t *testing.T) {
	bank := []model.BankTransaction{{Description: "reversal"}}
	assert.Empty(t, ToTransactions(bank, id.NewSequencer()))
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "bank.csv"))

	_, err := os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}
