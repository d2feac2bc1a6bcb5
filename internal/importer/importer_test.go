package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/scotia/internal/model"
)

func parseFixture(t *testing.T, p Parser, name string) []model.Transaction {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)

	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	return txns
}

func TestScotiaParser_Parse(t *testing.T) {
	txns := parseFixture(t, &ScotiaParser{}, "scotia_chequing.csv")
	require.Len(t, txns, 7, "blank line is skipped")

	first := txns[0]
	assert.Equal(t, []string{"-", "POS PURCHASE", "SOBEYS #1234 MONCTON NB"}, first.Description)
	assert.Equal(t, "-45.67", first.Currency())
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, `1/15/2025,-45.67,"-","POS PURCHASE","SOBEYS #1234   MONCTON NB"`, first.Raw)

	assert.True(t, txns[1].IsDeposit())
	assert.Equal(t, "2500.00", txns[1].Currency())
}

func TestScotiaParser_FileOrder(t *testing.T) {
	txns := parseFixture(t, &ScotiaParser{}, "scotia_chequing.csv")
	assert.Equal(t, 15, txns[0].Date.Day())
	assert.Equal(t, 3, txns[1].Date.Day())
}

func TestScotiaParser_Lines(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		amount string
		desc   []string
		day    int
	}{
		{"padded date", `01/02/2025,-1.00,"A"`, "-1.00", []string{"A"}, 2},
		{"iso date", `2025-01-02,5,"A","B"`, "5.00", []string{"A", "B"}, 2},
		{"comma inside quotes", `1/2/2025,-3.5,"ONE, TWO"`, "-3.50", []string{"ONE, TWO"}, 2},
		{"crlf", "1/2/2025,-3.5,\"X\"\r", "-3.50", []string{"X"}, 2},
		{"spaces around cells", ` 1/2/2025 , -3.5 ,"X"`, "-3.50", []string{"X"}, 2},
		{"zero amount", `1/2/2025,0,"X"`, "0.00", []string{"X"}, 2},
		{"collapses whitespace", "1/2/2025,-1,\"A \t B\"", "-1.00", []string{"A B"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := (&ScotiaParser{}).Parse(strings.NewReader(tt.line + "\n"))
			require.NoError(t, err)
			require.Len(t, txns, 1)
			assert.Equal(t, tt.amount, txns[0].Currency())
			assert.Equal(t, tt.desc, txns[0].Description)
			assert.Equal(t, tt.day, txns[0].Date.Day())
		})
	}
}

func TestScotiaParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no description", "1/2/2025,-1.00\n", "no quoted description"},
		{"bad date", `NOTADATE,-1.00,"X"` + "\n", "parsing date"},
		{"bad amount", `1/2/2025,abc,"X"` + "\n", "parsing amount"},
		{"missing amount", `1/2/2025,"X"` + "\n", "expected date and amount"},
		{"line number", "1/2/2025,-1,\"X\"\n\nbroken\n", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&ScotiaParser{}).Parse(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScotiaParser_ErrNoDescription(t *testing.T) {
	_, err := (&ScotiaParser{}).Parse(strings.NewReader("1/2/2025,-1.00\n"))
	assert.ErrorIs(t, err, ErrNoDescription)
}

func TestScotiaParser_Empty(t *testing.T) {
	txns, err := (&ScotiaParser{}).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestChaseParser_Parse(t *testing.T) {
	txns := parseFixture(t, &ChaseParser{}, "chase_checking.csv")
	require.Len(t, txns, 4)

	assert.Equal(t, []string{"GITHUB *PRO SUBSCRIPTION", "ACH_DEBIT"}, txns[0].Description)
	assert.Equal(t, "-4.00", txns[0].Currency())
	assert.Equal(t, 2025, txns[0].Date.Year())
	assert.Equal(t, 3, txns[0].Date.Day())

	assert.True(t, txns[2].IsDeposit())
	assert.Equal(t, "3500.00", txns[2].Currency())
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	_, err := (&ChaseParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParser_BadAmount(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n"
	_, err := (&ChaseParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("scotia"))

	r.Register(&ScotiaParser{})
	require.NotNil(t, r.Get("scotia"))
	assert.NotNil(t, r.Get("Scotia"))
	assert.NotNil(t, r.Get("SCOTIA"))

	assert.Panics(t, func() { r.Register(&ScotiaParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"chase", "scotia"}, r.Formats())
}

func TestSortByDate_Stable(t *testing.T) {
	day := func(d int, raw string) model.Transaction {
		return model.Transaction{Date: time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC), Raw: raw}
	}
	txns := []model.Transaction{day(20, "a"), day(3, "b"), day(20, "c"), day(1, "d")}
	SortByDate(txns)

	var got []string
	for _, tx := range txns {
		got = append(got, tx.Raw)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, got)
}

func TestParseFile(t *testing.T) {
	txns, err := ParseFile(&ScotiaParser{}, filepath.Join("..", "..", "testdata", "scotia_chequing.csv"))
	require.NoError(t, err)
	assert.Len(t, txns, 7)

	_, err = ParseFile(&ScotiaParser{}, filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFile_WrapsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("nope\n"), 0o644))

	_, err := ParseFile(&ScotiaParser{}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.csv: line 1")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "archive"), 0o755))
	for _, name := range []string{"b.csv", "a.CSV", "notes.md", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive", "old.csv"), []byte("x"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.CSV"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "c.txt"),
	}, files)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}
