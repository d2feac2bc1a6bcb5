package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/scotia/internal/categories"
	"github.com/cleared-dev/scotia/internal/classify"
	"github.com/cleared-dev/scotia/internal/model"
)

func txn(day int, amount string, desc ...string) model.Transaction {
	return model.Transaction{
		Date:        time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString(amount),
		Description: desc,
	}
}

func sample() []model.Transaction {
	return []model.Transaction{
		txn(3, "2500", "PAYROLL DEPOSIT", "ACME LTD"),
		txn(7, "-12.40", "TIM HORTONS"),
		txn(15, "-45.67", "SOBEYS #1234"),
		txn(10, "-30", "SOBEYS PIZZA CO"),
	}
}

func table() categories.Table {
	return categories.MustNew(
		categories.Category{Name: "groceries", Keywords: []string{"SOBEYS"}},
		categories.Category{Name: "restaurant", Keywords: []string{"TIM HORTONS", "PIZZA"}},
		categories.Category{Name: "rent", Keywords: []string{"PROPERTIES"}},
	)
}

func TestDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Details("chequing.csv", sample()))
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "\tchequing.csv", lines[0])
	assert.Regexp(t, `^date\s+amount\s+details$`, lines[1])
	assert.Regexp(t, `^Fri Jan 03 2025\s+2500.00\s+PAYROLL DEPOSIT \| ACME LTD$`, lines[2])
	assert.Regexp(t, `^Tue Jan 07 2025\s+-12.40\s+TIM HORTONS$`, lines[3])

	assert.Contains(t, out, "Deposits: 2500.00\n")
	assert.Contains(t, out, "Withdrawals: -88.07\n")
	assert.True(t, strings.HasSuffix(out, "Total Transactions: 2411.93\n"))
}

func TestDetails_ColumnsAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Details("x", sample()))
	lines := strings.Split(buf.String(), "\n")

	col := strings.Index(lines[1], "amount")
	for _, l := range lines[2:6] {
		assert.NotEqual(t, ' ', rune(l[col]), "amount column misaligned in %q", l)
		assert.Equal(t, ' ', rune(l[col-1]))
	}
}

func TestDetails_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Details("empty.csv", nil))
	assert.Contains(t, buf.String(), "Deposits: 0.00\nWithdrawals: 0.00\nTotal Transactions: 0.00\n")
}

func TestClassification(t *testing.T) {
	res := classify.Classify(sample(), table())

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Classification(res))

	want := "groceries: -45.67\n" +
		"  Wed Jan 15 2025 -45.67 SOBEYS #1234\n" +
		"\n" +
		"restaurant: -12.40\n" +
		"  Tue Jan 07 2025 -12.40 TIM HORTONS\n" +
		"\n" +
		"other: 2470.00\n" +
		"  Fri Jan 03 2025 2500.00 PAYROLL DEPOSIT | ACME LTD\n" +
		"  Fri Jan 10 2025 -30.00 SOBEYS PIZZA CO\n" +
		"\n"
	assert.Equal(t, want, buf.String())
	assert.NotContains(t, buf.String(), "rent:")
}

func TestClassification_Explain(t *testing.T) {
	res := classify.Classify(sample(), table())

	var buf bytes.Buffer
	require.NoError(t, New(&buf, WithExplain(true)).Classification(res))
	out := buf.String()

	assert.Contains(t, out, "  Wed Jan 15 2025 -45.67 SOBEYS #1234\n    matched \"SOBEYS\"\n")
	assert.Contains(t, out, "    ambiguous: groceries (SOBEYS) and restaurant\n")
	assert.Contains(t, out, "ACME LTD\n    no keyword matched\n")
}

func TestClassification_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Classification(classify.Classify(nil, table())))
	assert.Empty(t, buf.String())
}

func TestColor(t *testing.T) {
	res := classify.Classify(sample(), table())

	var plain, colored bytes.Buffer
	require.NoError(t, New(&plain, WithColor(false)).Classification(res))
	require.NoError(t, New(&colored, WithColor(true)).Classification(res))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "groceries: -45.67")
}
