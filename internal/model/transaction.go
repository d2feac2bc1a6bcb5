package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DisplayDateFormat is how dates are rendered in reports, e.g. "Tue Jan 07 2025".
const DisplayDateFormat = "Mon Jan 02 2006"

// detailSep joins description fragments for display.
const detailSep = " | "

// Transaction represents a parsed ledger line. It is never mutated after the
// parser creates it.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // positive = deposit, zero or negative = withdrawal
	Description []string        // quoted fields, in line order
	Raw         string          // source line, kept for diagnostics
}

// IsDeposit reports whether the transaction adds money to the account.
func (t Transaction) IsDeposit() bool {
	return t.Amount.IsPositive()
}

// Currency returns the amount formatted to two decimal places.
func (t Transaction) Currency() string {
	return t.Amount.StringFixed(2)
}

// Details joins the description fragments: "POS PURCHASE | SOBEYS #1234".
func (t Transaction) Details() string {
	return strings.Join(t.Description, detailSep)
}

func (t Transaction) String() string {
	return t.Date.Format(DisplayDateFormat) + " " + t.Currency() + " " + t.Details()
}
