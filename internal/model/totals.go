package model

import "github.com/shopspring/decimal"

// Totals aggregates a list of transactions.
type Totals struct {
	Deposits    decimal.Decimal // sum of positive amounts
	Withdrawals decimal.Decimal // sum of zero or negative amounts
	Total       decimal.Decimal // Deposits + Withdrawals
}

// Summarize computes Totals over txns. An empty list sums to zero.
func Summarize(txns []Transaction) Totals {
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, t := range txns {
		if t.IsDeposit() {
			deposits = deposits.Add(t.Amount)
		} else {
			withdrawals = withdrawals.Add(t.Amount)
		}
	}
	return Totals{
		Deposits:    deposits,
		Withdrawals: withdrawals,
		Total:       deposits.Add(withdrawals),
	}
}
