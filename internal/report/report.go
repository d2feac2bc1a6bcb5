// Package report renders transaction lists for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/cleared-dev/scotia/internal/classify"
	"github.com/cleared-dev/scotia/internal/model"
)

// Writer renders reports to an underlying writer.
type Writer struct {
	w       io.Writer
	heading *color.Color
	explain bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithColor toggles colored headings.
func WithColor(enabled bool) Option {
	return func(rw *Writer) {
		if enabled {
			rw.heading.EnableColor()
		} else {
			rw.heading.DisableColor()
		}
	}
}

// WithExplain adds the matched keyword after each classified transaction.
func WithExplain(enabled bool) Option {
	return func(rw *Writer) { rw.explain = enabled }
}

// New returns a Writer. Color is off unless WithColor(true) is given.
func New(w io.Writer, opts ...Option) *Writer {
	rw := &Writer{w: w, heading: color.New(color.Bold, color.FgCyan)}
	rw.heading.DisableColor()
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// Details writes a date/amount/details table for one ledger file followed by
// its deposit, withdrawal and net totals.
func (rw *Writer) Details(name string, txns []model.Transaction) error {
	if _, err := fmt.Fprintf(rw.w, "\t%s\n", name); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(rw.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tamount\tdetails")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Date.Format(model.DisplayDateFormat), t.Currency(), t.Details())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	return rw.totals(model.Summarize(txns))
}

func (rw *Writer) totals(tot model.Totals) error {
	_, err := fmt.Fprintf(rw.w, "Deposits: %s\nWithdrawals: %s\nTotal Transactions: %s\n",
		tot.Deposits.StringFixed(2), tot.Withdrawals.StringFixed(2), tot.Total.StringFixed(2))
	return err
}

// Classification writes each non-empty bucket as a heading with the bucket
// total, then its transactions indented, then a blank line.
func (rw *Writer) Classification(res *classify.Result) error {
	for _, b := range res.NonEmpty() {
		if _, err := rw.heading.Fprintf(rw.w, "%s: %s", b.Name, b.Totals().Total.StringFixed(2)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(rw.w); err != nil {
			return err
		}
		for i, t := range b.Transactions {
			if _, err := fmt.Fprintf(rw.w, "  %s\n", t); err != nil {
				return err
			}
			if rw.explain && i < len(b.Matches) {
				if _, err := fmt.Fprintf(rw.w, "    %s\n", b.Matches[i]); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(rw.w); err != nil {
			return err
		}
	}
	return nil
}
