package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/scotia/internal/model"
)

// ErrNoDescription is returned for a ledger line with no quoted fields.
var ErrNoDescription = errors.New("no quoted description fields")

// ScotiaParser parses Scotiabank account exports. A line looks like
//
//	12/31/2024,-45.67,"-","POS PURCHASE","SOBEYS #1234   MONCTON NB"
//
// Quoted fields become description fragments; the first two unquoted cells
// are the date and the amount.
type ScotiaParser struct{}

var (
	scotiaDateFormats = []string{"1/2/2006", "2006-01-02"}
	quotedField       = regexp.MustCompile(`"[^"]*"`)
	whitespaceRun     = regexp.MustCompile(`\s\s+`)
)

// Format returns the parser name.
func (p *ScotiaParser) Format() string { return "scotia" }

// Parse reads a Scotiabank export. Blank lines are skipped. Transactions are
// returned in file order.
func (p *ScotiaParser) Parse(r io.Reader) ([]model.Transaction, error) {
	sc := bufio.NewScanner(r)

	var txns []model.Transaction
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		txn, err := parseScotiaLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		txns = append(txns, txn)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading scotia ledger: %w", err)
	}
	return txns, nil
}

func parseScotiaLine(line string) (model.Transaction, error) {
	quoted := quotedField.FindAllString(line, -1)
	if len(quoted) == 0 {
		return model.Transaction{}, ErrNoDescription
	}
	desc := make([]string, len(quoted))
	for i, q := range quoted {
		desc[i] = whitespaceRun.ReplaceAllString(strings.Trim(q, `"`), " ")
	}

	var cells []string
	for _, c := range strings.Split(quotedField.ReplaceAllString(line, ""), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) < 2 {
		return model.Transaction{}, fmt.Errorf("expected date and amount, got %d cells", len(cells))
	}

	date, err := parseScotiaDate(cells[0])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(cells[1])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", cells[1], err)
	}

	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Description: desc,
		Raw:         line,
	}, nil
}

func parseScotiaDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range scotiaDateFormats {
		d, err := time.Parse(layout, s)
		if err == nil {
			return d, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: %w", s, firstErr)
}
