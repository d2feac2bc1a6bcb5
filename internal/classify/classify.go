// Package classify assigns transactions to spending categories by keyword.
//
// A keyword matches when it occurs, case-folded, as a plain substring of any
// description fragment. The first matching category in table order is the
// candidate; if any later category also matches, the transaction is
// ambiguous and goes to the other bucket instead.
package classify

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/scotia/internal/categories"
	"github.com/cleared-dev/scotia/internal/model"
)

// Match explains where a single transaction was assigned.
type Match struct {
	Category      string // assigned bucket; categories.Other when unmatched or ambiguous
	Keyword       string // keyword that selected the candidate, if any
	Candidate     string // first matching category, empty if none
	ConflictsWith string // later category that made the match ambiguous
}

// Ambiguous reports whether two categories matched.
func (m Match) Ambiguous() bool { return m.ConflictsWith != "" }

func (m Match) String() string {
	switch {
	case m.Ambiguous():
		return fmt.Sprintf("ambiguous: %s (%s) and %s", m.Candidate, m.Keyword, m.ConflictsWith)
	case m.Candidate == "":
		return "no keyword matched"
	default:
		return fmt.Sprintf("matched %q", m.Keyword)
	}
}

// Bucket is one category's share of a classification.
type Bucket struct {
	Name         string
	Transactions []model.Transaction
	Matches      []Match // parallel to Transactions
}

// Totals sums the bucket's transactions.
func (b Bucket) Totals() model.Totals { return model.Summarize(b.Transactions) }

// Result partitions a transaction list across the table's categories plus Other.
type Result struct {
	buckets []Bucket
	matches []Match
	all     []model.Transaction
}

// Classify assigns every transaction to exactly one bucket. Buckets follow
// table order with Other last; within a bucket, input order is kept.
func Classify(txns []model.Transaction, table categories.Table) *Result {
	buckets := make([]Bucket, table.Len()+1)
	index := make(map[string]int, table.Len()+1)
	for i, name := range table.Names() {
		buckets[i] = Bucket{Name: name}
		index[name] = i
	}
	otherIdx := table.Len()
	buckets[otherIdx] = Bucket{Name: categories.Other}
	index[categories.Other] = otherIdx

	matches := make([]Match, len(txns))
	for i, t := range txns {
		m := MatchOne(t, table)
		matches[i] = m
		b := &buckets[index[m.Category]]
		b.Transactions = append(b.Transactions, t)
		b.Matches = append(b.Matches, m)
	}

	return &Result{
		buckets: buckets,
		matches: matches,
		all:     append([]model.Transaction(nil), txns...),
	}
}

// MatchOne classifies a single transaction.
func MatchOne(t model.Transaction, table categories.Table) Match {
	fragments := foldAll(t.Description)

	candidate := -1
	var keyword string
	for i := range table.Len() {
		if kw, ok := matchCategory(table.At(i), fragments); ok {
			candidate, keyword = i, kw
			break
		}
	}
	if candidate < 0 {
		return Match{Category: categories.Other}
	}

	name := table.At(candidate).Name
	for i := candidate + 1; i < table.Len(); i++ {
		if _, ok := matchCategory(table.At(i), fragments); ok {
			return Match{
				Category:      categories.Other,
				Keyword:       keyword,
				Candidate:     name,
				ConflictsWith: table.At(i).Name,
			}
		}
	}
	return Match{Category: name, Keyword: keyword, Candidate: name}
}

// matchCategory returns the first of c's keywords found in any fragment.
func matchCategory(c categories.Category, fragments []string) (string, bool) {
	for _, kw := range c.Keywords {
		needle := fold(kw)
		for _, f := range fragments {
			if strings.Contains(f, needle) {
				return kw, true
			}
		}
	}
	return "", false
}

func fold(s string) string { return strings.ToUpper(s) }

func foldAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fold(s)
	}
	return out
}

// Buckets returns every bucket, including empty ones.
func (r *Result) Buckets() []Bucket { return r.buckets }

// NonEmpty returns buckets holding at least one transaction, in order.
func (r *Result) NonEmpty() []Bucket {
	var out []Bucket
	for _, b := range r.buckets {
		if len(b.Transactions) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Bucket returns the named bucket.
func (r *Result) Bucket(name string) (Bucket, bool) {
	for _, b := range r.buckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Other returns the catch-all bucket.
func (r *Result) Other() Bucket { return r.buckets[len(r.buckets)-1] }

// Matches returns one Match per input transaction, in input order.
func (r *Result) Matches() []Match { return r.matches }

// Totals sums every classified transaction.
func (r *Result) Totals() model.Totals { return model.Summarize(r.all) }

// Len returns the number of classified transactions.
func (r *Result) Len() int { return len(r.all) }
