// Package pipeline runs parse, filter, sort and classify for each ledger file.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/scotia/internal/categories"
	"github.com/cleared-dev/scotia/internal/classify"
	"github.com/cleared-dev/scotia/internal/importer"
	"github.com/cleared-dev/scotia/internal/logging"
	"github.com/cleared-dev/scotia/internal/model"
)

// Filter selects which transactions survive parsing.
type Filter struct {
	DropDebits  bool // remove withdrawals (amount <= 0)
	DropCredits bool // remove deposits (amount > 0)
}

// Apply returns the transactions f keeps. The input is not modified.
func (f Filter) Apply(txns []model.Transaction) []model.Transaction {
	if !f.DropDebits && !f.DropCredits {
		return txns
	}
	var kept []model.Transaction
	for _, t := range txns {
		if t.IsDeposit() && f.DropCredits {
			continue
		}
		if !t.IsDeposit() && f.DropDebits {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// Options configures a Run.
type Options struct {
	Parser  importer.Parser
	Filter  Filter
	Table   *categories.Table // nil skips classification
	Workers int               // max files in flight; <1 means one
}

// FileResult is the outcome for one ledger file.
type FileResult struct {
	Path           string
	Transactions   []model.Transaction // date order
	Classification *classify.Result    // nil unless Options.Table was set
}

// Totals sums the file's transactions.
func (r FileResult) Totals() model.Totals { return model.Summarize(r.Transactions) }

// ErrNoParser is returned when Options.Parser is nil.
var ErrNoParser = errors.New("no ledger parser configured")

// Run processes files concurrently and returns results in the order of files.
// The first failure cancels files not yet started and is returned.
func Run(ctx context.Context, files []string, opts Options) ([]FileResult, error) {
	if opts.Parser == nil {
		return nil, ErrNoParser
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := processFile(ctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func processFile(ctx context.Context, path string, opts Options) (FileResult, error) {
	log := logging.FromContext(ctx).With().
		Str("job", uuid.NewString()).
		Str("file", path).
		Logger()
	log.Debug().Str("format", opts.Parser.Format()).Msg("parsing ledger")

	txns, err := importer.ParseFile(opts.Parser, path)
	if err != nil {
		log.Error().Err(err).Msg("parse failed")
		return FileResult{}, fmt.Errorf("processing %s: %w", path, err)
	}
	parsed := len(txns)

	txns = opts.Filter.Apply(txns)
	importer.SortByDate(txns)

	res := FileResult{Path: path, Transactions: txns}
	if opts.Table != nil {
		res.Classification = classify.Classify(txns, *opts.Table)
		log.Debug().
			Int("other", len(res.Classification.Other().Transactions)).
			Msg("classified")
	}

	log.Info().Int("parsed", parsed).Int("kept", len(txns)).Msg("ledger processed")
	return res, nil
}
