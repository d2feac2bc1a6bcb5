package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/scotia/internal/buildinfo"
	"github.com/cleared-dev/scotia/internal/categories"
	"github.com/cleared-dev/scotia/internal/config"
	"github.com/cleared-dev/scotia/internal/importer"
	"github.com/cleared-dev/scotia/internal/logging"
	"github.com/cleared-dev/scotia/internal/pipeline"
	"github.com/cleared-dev/scotia/internal/report"
)

// configFile is picked up from the working directory when --config is not given.
const configFile = "scotia.yaml"

var errNoLedgers = errors.New("no ledger files given; use --file or --dir")

type rootOptions struct {
	files         []string
	dir           string
	classify      bool
	filterDebits  bool
	filterCredits bool
	format        string
	explain       bool
	noColor       bool

	// Shared with subcommands.
	configPath     string
	categoriesPath string
	logLevel       string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "scotia",
		Short: "Summarize and classify bank ledger exports",
		Long: `Reads one or more bank ledger exports and prints either a transaction
table with deposit and withdrawal totals, or (with --classify) the
transactions grouped into spending categories by keyword.`,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}

	f := rootCmd.Flags()
	f.StringArrayVarP(&opts.files, "file", "f", nil, "ledger file to read (repeatable)")
	f.StringVar(&opts.dir, "dir", "", "read every .csv and .txt ledger in a directory")
	f.BoolVarP(&opts.classify, "classify", "c", false, "group transactions by category")
	f.BoolVar(&opts.filterDebits, "filter-debits", false, "drop withdrawals")
	f.BoolVar(&opts.filterCredits, "filter-credits", false, "drop deposits")
	f.StringVar(&opts.format, "format", "", "ledger format (default from config, scotia)")
	f.BoolVar(&opts.explain, "explain", false, "with --classify, show why each transaction landed where it did")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored headings")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ./"+configFile+" if present)")
	pf.StringVar(&opts.categoriesPath, "categories", "", "category table YAML (default built-in)")
	pf.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn, error or disabled")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCategoriesCommand(opts))

	return rootCmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	cfg, log, err := opts.settings(cmd)
	if err != nil {
		return err
	}

	reg := importer.DefaultRegistry()
	parser := reg.Get(cfg.Ledger.Format)
	if parser == nil {
		return fmt.Errorf("unknown ledger format %q (known: %s)", cfg.Ledger.Format, strings.Join(reg.Formats(), ", "))
	}

	files := append([]string(nil), opts.files...)
	if opts.dir != "" {
		found, err := importer.Scan(opts.dir)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", opts.dir, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		cmd.SilenceUsage = false
		return errNoLedgers
	}

	popts := pipeline.Options{
		Parser: parser,
		Filter: pipeline.Filter{
			DropDebits:  opts.filterDebits,
			DropCredits: opts.filterCredits,
		},
		Workers: cfg.Ledger.Workers,
	}
	if opts.classify {
		table, err := loadTable(cfg)
		if err != nil {
			return err
		}
		for _, w := range categories.Lint(table) {
			log.Warn().Str("category", w.Category).Str("keyword", w.Keyword).Msg(w.Message)
		}
		popts.Table = &table
	}

	ctx := logging.WithContext(cmd.Context(), log)
	results, err := pipeline.Run(ctx, files, popts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rw := report.New(out,
		report.WithColor(cfg.Output.Color && logging.IsTerminal(out)),
		report.WithExplain(opts.explain),
	)

	if !opts.classify {
		fmt.Fprintln(out, "Transaction Details:")
		for _, r := range results {
			if err := rw.Details(filepath.Base(r.Path), r.Transactions); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}
		return nil
	}

	fmt.Fprintln(out, "Transaction Classification:")
	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(out, "\t%s\n", filepath.Base(r.Path))
		}
		if err := rw.Classification(r.Classification); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// settings resolves configuration in increasing precedence: defaults, config
// file, .env and environment, flags.
func (o *rootOptions) settings(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	nop := zerolog.Nop()

	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nop, err
	}

	cfg := config.Default()
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(configFile); err == nil {
			path = configFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nop, err
		}
		cfg = loaded
		if p := cfg.Categories.Path; p != "" && !filepath.IsAbs(p) {
			cfg.Categories.Path = filepath.Join(filepath.Dir(path), p)
		}
	}

	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, nop, err
	}

	if o.format != "" {
		cfg.Ledger.Format = o.format
	}
	if o.categoriesPath != "" {
		cfg.Categories.Path = o.categoriesPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.noColor {
		cfg.Output.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, nop, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return nil, nop, err
	}
	if path != "" {
		log.Debug().Str("path", path).Msg("loaded config")
	}
	return cfg, log, nil
}

func loadTable(cfg *config.Config) (categories.Table, error) {
	if cfg.Categories.Path == "" {
		return categories.Default(), nil
	}
	return categories.Load(cfg.Categories.Path)
}
