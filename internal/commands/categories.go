package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/scotia/internal/categories"
)

func newCategoriesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect or write category tables",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the active category table in priority order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := opts.table(cmd)
				if err != nil {
					return err
				}
				return runCategoriesList(cmd, table)
			},
		},
		&cobra.Command{
			Use:   "lint",
			Short: "Report keywords that are likely mistakes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := opts.table(cmd)
				if err != nil {
					return err
				}
				return runCategoriesLint(cmd, table)
			},
		},
		newCategoriesInitCommand(),
	)

	return cmd
}

func newCategoriesInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the built-in category table as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesInit(cmd, args[0], force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// table loads the category table the root command would classify with.
func (o *rootOptions) table(cmd *cobra.Command) (categories.Table, error) {
	cfg, _, err := o.settings(cmd)
	if err != nil {
		return categories.Table{}, err
	}
	return loadTable(cfg)
}

func runCategoriesList(cmd *cobra.Command, table categories.Table) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, c := range table.Categories() {
		keywords := "(none)"
		if len(c.Keywords) > 0 {
			keywords = strings.Join(c.Keywords, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, keywords)
	}
	fmt.Fprintf(tw, "%s\t%s\n", categories.Other, "(unmatched or ambiguous)")
	return tw.Flush()
}

func runCategoriesLint(cmd *cobra.Command, table categories.Table) error {
	out := cmd.OutOrStdout()
	warnings := categories.Lint(table)
	if len(warnings) == 0 {
		fmt.Fprintln(out, "no problems found")
		return nil
	}
	for _, w := range warnings {
		fmt.Fprintln(out, w)
	}
	fmt.Fprintf(out, "%d warning(s)\n", len(warnings))
	return nil
}

func runCategoriesInit(cmd *cobra.Command, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}
	if err := categories.Save(path, categories.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d categories to %s\n", categories.Default().Len(), path)
	return nil
}
