package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/transaction-analyzer/internal/export"
	"github.com/example/transaction-analyzer/internal/logger"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

// run evaluates q against the store. Outside strict mode the page number is
// clamped into range first, so a stale page shows the last page instead of
// nothing.
func (a *app) run(ctx context.Context, q transaction.QueryState) (transaction.Result, transaction.QueryState, error) {
	if a.cfg.Strict {
		if err := q.Validate(); err != nil {
			return transaction.Result{}, q, err
		}
	}

	log := logger.FromContext(ctx)
	memo := transaction.NewMemo(a.store)
	res := memo.Run(q)
	if clamped := transaction.ClampPage(q.Page.Number, res.TotalPages); q.Page.Size > 0 && clamped != q.Page.Number {
		log.Debug().Int("requested", q.Page.Number).Int("page", clamped).Msg("page out of range, clamping")
		q = q.WithPage(clamped)
		res = memo.Run(q)
	}

	log.Debug().
		Str("sort", q.Sort.String()).
		Int("page", q.Page.Number).
		Int("matched", res.TotalCount).
		Msg("query evaluated")
	return res, q, nil
}

func (a *app) filtered(f *filterFlags) ([]transaction.Transaction, error) {
	q, err := a.query(f, nil)
	if err != nil {
		return nil, err
	}
	if a.cfg.Strict {
		if err := q.Filter.Validate(); err != nil {
			return nil, err
		}
	}
	return transaction.Filter(a.store.List(), q.Filter), nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		f      filterFlags
		v      viewFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of matching transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.query(&f, &v)
			if err != nil {
				return err
			}
			res, q, err := a.run(cmd.Context(), q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			if err := renderRows(out, res.Items); err != nil {
				return err
			}
			from, to := transaction.Window(q.Page, res.TotalCount)
			fmt.Fprintf(out, "\nShowing %d-%d of %d transactions (page %d of %d)\n",
				from, to, res.TotalCount, q.Page.Number, res.TotalPages)
			return nil
		},
	}
	f.register(cmd.Flags())
	v.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newMetricsCmd(a *app) *cobra.Command {
	var (
		f      filterFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Summarise the matching transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.filtered(&f)
			if err != nil {
				return err
			}
			m := transaction.Aggregate(txs)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			return renderMetrics(cmd.OutOrStdout(), m)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the metrics as JSON")
	return cmd
}

func newInsightsCmd(a *app) *cobra.Command {
	var (
		f      filterFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Break down spending by weekday, category, merchant and recurrence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.filtered(&f)
			if err != nil {
				return err
			}
			in := transaction.Analyze(txs)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), in)
			}
			return renderInsights(cmd.OutOrStdout(), in)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the insights as JSON")
	return cmd
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the categories and accounts available for filtering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, accounts := transaction.FilterOptions(a.store.List())
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CATEGORIES")
			for _, c := range categories {
				fmt.Fprintf(tw, "  %s\n", c)
			}
			fmt.Fprintln(tw, "ACCOUNTS")
			for _, acc := range accounts {
				fmt.Fprintf(tw, "  %s\n", acc)
			}
			return tw.Flush()
		},
	}
}

func newRecategorizeCmd(a *app) *cobra.Command {
	var (
		ids      []string
		category string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "recategorize",
		Short: "Set the category of one or more transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" {
				return fmt.Errorf("--category must not be empty")
			}
			changed := a.store.Recategorize(ids, category)
			log := logger.FromContext(cmd.Context())
			log.Info().Strs("ids", ids).Str("category", category).Int("changed", changed).Msg("recategorized transactions")
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d selected transactions to %q\n", changed, len(ids), category)

			if outPath == "" {
				return nil
			}
			return a.writeExport(cmd.Context(), outPath, export.FormatJSON, a.store.List())
		},
	}
	cmd.Flags().StringSliceVar(&ids, "id", nil, "transaction id to update (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&outPath, "out", "", "write the updated collection to this JSON file")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		f       filterFlags
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matching transactions as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Export.Format
			}
			fmtName, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			txs, err := a.filtered(&f)
			if err != nil {
				return err
			}

			if outPath == "" {
				return export.Write(cmd.OutOrStdout(), fmtName, txs, export.Options{Source: a.sourceName})
			}
			return a.writeExport(cmd.Context(), outPath, fmtName, txs)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "", "csv or json (default from config)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	return cmd
}

func (a *app) writeExport(ctx context.Context, path string, format export.Format, txs []transaction.Transaction) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}

	if err := export.Write(file, format, txs, export.Options{Source: a.sourceName}); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			return fmt.Errorf("%w (close error: %w)", err, closeErr)
		}
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().Str("file", path).Str("format", string(format)).Int("count", len(txs)).Msg("exported transactions")
	return nil
}
