package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/transaction-analyzer/internal/config"
	"github.com/example/transaction-analyzer/internal/logger"
	"github.com/example/transaction-analyzer/internal/source"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

// app is the state shared by every subcommand once the root has loaded
// configuration and data. The logger travels on the command context.
type app struct {
	cfg        *config.Config
	store      *transaction.Store
	sourceName string
}

type rootFlags struct {
	configPath string
	source     string
	logLevel   string
	strict     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "transaction-analyzer",
		Short: "Filter, sort and summarise transactions",
		Long: `Transaction Analyzer loads a set of transactions and answers the questions of a
transaction dashboard: which rows match a filter, in what order, one page at a
time, and what the filtered set adds up to.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a TOML config file")
	pf.StringVar(&flags.source, "source", "", "transactions file (.json or .csv); empty uses the built-in sample")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&flags.strict, "strict", false, "reject malformed filter, sort and page options")

	cmd.AddCommand(
		newListCmd(a),
		newMetricsCmd(a),
		newInsightsCmd(a),
		newOptionsCmd(a),
		newRecategorizeCmd(a),
		newExportCmd(a),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("source") {
		cfg.Source = flags.source
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := logger.WithContext(cmd.Context(), log)
	cmd.SetContext(ctx)

	store, err := source.Open(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	a.cfg = cfg
	a.store = store
	a.sourceName = cfg.Source
	if a.sourceName == "" {
		a.sourceName = source.SampleName
	}
	return nil
}
