package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/networth/internal/buildinfo"
	"github.com/cleared-dev/networth/internal/config"
	"github.com/cleared-dev/networth/internal/dates"
	"github.com/cleared-dev/networth/internal/logger"
	"github.com/cleared-dev/networth/internal/networth"
)

type rootOptions struct {
	configPath string
	ledgerPath string
	ledgerFile string
	logLevel   string
	summary    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "networth <start_date> <end_date>",
		Short: "Daily net worth series from ledger balances",
		Long: "Runs \"ledger bal Assets Liabilities -X $ --real\" once per day from start_date to\n" +
			"end_date inclusive and writes the last line of each report as CSV to stdout.\n" +
			"Dates are in YYYY-MM-DD format.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeries(cmd, args[0], args[1], opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	flags.StringVar(&opts.ledgerPath, "ledger", "", "ledger executable")
	flags.StringVarP(&opts.ledgerFile, "file", "f", "", "journal file passed to ledger")
	flags.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level on stderr (debug, info, warn, error)")
	flags.BoolVar(&opts.summary, "summary", false, "print the change over the range to stderr")

	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

func runSeries(cmd *cobra.Command, startArg, endArg string, opts rootOptions) error {
	start, err := dates.Parse(startArg)
	if err != nil {
		return err
	}
	end, err := dates.Parse(endArg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Log.Level)
	cli := cfg.CLI()
	cli.Logger = log

	log.Info().
		Str("start", dates.Format(start)).
		Str("end", dates.Format(end)).
		Str("ledger", cli.Path).
		Msg("building net worth series")

	observers := []networth.Observer{
		func(s networth.Sample) {
			log.Debug().Str("date", dates.Format(s.Date)).Str("balance", s.Balance).Msg("row")
		},
	}
	var sum networth.Summary
	if opts.summary {
		observers = append(observers, sum.Observe)
	}

	if err := networth.Run(cmd.Context(), cmd.OutOrStdout(), networth.NewFetcher(cli), start, end, observers...); err != nil {
		return err
	}

	if opts.summary {
		return sum.Write(cmd.ErrOrStderr())
	}
	return nil
}

// loadConfig resolves settings with precedence flags > environment > file > defaults.
func loadConfig(cmd *cobra.Command, opts rootOptions) (*config.Config, error) {
	cfg := config.Default()

	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("ledger") {
		cfg.Ledger.Path = opts.ledgerPath
	}
	if flags.Changed("file") {
		cfg.Ledger.File = opts.ledgerFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
