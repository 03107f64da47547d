// Package cli implements the rowmap command.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/semrekkers/rowmap"
	"github.com/semrekkers/rowmap/internal/config"
	"github.com/spf13/cobra"
)

type options struct {
	ConfigPath string
	Driver     string
	DSN        string
	Format     string
	Timeout    time.Duration
	Verbose    bool
}

// NewRootCmd returns the rowmap command with its subcommands.
func NewRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "rowmap",
		Short: "Run read-only SQL queries and print rows as records",
		Long: `rowmap runs a SQL query and prints every row as a record keyed by column name.
All values are printed as text; NULL is kept apart from the empty string.

Examples:
  rowmap query --driver sqlite --dsn app.db "SELECT id, name FROM users"
  rowmap query --config rowmap.yaml --format text "SELECT * FROM users WHERE id = ?" 42
  ROWMAP_DATABASE_DSN=app.db rowmap query "SELECT count(*) AS n FROM users"`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log at debug level")

	queryCmd := &cobra.Command{
		Use:   "query SQL [args...]",
		Short: "Run a query and print its rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, &opts, args)
		},
	}
	queryCmd.Flags().StringVarP(&opts.Driver, "driver", "d", "", "Database driver (sqlite, mysql, postgres)")
	queryCmd.Flags().StringVar(&opts.DSN, "dsn", "", "Data source name")
	queryCmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (json, text)")
	queryCmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Query timeout, 0 means none")

	driversCmd := &cobra.Command{
		Use:   "drivers",
		Short: "List the available database drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drivers := sql.Drivers()
			sort.Strings(drivers)
			for _, name := range drivers {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(driversCmd)
	return rootCmd
}

// Execute runs the rowmap command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Database.Driver = opts.Driver
	}
	if flags.Changed("dsn") {
		cfg.Database.DSN = opts.DSN
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.Format
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func runQuery(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	driver, dsn := cfg.Database.Driver, cfg.Database.DSN
	if !registered(driver) {
		return fmt.Errorf("unknown driver %q", driver)
	}
	if err := checkDSN(driver, dsn); err != nil {
		return err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", driver, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", "err", err)
		}
	}()

	ctx := cmd.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	queryArgs := make([]any, len(args)-1)
	for i, arg := range args[1:] {
		queryArgs[i] = arg
	}

	start := time.Now()
	records, err := rowmap.Query(ctx, db, args[0], queryArgs...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	logger.Debug("query done", "driver", driver, "records", len(records), "elapsed", time.Since(start))

	return writeRecords(cmd.OutOrStdout(), cfg.Output.Format, records)
}
