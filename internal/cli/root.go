package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/config"
	"github.com/roach88/dataspec/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // config file path; empty reads config.DefaultPath if present
	Database string // overrides store.path

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dataspec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dataspec",
		Short: "dataspec - data specification tooling",
		Long: `Tools for assembling data specifications from a metadata catalogue.

Renders query-builder conditions as MEQL, keeps the element selection list
and the saved cohort and data queries of each specification, and exercises
the hierarchical selection of a schema tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.Load(opts.Config)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading config", err)
			}
			opts.cfg = cfg

			level := cfg.Log.Level
			if opts.Verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return WrapExitError(ExitCommandError, "creating logger", err)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

			logger.Debug("configuration loaded",
				zap.String("config", opts.Config),
				zap.String("store", opts.storePath()),
				zap.Int("default_page_size", cfg.Paging.DefaultPageSize),
			)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default "+config.DefaultPath+" if present)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite store (overrides store.path)")

	// Add subcommands
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewPagesCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// settings returns the loaded configuration, or the defaults when the
// command runs without the root pre-run (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.cfg == nil {
		return config.Defaults()
	}
	return o.cfg
}

// storePath resolves --db over store.path.
func (o *RootOptions) storePath() string {
	if o.Database != "" {
		return o.Database
	}
	return o.settings().Store.Path
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
