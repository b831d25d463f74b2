package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/logging"
	"github.com/roach88/dataspec/internal/meql"
	"github.com/roach88/dataspec/internal/queryir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompileResult is the JSON payload of the compile command.
type CompileResult struct {
	MEQL      string `json:"meql"`
	Hash      string `json:"hash,omitempty"`
	CanCreate bool   `json:"can_create"`
	CanEdit   bool   `json:"can_edit"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <query-file>",
		Short: "Render a query as MEQL",
		Long: `Render a query definition as MEQL text.

The query file may be CUE (.cue, with a top-level "query" field),
query-builder JSON (.json) or YAML (.yaml, .yml). Text output is the raw
MEQL with CRLF line endings; a query with no rules renders nothing.

Examples:
  dataspec compile cohort.json
  dataspec compile cohort.cue --format json
  dataspec compile cohort.yaml -o cohort.meql`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write MEQL to a file")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := logging.From(cmd.Context())

	rule, loadErr := LoadQueryFile(path)
	if loadErr != nil {
		return outputLoadError(formatter, loadErr)
	}

	result, err := compileRule(rule)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error())
	}
	logger.Debug("query rendered",
		zap.String("file", path),
		zap.Int("bytes", len(result.MEQL)),
		zap.Bool("empty", result.MEQL == ""),
	)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.MEQL), 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote MEQL to %s", opts.Output)
	}

	return formatter.Render(result, func(w io.Writer) {
		if opts.Output != "" {
			fmt.Fprintf(w, "✓ Wrote MEQL to %s\n", opts.Output)
			return
		}
		if result.MEQL != "" {
			fmt.Fprintln(w, result.MEQL)
		}
	})
}

// compileRule renders rule and derives its identity and edit state.
func compileRule(rule queryir.Rule) (CompileResult, error) {
	result := CompileResult{MEQL: meql.Compile(rule)}

	switch r := rule.(type) {
	case *queryir.Condition:
		result.CanCreate = r.CanCreate()
		result.CanEdit = r.CanEdit()
	case *queryir.Expression:
		result.CanEdit = true
	default:
		result.CanCreate = true
	}

	if rule != nil {
		hash, err := queryir.Hash(rule)
		if err != nil {
			return CompileResult{}, err
		}
		result.Hash = hash
	}
	return result, nil
}
