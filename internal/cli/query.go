package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/catalogue"
	"github.com/roach88/dataspec/internal/logging"
	"github.com/roach88/dataspec/internal/queryir"
	"github.com/roach88/dataspec/internal/store"
)

// QuerySaveOptions holds flags for query save.
type QuerySaveOptions struct {
	*RootOptions
	Spec string
	Type string
	ID   string
}

// QuerySaveResult is the JSON payload of query save.
type QuerySaveResult struct {
	Changed bool   `json:"changed"`
	ID      string `json:"id"`
	Hash    string `json:"hash"`
	MEQL    string `json:"meql"`
}

// NewQueryCommand creates the query command group.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Manage saved specification queries",
		Long: `Save, show, list and delete the cohort and data queries of data
specifications. Each specification holds at most one query per type.

Examples:
  dataspec query save cohort.json --spec spec-1 --type cohort
  dataspec query show 6f1c...
  dataspec query list --spec spec-1
  dataspec query delete 6f1c...`,
	}

	cmd.AddCommand(newQuerySaveCommand(rootOpts))
	cmd.AddCommand(newQueryShowCommand(rootOpts))
	cmd.AddCommand(newQueryListCommand(rootOpts))
	cmd.AddCommand(newQueryDeleteCommand(rootOpts))

	return cmd
}

func newQuerySaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuerySaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "save <query-file>",
		Short:         "Save a query file for a data specification",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "data specification id (required)")
	cmd.Flags().StringVar(&opts.Type, "type", string(catalogue.QueryCohort), "query type: cohort or data")
	cmd.Flags().StringVar(&opts.ID, "id", "", "query id (defaults to the stored id or a new UUID)")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

func runQuerySave(opts *QuerySaveOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := logging.From(cmd.Context())

	queryType := catalogue.QueryType(opts.Type)
	if !queryType.Valid() {
		return formatter.Fail(ExitCommandError, ErrCodeBadInput, fmt.Sprintf("invalid query type %q (must be cohort or data)", opts.Type))
	}

	rule, loadErr := LoadQueryFile(path)
	if loadErr != nil {
		return outputLoadError(formatter, loadErr)
	}

	st, err := openStore(opts.RootOptions, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, changed, err := st.SaveQuery(cmd.Context(), catalogue.SpecificationQuery{
		ID:                  opts.ID,
		DataSpecificationID: opts.Spec,
		Type:                queryType,
		Condition:           asCondition(rule),
	})
	if err != nil {
		return storeFailure(formatter, cmd, "save query", err)
	}
	logger.Info("query saved",
		zap.String("id", saved.ID),
		zap.String("spec", saved.DataSpecificationID),
		zap.String("type", string(saved.Type)),
		zap.Bool("changed", changed),
	)

	result := QuerySaveResult{Changed: changed, ID: saved.ID, Hash: saved.Hash, MEQL: saved.MEQL}
	return formatter.Render(result, func(w io.Writer) {
		if changed {
			fmt.Fprintf(w, "✓ Saved %s query %s\n", saved.Type, saved.ID)
		} else {
			fmt.Fprintf(w, "Query %s unchanged\n", saved.ID)
		}
	})
}

// asCondition returns the root condition to store for a loaded rule. A
// bare expression is wrapped in an "and" condition.
func asCondition(rule queryir.Rule) *queryir.Condition {
	switch r := rule.(type) {
	case *queryir.Condition:
		return r
	case *queryir.Expression:
		return queryir.NewCondition(queryir.And, r)
	default:
		return &queryir.Condition{Connective: queryir.And}
	}
}

func newQueryShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <query-id>",
		Short:         "Show a saved query and its MEQL",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryShow(rootOpts, args[0], cmd)
		},
	}
}

func runQueryShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.GetQuery(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("query %s not found", id))
	}
	if err != nil {
		return storeFailure(formatter, cmd, "get query", err)
	}

	return formatter.Render(saved, func(w io.Writer) {
		fmt.Fprintf(w, "ID:    %s\n", saved.ID)
		fmt.Fprintf(w, "Spec:  %s\n", saved.DataSpecificationID)
		fmt.Fprintf(w, "Type:  %s\n", saved.Type)
		fmt.Fprintf(w, "Hash:  %s\n", saved.Hash)
		if saved.MEQL != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, saved.MEQL)
		}
	})
}

func newQueryListCommand(rootOpts *RootOptions) *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List saved queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryList(rootOpts, spec, cmd)
		},
	}

	cmd.Flags().StringVar(&spec, "spec", "", "only list queries of this data specification")

	return cmd
}

func runQueryList(opts *RootOptions, spec string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	queries, err := st.ListQueries(cmd.Context(), spec)
	if err != nil {
		return storeFailure(formatter, cmd, "list queries", err)
	}

	return formatter.Render(queries, func(w io.Writer) {
		if len(queries) == 0 {
			fmt.Fprintln(w, "No saved queries.")
			return
		}
		for _, q := range queries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.ID, q.DataSpecificationID, q.Type, shortHash(q.Hash))
		}
	})
}

func newQueryDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <query-id>",
		Short:         "Delete a saved query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryDelete(rootOpts, args[0], cmd)
		},
	}
}

func runQueryDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	err = st.DeleteQuery(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("query %s not found", id))
	}
	if err != nil {
		return storeFailure(formatter, cmd, "delete query", err)
	}
	logging.From(cmd.Context()).Info("query deleted", zap.String("id", id))

	return formatter.Render(map[string]string{"deleted": id}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Deleted query %s\n", id)
	})
}

// shortHash trims a hex hash for table output.
func shortHash(hash string) string {
	const keep = 12
	if len(hash) <= keep {
		return hash
	}
	return hash[:keep]
}
