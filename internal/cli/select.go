package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/logging"
	"github.com/roach88/dataspec/internal/store"
)

// SelectAddOptions holds flags for select add.
type SelectAddOptions struct {
	*RootOptions
	Label   string
	ClassID string
	ModelID string
}

// SelectChange is the JSON payload of select add, remove and clear.
type SelectChange struct {
	ElementID string `json:"element_id,omitempty"`
	Changed   bool   `json:"changed"`
	Removed   int    `json:"removed,omitempty"`
}

// NewSelectCommand creates the select command group.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Manage the element selection list",
		Long: `Manage the flat list of selected data elements kept in the local store.

Examples:
  dataspec select add e1 --label Age --class c1 --model m1
  dataspec select remove e1
  dataspec select list --format json
  dataspec select clear`,
	}

	cmd.AddCommand(newSelectAddCommand(rootOpts))
	cmd.AddCommand(newSelectRemoveCommand(rootOpts))
	cmd.AddCommand(newSelectClearCommand(rootOpts))
	cmd.AddCommand(newSelectListCommand(rootOpts))

	return cmd
}

func newSelectAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "add <element-id>",
		Short:         "Add an element to the selection list",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Label, "label", "", "element label")
	cmd.Flags().StringVar(&opts.ClassID, "class", "", "owning data class id")
	cmd.Flags().StringVar(&opts.ModelID, "model", "", "data model id")

	return cmd
}

func runSelectAdd(opts *SelectAddOptions, elementID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts.RootOptions, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := st.AddSelection(cmd.Context(), store.SelectionItem{
		ElementID:   elementID,
		Label:       opts.Label,
		DataClassID: opts.ClassID,
		DataModelID: opts.ModelID,
	})
	if err != nil {
		return storeFailure(formatter, cmd, "add selection", err)
	}
	logging.From(cmd.Context()).Info("selection added",
		zap.String("element_id", elementID),
		zap.Bool("changed", added),
	)

	return formatter.Render(SelectChange{ElementID: elementID, Changed: added}, func(w io.Writer) {
		if added {
			fmt.Fprintf(w, "✓ Added %s\n", elementID)
		} else {
			fmt.Fprintf(w, "%s is already selected\n", elementID)
		}
	})
}

func newSelectRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <element-id>",
		Short:         "Remove an element from the selection list",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectRemove(rootOpts, args[0], cmd)
		},
	}
}

func runSelectRemove(opts *RootOptions, elementID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	err = st.RemoveSelection(cmd.Context(), elementID)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("element %s is not selected", elementID))
	}
	if err != nil {
		return storeFailure(formatter, cmd, "remove selection", err)
	}
	logging.From(cmd.Context()).Info("selection removed", zap.String("element_id", elementID))

	return formatter.Render(SelectChange{ElementID: elementID, Changed: true, Removed: 1}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Removed %s\n", elementID)
	})
}

func newSelectClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the selection list",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectClear(rootOpts, cmd)
		},
	}
}

func runSelectClear(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.ClearSelection(cmd.Context())
	if err != nil {
		return storeFailure(formatter, cmd, "clear selection", err)
	}
	logging.From(cmd.Context()).Info("selection cleared", zap.Int("removed", n))

	return formatter.Render(SelectChange{Changed: n > 0, Removed: n}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Cleared %d element(s)\n", n)
	})
}

func newSelectListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the selection in the order elements were added",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectList(rootOpts, cmd)
		},
	}
}

func runSelectList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.ListSelection(cmd.Context())
	if err != nil {
		return storeFailure(formatter, cmd, "list selection", err)
	}

	return formatter.Render(items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "No elements selected.")
			return
		}
		for _, item := range items {
			label := item.Label
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", item.ElementID, label, item.DataClassID)
		}
	})
}
