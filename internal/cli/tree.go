package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/catalogue"
	"github.com/roach88/dataspec/internal/logging"
	"github.com/roach88/dataspec/internal/selection"
)

// TreeOptions holds flags for the tree command.
type TreeOptions struct {
	*RootOptions
	Element  string   // element to toggle
	Class    string   // class to toggle
	Schema   bool     // toggle the schema
	Value    bool     // value to toggle to
	Selected []string // elements selected before the toggle
}

// TreeResult is the JSON payload of the tree command.
type TreeResult struct {
	Summary  selection.Summary    `json:"summary"`
	Selected []string             `json:"selected"`
	Schema   catalogue.DataSchema `json:"schema"`
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tree <schema-file>",
		Short: "Show the selection state of a schema tree",
		Long: `Load a schema tree from JSON, optionally select some elements and toggle
one entity, then print the resulting selection.

Selecting a class or the schema cascades down to everything beneath it.
Selecting or deselecting an element updates its class, and the class
updates the schema.

Examples:
  dataspec tree schema.json
  dataspec tree schema.json --class c1
  dataspec tree schema.json --selected e1,e2 --element e2 --value=false
  dataspec tree schema.json --schema --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Element, "element", "", "toggle this element")
	cmd.Flags().StringVar(&opts.Class, "class", "", "toggle this class")
	cmd.Flags().BoolVar(&opts.Schema, "schema", false, "toggle the schema")
	cmd.Flags().BoolVar(&opts.Value, "value", true, "value to toggle to")
	cmd.Flags().StringSliceVar(&opts.Selected, "selected", nil, "elements selected before the toggle")
	cmd.MarkFlagsMutuallyExclusive("element", "class", "schema")

	return cmd
}

func runTree(opts *TreeOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := logging.From(cmd.Context())

	schema, err := catalogue.LoadSchemaFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBadInput, err.Error())
	}
	tree := selection.NewTree(schema)

	state := selection.StateOf(schema)
	if len(opts.Selected) > 0 {
		for _, id := range opts.Selected {
			if tree.KindOf(id) != selection.KindElement {
				return formatter.Fail(ExitCommandError, ErrCodeBadInput, fmt.Sprintf("%q is not an element of the schema", id))
			}
			state = tree.SetElementSelected(state, id, true)
		}
		state = tree.Recompute(state)
	}

	switch {
	case opts.Element != "":
		if tree.KindOf(opts.Element) != selection.KindElement {
			return formatter.Fail(ExitCommandError, ErrCodeBadInput, fmt.Sprintf("%q is not an element of the schema", opts.Element))
		}
		state = tree.ToggleElement(state, opts.Element, opts.Value)
	case opts.Class != "":
		if tree.KindOf(opts.Class) != selection.KindClass {
			return formatter.Fail(ExitCommandError, ErrCodeBadInput, fmt.Sprintf("%q is not a class of the schema", opts.Class))
		}
		state = tree.ToggleClass(state, opts.Class, opts.Value)
	case opts.Schema:
		state = tree.ToggleSchema(state, opts.Value)
	}

	result := TreeResult{
		Summary:  tree.Summarize(state),
		Selected: tree.SelectedElements(state),
		Schema:   tree.Project(state),
	}
	if result.Selected == nil {
		result.Selected = []string{}
	}
	logger.Debug("tree evaluated",
		zap.String("schema", tree.SchemaID()),
		zap.Int("selected_elements", result.Summary.SelectedElements),
	)

	return formatter.Render(result, func(w io.Writer) {
		writeTree(w, result.Schema)
		fmt.Fprintf(w, "\n%d/%d classes, %d/%d elements selected\n",
			result.Summary.SelectedClasses, result.Summary.Classes,
			result.Summary.SelectedElements, result.Summary.Elements)
	})
}

func writeTree(w io.Writer, schema catalogue.DataSchema) {
	fmt.Fprintf(w, "%s %s\n", mark(schema.Schema.IsSelected), displayName(schema.Schema.ID, schema.Schema.Label))
	for _, class := range schema.DataClasses {
		fmt.Fprintf(w, "  %s %s\n", mark(class.DataClass.IsSelected), displayName(class.DataClass.ID, class.DataClass.Label))
		for _, elem := range class.DataElements {
			fmt.Fprintf(w, "    %s %s\n", mark(elem.IsSelected), displayName(elem.ID, elem.Label))
		}
	}
}

func mark(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

func displayName(id, label string) string {
	if label == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", label, id)
}
