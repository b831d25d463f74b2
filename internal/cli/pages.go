package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dataspec/internal/paging"
)

// PagesOptions holds flags for the pages command.
type PagesOptions struct {
	*RootOptions
	Current    int
	TotalItems int
	PageSize   int // zero uses paging.default_page_size
	MaxPages   int // zero uses paging.max_page_numbers
}

// PagesResult is the JSON payload of the pages command.
type PagesResult struct {
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Parameters paging.PageParameters `json:"parameters"`
	Numbers    []int                 `json:"numbers"`
}

// NewPagesCommand creates the pages command.
func NewPagesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PagesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Compute paging parameters for a listing",
		Long: `Compute the max/offset parameters for a page of a catalogue listing,
the number of pages, and the window of page numbers to display.

Examples:
  dataspec pages --current 10 --total-items 200
  dataspec pages --current 2 --total-items 45 --page-size 10 --max-pages 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPages(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Current, "current", 1, "current page (1-indexed)")
	cmd.Flags().IntVar(&opts.TotalItems, "total-items", 0, "total number of items in the listing")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "items per page (default from config)")
	cmd.Flags().IntVar(&opts.MaxPages, "max-pages", 0, "page numbers to display (default from config)")

	return cmd
}

func runPages(opts *PagesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg := opts.settings()

	if opts.Current < 1 {
		return formatter.Fail(ExitCommandError, ErrCodeBadInput, fmt.Sprintf("--current must be at least 1, got %d", opts.Current))
	}
	if opts.TotalItems < 0 || opts.PageSize < 0 || opts.MaxPages < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeBadInput, "--total-items, --page-size and --max-pages must not be negative")
	}

	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = cfg.Paging.MaxPageNumbers
	}

	paginator := paging.New(cfg.Paging.DefaultPageSize)
	params := paginator.BuildPageParameters(opts.Current, opts.PageSize)
	totalPages := paging.TotalPages(opts.TotalItems, params.Max)

	result := PagesResult{
		Page:       opts.Current,
		PageSize:   params.Max,
		TotalPages: totalPages,
		Parameters: params,
		Numbers:    paging.PageNumbers(opts.Current, totalPages, maxPages),
	}

	return formatter.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "max=%d offset=%d\n", params.Max, params.Offset)
		fmt.Fprintf(w, "page %d of %d\n", result.Page, result.TotalPages)
		if len(result.Numbers) > 0 {
			nums := make([]string, len(result.Numbers))
			for i, n := range result.Numbers {
				if n == opts.Current {
					nums[i] = "[" + strconv.Itoa(n) + "]"
				} else {
					nums[i] = strconv.Itoa(n)
				}
			}
			fmt.Fprintln(w, strings.Join(nums, " "))
		}
	})
}
