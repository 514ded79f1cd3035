package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/apidex/internal/index"
	"github.com/oxhq/apidex/internal/search"
)

// newSearchCmd builds the "search" subcommand: flags map directly onto
// search.Request (spec §6.2), and zero-value flags fall through to
// Request.Normalize's defaults.
func newSearchCmd(idx *index.Index) *cobra.Command {
	var scope string
	var limit int
	var threshold float64

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the index for function signatures structurally similar to a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := search.Request{
				Query:     args[0],
				Scope:     scope,
				Limit:     limit,
				Threshold: threshold,
			}
			hits, err := search.Search(idx, req)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, h := range hits {
				loc := strings.Join(h.Path, "::")
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  (%s)\n", h.Distance, h.Signature, loc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "scope to search (\"crate:name\", \"crate:name:version\", \"set:name\")")
	cmd.Flags().IntVar(&limit, "limit", search.DefaultLimit, "maximum number of hits to return")
	cmd.Flags().Float64Var(&threshold, "threshold", search.DefaultThreshold, "maximum normalized distance score to include, in [0,1]")

	return cmd
}
