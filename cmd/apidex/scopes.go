package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/apidex/internal/index"
)

// newScopesCmd builds the "scopes" subcommand, listing every resolvable
// scope string for the currently ingested crates and defined sets (spec
// §6.3).
func newScopesCmd(idx *index.Index) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List every crate: and set: scope currently resolvable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range idx.ListScopes() {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
