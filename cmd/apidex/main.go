// Command apidex is the CLI surface over the search core: it is the
// external collaborator of spec §1 ("the HTTP server, CLI, and editor
// plug-in" are deliberately out of the core's scope) wired up the way the
// teacher's demo/cmd wires a cobra command tree around its core package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/apidex/internal/config"
	"github.com/oxhq/apidex/internal/index"
)

func main() {
	cfg := config.Load()
	idx := index.New()

	root := &cobra.Command{
		Use:   "apidex",
		Short: "Structural search over a crate's public function signatures",
	}

	root.AddCommand(newIngestCmd(idx, cfg))
	root.AddCommand(newSearchCmd(idx))
	root.AddCommand(newScopesCmd(idx))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
