package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/oxhq/apidex/internal/config"
	"github.com/oxhq/apidex/internal/diffreport"
	"github.com/oxhq/apidex/internal/index"
	"github.com/oxhq/apidex/internal/store"
)

// newIngestCmd builds the "ingest" subcommand, grounded on demo/cmd/main.go's
// flag-then-RunE cobra shape. A crate directory is walked with a doublestar
// glob (spec leaves file discovery to the caller; the teacher's filewalker
// uses the same library for its own tree walks), each matching file is
// ingested as one crate version, and a replace of an existing version is
// reported as a unified diff of rendered signatures.
func newIngestCmd(idx *index.Index, cfg config.Config) *cobra.Command {
	var version string
	var pattern string
	var useCache bool

	cmd := &cobra.Command{
		Use:   "ingest <crate-name> <dir>",
		Short: "Ingest a crate's documentation-tool JSON into the index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, dir := args[0], args[1]

			matches, err := doublestar.Glob(os.DirFS(dir), pattern)
			if err != nil {
				return fmt.Errorf("globbing %s in %s: %w", pattern, dir, err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("no files matched %s under %s", pattern, dir)
			}

			var st *store.Store
			if useCache {
				st, err = store.Connect(cfg.StoreDSN, cfg.LibSQLAuthToken, false)
				if err != nil {
					return fmt.Errorf("connecting to store: %w", err)
				}
				defer st.Close()
			}

			for _, rel := range matches {
				path := filepath.Join(dir, rel)
				blob, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}

				before := idx.Items(name + ":" + version)

				n, err := idx.Ingest(name, version, blob)
				if err != nil {
					return fmt.Errorf("ingesting %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ingested %s@%s: %d items from %s\n", name, version, n, rel)

				if len(before) > 0 {
					after := idx.Items(name + ":" + version)
					if d := diffreport.Diff(before, after); d != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "changes for %s@%s:\n%s\n", name, version, d)
					}
				}

				if st != nil {
					if err := st.Put(name, version, blob, n); err != nil {
						return fmt.Errorf("caching %s@%s: %w", name, version, err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "0.0.0", "crate version to ingest under")
	cmd.Flags().StringVar(&pattern, "glob", "**/*.json", "doublestar glob for documentation JSON files")
	cmd.Flags().BoolVar(&useCache, "cache", false, "also persist the raw blob to the ingestion cache")

	return cmd
}
