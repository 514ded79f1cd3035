// Package diffreport renders a unified diff between the rendered
// signatures of two ingests of the same crate name, so `apidex ingest` can
// log what changed when it replaces an existing (name, version) entry.
package diffreport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/apidex/internal/core"
)

// Diff returns a unified diff of the two item lists' rendered signatures,
// keyed by name so reordering within a crate doesn't show up as noise.
// Grounded on the teacher's providers/base/provider.go generateDiff
// (difflib.UnifiedDiff + graceful fallback on diff failure).
func Diff(oldItems, newItems []core.IndexedItem) string {
	oldLines := renderedLines(oldItems)
	newLines := renderedLines(newItems)
	if strings.Join(oldLines, "\n") == strings.Join(newLines, "\n") {
		return ""
	}

	d := difflib.UnifiedDiff{
		A:        oldLines,
		B:        newLines,
		FromFile: "previous ingest",
		ToFile:   "new ingest",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return fmt.Sprintf("--- previous ingest\n+++ new ingest\n@@ changes @@\n%d items -> %d items",
			len(oldItems), len(newItems))
	}
	return text
}

func renderedLines(items []core.IndexedItem) []string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = core.RenderSignature(it.Name, it.Signature)
	}
	sort.Strings(lines)
	return lines
}
