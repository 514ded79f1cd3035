package diffreport

import (
	"testing"

	"github.com/oxhq/apidex/internal/core"
)

func item(name string, out core.Type) core.IndexedItem {
	return core.IndexedItem{Name: name, Signature: core.FunctionSignature{Output: out}}
}

func TestDiffEmptyWhenUnchanged(t *testing.T) {
	a := []core.IndexedItem{item("push", core.PrimitiveType(core.PrimUnit))}
	b := []core.IndexedItem{item("push", core.PrimitiveType(core.PrimUnit))}
	if d := Diff(a, b); d != "" {
		t.Fatalf("expected empty diff for identical renderings, got %q", d)
	}
}

func TestDiffNonEmptyWhenChanged(t *testing.T) {
	a := []core.IndexedItem{item("push", core.PrimitiveType(core.PrimUnit))}
	b := []core.IndexedItem{item("push", core.Generic("T"))}
	d := Diff(a, b)
	if d == "" {
		t.Fatalf("expected a non-empty diff when a signature changes")
	}
}
