// Package index implements the crate-scoped corpus described in spec §4.3:
// ingestion of documentation-tool JSON into core.IndexedItem records, plus
// the crate/scope registry of spec §3 and §4.3 (list_crates, define_set,
// resolve_scope).
package index

import "encoding/json"

// Document is the subset of a rustdoc-JSON-shaped documentation-tool
// export that apidex relies on (spec §6.4: "the only fields relied upon
// are item kind, item name, item path, function input/output type tree,
// and a link/URL field. Fields not understood are ignored" — every other
// field of a real rustdoc JSON document is simply absent from this struct
// and silently dropped by encoding/json).
type Document struct {
	FormatVersion int                    `json:"format_version"`
	Index         map[string]DocItem     `json:"index"`
	Paths         map[string]PathSummary `json:"paths"`
}

// PathSummary gives an item's breadcrumb and external link.
type PathSummary struct {
	Path []string `json:"path"`
	Link string   `json:"link"`
}

// DocItem is one entry of Document.Index.
type DocItem struct {
	Name  string   `json:"name"`
	Docs  string   `json:"docs"`
	Inner InnerDoc `json:"inner"`
}

// InnerDoc carries the kind-specific payload. Exactly one of Function,
// Method, AssocFn is populated for a function-shaped item; any other kind
// (struct, trait, module, ...) leaves all three nil and is skipped during
// extraction (spec §4.3 "Non-function items are skipped").
type InnerDoc struct {
	Function *FunctionDoc `json:"function,omitempty"`
	Method   *FunctionDoc `json:"method,omitempty"`
	AssocFn  *FunctionDoc `json:"assoc_fn,omitempty"`
}

// FunctionDoc is a function-shaped item's declared signature.
type FunctionDoc struct {
	Decl DeclDoc `json:"decl"`
}

// DeclDoc is the input/output type tree of a function declaration.
type DeclDoc struct {
	Inputs []InputDoc `json:"inputs"`
	Output *TypeDoc   `json:"output"` // nil means an implicit unit return
}

// InputDoc names one parameter and its type.
type InputDoc struct {
	Name string  `json:"name"`
	Type TypeDoc `json:"type"`
}

// TypeDoc is a single JSON-tagged type node. Exactly one field is
// populated, mirroring rustdoc JSON's internally-tagged Type enum;
// whichever variant isn't one of the three recognized here is treated as
// an unsupported node kind and translated lossily (spec §4.3).
type TypeDoc struct {
	Primitive    *string          `json:"primitive,omitempty"`
	Generic      *string          `json:"generic,omitempty"`
	ResolvedPath *ResolvedPathDoc `json:"resolved_path,omitempty"`

	// Raw carries the original JSON for any other variant (tuple,
	// reference, slice, impl-trait, trait-object, higher-ranked,
	// function-pointer, ...) purely for round-tripping/diagnostics; it is
	// never interpreted, only dropped to core.Unknown by extraction.
	Raw json.RawMessage `json:"-"`
}

// ResolvedPathDoc is a concrete named type: a "::"-separated path plus
// generic arguments.
type ResolvedPathDoc struct {
	Path string    `json:"path"` // e.g. "std::option::Option"
	Args []TypeDoc `json:"args"`
}

// UnmarshalJSON captures the raw bytes alongside the tagged-field decode so
// unrecognized variants are still distinguishable from a genuinely empty
// object.
func (t *TypeDoc) UnmarshalJSON(data []byte) error {
	type alias TypeDoc
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = TypeDoc(a)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// functionDoc returns a DocItem's function-shaped payload and its kind tag
// ("fn", "method" or "assoc_fn"), and whether it carries one at all.
func (d DocItem) functionDoc() (*FunctionDoc, string, bool) {
	switch {
	case d.Inner.Function != nil:
		return d.Inner.Function, "fn", true
	case d.Inner.Method != nil:
		return d.Inner.Method, "method", true
	case d.Inner.AssocFn != nil:
		return d.Inner.AssocFn, "assoc_fn", true
	default:
		return nil, "", false
	}
}
