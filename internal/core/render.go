package core

import "strings"

// RenderSignature renders a deterministic one-line form of name plus
// signature, e.g. "fn unwrap(Option<T>) -> T". It is used both to populate
// a search Hit's display signature and, via internal/diffreport, to diff
// two renderings of the same item across a re-ingest.
func RenderSignature(name string, sig FunctionSignature) string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(name)
	b.WriteString("(")
	for i, arg := range sig.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		if arg.HasName {
			b.WriteString(arg.Name)
			b.WriteString(": ")
		}
		arg.Type.writeTo(&b)
	}
	b.WriteString(") -> ")
	sig.Output.writeTo(&b)
	return b.String()
}
