package index

import (
	"strings"

	"github.com/oxhq/apidex/internal/core"
)

// translateType implements the extraction rules of spec §4.3: primitive ->
// Primitive, generic parameter reference -> Generic, resolved path with
// args -> Resolved (recursively translated), anything else -> Unknown.
func translateType(t TypeDoc) core.Type {
	switch {
	case t.Primitive != nil:
		return core.PrimitiveType(core.Primitive(*t.Primitive))
	case t.Generic != nil:
		return core.Generic(*t.Generic)
	case t.ResolvedPath != nil:
		return translateResolvedPath(*t.ResolvedPath)
	default:
		// Tuple, reference, slice, impl-trait, trait-object,
		// higher-ranked, function-pointer, or any other node this
		// ingester does not model: deliberately lossy (spec §4.3, §9).
		return core.Unknown()
	}
}

func translateResolvedPath(rp ResolvedPathDoc) core.Type {
	names := strings.Split(rp.Path, "::")
	args := make([]core.Type, len(rp.Args))
	for i, a := range rp.Args {
		args[i] = translateType(a)
	}

	segs := make([]core.Segment, len(names))
	for i, n := range names {
		if i == len(names)-1 {
			segs[i] = core.Segment{Name: n, Args: args}
		} else {
			segs[i] = core.Segment{Name: n}
		}
	}
	return core.Resolved(segs)
}

// translateSignature builds a core.FunctionSignature from a DeclDoc. A nil
// Output means an implicit unit return.
func translateSignature(decl DeclDoc) core.FunctionSignature {
	inputs := make([]core.Argument, len(decl.Inputs))
	for i, in := range decl.Inputs {
		inputs[i] = core.Argument{Name: in.Name, HasName: in.Name != "", Type: translateType(in.Type)}
	}
	output := core.PrimitiveType(core.PrimUnit)
	if decl.Output != nil {
		output = translateType(*decl.Output)
	}
	return core.FunctionSignature{Inputs: inputs, Output: output}
}

func itemKindOf(tag string) core.ItemKind {
	switch tag {
	case "method":
		return core.Method
	case "assoc_fn":
		return core.AssocFunction
	default:
		return core.FreeFunction
	}
}
