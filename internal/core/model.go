// Package core contains the pure, language-agnostic data model shared by
// the query parser, the index, and the similarity engine. The hierarchy is
// closed: every operation over it dispatches on the Type's Kind tag rather
// than through interface polymorphism.
package core

import "strings"

// Kind tags the variant of a Type.
type Kind int

const (
	// KindPrimitive is a built-in scalar (bool, u32, str, ...).
	KindPrimitive Kind = iota
	// KindGeneric is a free parameter: a query-side placeholder or a
	// declared generic of the enclosing indexed item.
	KindGeneric
	// KindResolved is a concrete named type, possibly with generic args.
	KindResolved
	// KindUnknown is a wildcard meaning "any type": written as "_" in a
	// query, and produced by extraction for unsupported indexed type nodes.
	KindUnknown
)

// Primitive enumerates the scalar type names the model understands.
type Primitive string

const (
	PrimBool   Primitive = "bool"
	PrimChar   Primitive = "char"
	PrimStr    Primitive = "str"
	PrimU8     Primitive = "u8"
	PrimU16    Primitive = "u16"
	PrimU32    Primitive = "u32"
	PrimU64    Primitive = "u64"
	PrimU128   Primitive = "u128"
	PrimUsize  Primitive = "usize"
	PrimI8     Primitive = "i8"
	PrimI16    Primitive = "i16"
	PrimI32    Primitive = "i32"
	PrimI64    Primitive = "i64"
	PrimI128   Primitive = "i128"
	PrimIsize  Primitive = "isize"
	PrimF32    Primitive = "f32"
	PrimF64    Primitive = "f64"
	PrimNever  Primitive = "never"
	PrimUnit   Primitive = "unit"
)

// IsPrimitiveName reports whether name is a recognized primitive type name.
func IsPrimitiveName(name string) bool {
	switch Primitive(name) {
	case PrimBool, PrimChar, PrimStr,
		PrimU8, PrimU16, PrimU32, PrimU64, PrimU128, PrimUsize,
		PrimI8, PrimI16, PrimI32, PrimI64, PrimI128, PrimIsize,
		PrimF32, PrimF64, PrimNever, PrimUnit:
		return true
	default:
		return false
	}
}

// Segment is one element of a Resolved type's path: a name and its ordered
// generic arguments (empty when the segment carries no generics).
type Segment struct {
	Name string
	Args []Type
}

// Type is the tagged variant described in spec §3. Only the fields that
// apply to Kind are meaningful; callers dispatch on Kind first.
type Type struct {
	Kind Kind

	// KindPrimitive
	Prim Primitive

	// KindGeneric
	GenericName string

	// KindResolved: ordered path, last segment names the type.
	Path []Segment
}

// Unknown constructs the wildcard type.
func Unknown() Type { return Type{Kind: KindUnknown} }

// Generic constructs a free-parameter type.
func Generic(name string) Type { return Type{Kind: KindGeneric, GenericName: name} }

// PrimitiveType constructs a scalar type.
func PrimitiveType(p Primitive) Type { return Type{Kind: KindPrimitive, Prim: p} }

// Resolved constructs a concrete named type from an ordered path.
func Resolved(path []Segment) Type { return Type{Kind: KindResolved, Path: path} }

// LastSegment returns the final path segment of a Resolved type; callers
// must only call this when Kind == KindResolved (spec invariant: every
// Resolved type has at least one segment).
func (t Type) LastSegment() Segment { return t.Path[len(t.Path)-1] }

// PrefixNames returns the names of every path segment except the last.
func (t Type) PrefixNames() []string {
	if len(t.Path) <= 1 {
		return nil
	}
	names := make([]string, 0, len(t.Path)-1)
	for _, seg := range t.Path[:len(t.Path)-1] {
		names = append(names, seg.Name)
	}
	return names
}

// Equal reports structural equality. The similarity engine (Match,
// typeDistance) does not call it.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Prim == o.Prim
	case KindGeneric:
		return t.GenericName == o.GenericName
	case KindUnknown:
		return true
	case KindResolved:
		if len(t.Path) != len(o.Path) {
			return false
		}
		for i, seg := range t.Path {
			other := o.Path[i]
			if seg.Name != other.Name || len(seg.Args) != len(other.Args) {
				return false
			}
			for j, arg := range seg.Args {
				if !arg.Equal(other.Args[j]) {
					return false
				}
			}
		}
		return true
	}
	return false
}

// String renders a deterministic, stable textual form for diagnostics.
func (t Type) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t Type) writeTo(b *strings.Builder) {
	switch t.Kind {
	case KindUnknown:
		b.WriteString("_")
	case KindGeneric:
		b.WriteString(t.GenericName)
	case KindPrimitive:
		b.WriteString(string(t.Prim))
	case KindResolved:
		for i, seg := range t.Path {
			if i > 0 {
				b.WriteString("::")
			}
			b.WriteString(seg.Name)
			if len(seg.Args) > 0 {
				b.WriteString("<")
				for j, arg := range seg.Args {
					if j > 0 {
						b.WriteString(", ")
					}
					arg.writeTo(b)
				}
				b.WriteString(">")
			}
		}
	}
}

// Argument bundles an optional parameter name with a Type. Names never
// affect matching; they exist for display and for "name:" query prefixes.
type Argument struct {
	Name    string // empty when absent
	HasName bool
	Type    Type
}

// FunctionSignature is an ordered input list plus an output type. Arity is
// part of the shape.
type FunctionSignature struct {
	Inputs []Argument
	Output Type
}

// Query is a parsed query: an optional function-name pattern plus a
// signature. A query with no explicit return uses Unknown for Output.
type Query struct {
	Name      string
	HasName   bool
	Signature FunctionSignature
}

// ItemKind classifies an indexed function-shaped item.
type ItemKind int

const (
	FreeFunction ItemKind = iota
	Method
	AssocFunction
)

func (k ItemKind) String() string {
	switch k {
	case FreeFunction:
		return "fn"
	case Method:
		return "method"
	case AssocFunction:
		return "assoc_fn"
	default:
		return "unknown"
	}
}

// IndexedItem is one searchable function-shaped entry extracted from a
// crate's documentation JSON.
type IndexedItem struct {
	ID        int
	Name      string
	Path      []string // breadcrumb of module/type segments, not including Name
	Link      string
	Docstring string
	Signature FunctionSignature
	Kind      ItemKind
}

// CrateIndex is a crate's ingested items, kept in the order Ingest appended
// them; that order is relied upon for tie-breaking (spec §3, §4.5). Ingest
// orders items by their JSON index key compared as strings, not by their
// position in the source document.
type CrateIndex struct {
	Name    string
	Version string
	Items   []IndexedItem
}
