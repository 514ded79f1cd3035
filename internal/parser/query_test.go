package parser

import (
	"testing"

	"github.com/oxhq/apidex/internal/core"
)

func TestParseAcceptedForms(t *testing.T) {
	cases := []string{
		"fn f(T) -> T",
		"fn (Option<Result<T, E>>) -> Result<Option<T>, E>",
		"(i32, i32) -> i32",
		"fn len(&self) -> usize",
	}
	for _, src := range cases {
		if _, err := New().Parse(src); err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", src, err)
		}
	}
}

func TestParseNameOnlyWhenFollowedByParen(t *testing.T) {
	q, err := New().Parse("fn push(T) -> _")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.HasName || q.Name != "push" {
		t.Fatalf("expected name %q, got %+v", "push", q)
	}
	if q.Signature.Output.Kind != core.KindUnknown {
		t.Fatalf("expected Unknown output, got %+v", q.Signature.Output)
	}
}

func TestParseBareTypeFormHasNoImplicitName(t *testing.T) {
	q, err := New().Parse("T -> T")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.HasName {
		t.Fatalf("bare-type form must not capture a name, got %q", q.Name)
	}
	if len(q.Signature.Inputs) != 1 || q.Signature.Inputs[0].Type.Kind != core.KindGeneric {
		t.Fatalf("expected a single generic input, got %+v", q.Signature.Inputs)
	}
}

func TestParseDisambiguation(t *testing.T) {
	q, err := New().Parse("fn(T, foo, u32) -> _")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := q.Signature.Inputs
	if len(in) != 3 {
		t.Fatalf("expected 3 inputs, got %d", len(in))
	}
	if in[0].Type.Kind != core.KindGeneric {
		t.Fatalf("%q should disambiguate to Generic, got kind %v", "T", in[0].Type.Kind)
	}
	if in[1].Type.Kind != core.KindResolved {
		t.Fatalf("%q should disambiguate to Resolved, got kind %v", "foo", in[1].Type.Kind)
	}
	if in[2].Type.Kind != core.KindPrimitive {
		t.Fatalf("%q should disambiguate to Primitive, got kind %v", "u32", in[2].Type.Kind)
	}
}

func TestParseArgumentNamePrefix(t *testing.T) {
	q, err := New().Parse("fn(value: T, _) -> T")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Signature.Inputs[0].HasName || q.Signature.Inputs[0].Name != "value" {
		t.Fatalf("expected named argument %q, got %+v", "value", q.Signature.Inputs[0])
	}
	if q.Signature.Inputs[1].HasName {
		t.Fatalf("second argument must carry no name, got %+v", q.Signature.Inputs[1])
	}
}

func TestParseReceiverFormsAreUnknown(t *testing.T) {
	for _, src := range []string{"fn len(self) -> usize", "fn len(&self) -> usize", "fn push(&mut self, T) -> _"} {
		q, err := New().Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", src, err)
		}
		if q.Signature.Inputs[0].Type.Kind != core.KindUnknown {
			t.Fatalf("Parse(%q): expected a lossy Unknown receiver, got %+v", src, q.Signature.Inputs[0].Type)
		}
	}
}

func TestParseUnitReturnType(t *testing.T) {
	q, err := New().Parse("fn (Vec<T>, T) -> ()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := q.Signature.Output
	if out.Kind != core.KindPrimitive || out.Prim != core.PrimUnit {
		t.Fatalf("expected unit return type, got %+v", out)
	}
	if len(q.Signature.Inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(q.Signature.Inputs))
	}
}

func TestParseNestedGenerics(t *testing.T) {
	q, err := New().Parse("fn (Option<Result<T, E>>) -> Result<Option<T>, E>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt := q.Signature.Inputs[0].Type
	if opt.Kind != core.KindResolved || opt.LastSegment().Name != "Option" {
		t.Fatalf("expected Option<...>, got %+v", opt)
	}
	inner := opt.LastSegment().Args[0]
	if inner.Kind != core.KindResolved || inner.LastSegment().Name != "Result" || len(inner.LastSegment().Args) != 2 {
		t.Fatalf("expected nested Result<T, E>, got %+v", inner)
	}
}

func TestParseEmptyQueryIsError(t *testing.T) {
	if _, err := New().Parse(""); err == nil {
		t.Fatal("expected an error for an empty query")
	}
	if _, err := New().Parse("   "); err == nil {
		t.Fatal("expected an error for a whitespace-only query")
	}
}

func TestParseMalformedQueryReportsOffsetAtTheArrow(t *testing.T) {
	src := "fn (Option<T -> T"
	_, err := New().Parse(src)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*core.ParseError)
	if !ok {
		t.Fatalf("expected *core.ParseError, got %T", err)
	}
	want := len("fn (Option<T ")
	if pe.Offset != want {
		t.Fatalf("expected offset %d (the stray '-'), got %d", want, pe.Offset)
	}
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	if _, err := New().Parse("fn (T) -> T )"); err == nil {
		t.Fatal("expected a trailing-input error")
	}
}

func TestParseUnterminatedParenIsError(t *testing.T) {
	if _, err := New().Parse("fn (T -> T"); err == nil {
		t.Fatal("expected an unterminated '(' error")
	}
}
