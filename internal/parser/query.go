// Package parser implements the query grammar of spec §4.2: a small
// recursive-descent parser over type expressions with optional function
// name and return clause.
package parser

import (
	"regexp"

	"github.com/oxhq/apidex/internal/core"
)

var genericNameRE = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)

// Parser turns a query string into a core.Query. It is stateless and safe
// for concurrent use; each Parse call allocates its own token stream,
// mirroring the teacher's per-call UniversalParser.ParseQuery shape.
type Parser struct{}

// New creates a query parser.
func New() *Parser { return &Parser{} }

// Parse implements the grammar in spec §4.2/§6.1. On success it returns a
// fully parsed core.Query; on failure a *core.ParseError naming the byte
// offset of the problem.
func (p *Parser) Parse(src string) (core.Query, error) {
	toks, lexErr := newLexer(src).tokenize()
	if lexErr != nil {
		return core.Query{}, &core.ParseError{Offset: lexErr.offset, Message: lexErr.message}
	}
	if len(toks) == 1 && toks[0].kind == tokEOF {
		return core.Query{}, &core.ParseError{Offset: 0, Message: "empty query"}
	}

	ps := &parseState{toks: toks}
	q, err := ps.parseQuery()
	if err != nil {
		return core.Query{}, err
	}
	if ps.cur().kind != tokEOF {
		return core.Query{}, &core.ParseError{
			Offset:  ps.cur().offset,
			Message: "unexpected trailing input: " + ps.cur().text,
		}
	}
	return q, nil
}

type parseState struct {
	toks []token
	pos  int
}

func (ps *parseState) cur() token { return ps.toks[ps.pos] }

func (ps *parseState) advance() token {
	t := ps.toks[ps.pos]
	if ps.pos < len(ps.toks)-1 {
		ps.pos++
	}
	return t
}

func (ps *parseState) expect(k tokenKind, what string) (token, error) {
	if ps.cur().kind != k {
		return token{}, &core.ParseError{Offset: ps.cur().offset, Message: "expected " + what}
	}
	return ps.advance(), nil
}

// parseQuery implements:
//
//	Query := [ "fn" ] [ Name ] "(" [ Args ] ")" [ "->" Type ]
//	       | [ "fn" ] [ Name ] Type "->" Type
func (ps *parseState) parseQuery() (core.Query, error) {
	if ps.cur().kind == tokIdent && ps.cur().text == "fn" {
		ps.advance()
	}

	q := core.Query{Signature: core.FunctionSignature{Output: core.Unknown()}}

	// An optional leading name: an identifier immediately followed by "("
	// is the name; an identifier followed by anything else (including
	// another type token) is the start of the bare-type form, so it is
	// NOT a name — it's parsed as part of the input Type below.
	if ps.cur().kind == tokIdent && ps.peekIsOpenParen() {
		q.Name = ps.advance().text
		q.HasName = true
	}

	if ps.cur().kind == tokLParen {
		ps.advance()
		inputs, err := ps.parseArgs()
		if err != nil {
			return core.Query{}, err
		}
		if _, err := ps.expect(tokRParen, "')'"); err != nil {
			return core.Query{}, err
		}
		q.Signature.Inputs = inputs
	} else {
		// Bare-type form: a single input type, no parens.
		// The optional name here (when not already consumed as
		// "Name(") may still be present before the bare type, e.g.
		// "fn f T -> T" — but the grammar's canonical bare form omits a
		// name, so we only look for one when the next-next token isn't
		// "->" immediately (a lone identifier followed by "->" is the
		// input type itself, not a name).
		if ps.cur().kind == tokIdent && ps.canBeName() {
			q.Name = ps.advance().text
			q.HasName = true
		}
		t, err := ps.parseType()
		if err != nil {
			return core.Query{}, err
		}
		q.Signature.Inputs = []core.Argument{{Type: t}}
	}

	if ps.cur().kind == tokArrow {
		ps.advance()
		out, err := ps.parseType()
		if err != nil {
			return core.Query{}, err
		}
		q.Signature.Output = out
	}

	return q, nil
}

// peekIsOpenParen reports whether the token after the current one is '('.
func (ps *parseState) peekIsOpenParen() bool {
	if ps.pos+1 >= len(ps.toks) {
		return false
	}
	return ps.toks[ps.pos+1].kind == tokLParen
}

// peekIsCloseParen reports whether the token after the current one is ')',
// used to recognize the unit type "()" before it's mistaken for an empty
// argument list.
func (ps *parseState) peekIsCloseParen() bool {
	if ps.pos+1 >= len(ps.toks) {
		return false
	}
	return ps.toks[ps.pos+1].kind == tokRParen
}

// canBeName reports whether the current identifier is followed by another
// type-starting token rather than "->", meaning it is a name prefixing a
// bare-type query ("f T -> T") rather than the sole input type itself.
func (ps *parseState) canBeName() bool {
	if ps.pos+1 >= len(ps.toks) {
		return false
	}
	next := ps.toks[ps.pos+1]
	switch next.kind {
	case tokIdent, tokUnderscore:
		return true
	}
	return false
}

// parseArgs implements: Args := Arg { "," Arg } [ "," ]
func (ps *parseState) parseArgs() ([]core.Argument, error) {
	var args []core.Argument
	if ps.cur().kind == tokRParen {
		return args, nil
	}
	for {
		arg, err := ps.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if ps.cur().kind == tokComma {
			ps.advance()
			if ps.cur().kind == tokRParen {
				break
			}
			continue
		}
		break
	}
	return args, nil
}

// parseArg implements: Arg := [ Name ":" ] Type
func (ps *parseState) parseArg() (core.Argument, error) {
	if ps.cur().kind == tokIdent && ps.peekIsColon() {
		name := ps.advance().text
		ps.advance() // ':'
		t, err := ps.parseType()
		if err != nil {
			return core.Argument{}, err
		}
		return core.Argument{Name: name, HasName: true, Type: t}, nil
	}
	t, err := ps.parseType()
	if err != nil {
		return core.Argument{}, err
	}
	return core.Argument{Type: t}, nil
}

func (ps *parseState) peekIsColon() bool {
	if ps.pos+1 >= len(ps.toks) {
		return false
	}
	return ps.toks[ps.pos+1].kind == tokColon
}

// parseType implements:
//
//	Type := PrimName | "_" | Receiver | Unit | Ident | Path [ "<" Type { "," Type } ">" ]
//	Path := Ident { "::" Ident }
//	Receiver := [ "&" [ "mut" ] ] "self"
//	Unit := "(" ")"
//
// A reference sigil or a bare "self" is lossy-parsed as Unknown (spec §6.1,
// §4.3: references are an unsupported node kind, and a receiver position
// carries no type information this model tracks). "()" is the unit type,
// spelled the same as Rust's empty tuple (spec §8 scenario 2).
func (ps *parseState) parseType() (core.Type, error) {
	if ps.cur().kind == tokUnderscore {
		ps.advance()
		return core.Unknown(), nil
	}
	if ps.cur().kind == tokLParen && ps.peekIsCloseParen() {
		ps.advance()
		ps.advance()
		return core.PrimitiveType(core.PrimUnit), nil
	}
	if ps.cur().kind == tokAmp {
		ps.advance()
		if ps.cur().kind == tokIdent && ps.cur().text == "mut" {
			ps.advance()
		}
		if _, err := ps.expect(tokIdent, "a type after '&'"); err != nil {
			return core.Type{}, err
		}
		return core.Unknown(), nil
	}
	if ps.cur().kind == tokColonColon {
		// A leading "::" with no preceding segment is malformed.
		return core.Type{}, &core.ParseError{Offset: ps.cur().offset, Message: "unexpected '::'"}
	}

	if ps.cur().kind == tokIdent && ps.cur().text == "self" {
		ps.advance()
		return core.Unknown(), nil
	}

	first, err := ps.expect(tokIdent, "a type")
	if err != nil {
		return core.Type{}, err
	}

	var names []string
	names = append(names, first.text)
	for ps.cur().kind == tokColonColon {
		ps.advance()
		seg, err := ps.expect(tokIdent, "a path segment after '::'")
		if err != nil {
			return core.Type{}, err
		}
		names = append(names, seg.text)
	}

	// Single-segment bare identifier: disambiguate primitive / generic /
	// one-segment resolved path (spec §4.2 disambiguation rule), but only
	// when it carries no "<...>" generic args and no "::" path.
	if len(names) == 1 && ps.cur().kind != tokLAngle {
		name := names[0]
		if core.IsPrimitiveName(name) {
			return core.PrimitiveType(core.Primitive(name)), nil
		}
		if genericNameRE.MatchString(name) {
			return core.Generic(name), nil
		}
		return core.Resolved([]core.Segment{{Name: name}}), nil
	}

	var args []core.Type
	if ps.cur().kind == tokLAngle {
		ps.advance()
		for {
			arg, err := ps.parseType()
			if err != nil {
				return core.Type{}, err
			}
			args = append(args, arg)
			if ps.cur().kind == tokComma {
				ps.advance()
				continue
			}
			break
		}
		if _, err := ps.expect(tokRAngle, "'>'"); err != nil {
			return core.Type{}, err
		}
	}

	segs := make([]core.Segment, len(names))
	for i, n := range names {
		if i == len(names)-1 {
			segs[i] = core.Segment{Name: n, Args: args}
		} else {
			segs[i] = core.Segment{Name: n}
		}
	}
	return core.Resolved(segs), nil
}
