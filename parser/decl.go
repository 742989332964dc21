package parser

import (
	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/token"
)

var declarationStarts = []token.Type{
	token.Import,
	token.Export,
	token.Enum,
	token.Struct,
	token.Interface,
	token.Component,
}

func parseModule(p *parser) *ast.Module {
	var (
		imports []*ast.Import
		exports []*ast.Export
		decls   []ast.Declaration
	)

	for !p.is(token.EOF) {
		switch p.tok.Type {
		case token.Import:
			imports = append(imports, parseImport(p))

		case token.Export:
			if p.peek().Type == token.LeftBrace {
				exports = append(exports, parseExport(p))
				continue
			}

			start := p.expect(token.Export).Range
			decl := parseDecl(p)
			export, err := ast.NewExport(
				[]*ast.Identifier{decl.DeclName()},
				token.Span(start, decl.Range()),
			)
			p.check(err)
			exports = append(exports, export)
			decls = append(decls, decl)

		default:
			decls = append(decls, parseDecl(p))
		}
	}

	end := p.expect(token.EOF).Range
	mod, err := ast.NewModule(
		p.src,
		imports,
		exports,
		decls,
		token.Range{Start: token.NoPos, End: end.End},
	)
	p.check(err)
	return mod
}

// parseNameList parses "{ A, B }", with an optional trailing comma.
func parseNameList(p *parser) ([]*ast.Identifier, token.Range) {
	start := p.expect(token.LeftBrace).Range
	var names []*ast.Identifier
	for !p.is(token.RightBrace) {
		names = append(names, parseIdentifier(p))
		if !p.is(token.Comma) {
			break
		}
		p.expect(token.Comma)
	}
	end := p.expect(token.RightBrace).Range
	return names, token.Span(start, end)
}

// parseImport parses
//
//	import { A, B } from "./module"
func parseImport(p *parser) *ast.Import {
	start := p.expect(token.Import).Range
	names, _ := parseNameList(p)
	p.expect(token.From)
	from := parseString(p)

	imp, err := ast.NewImport(names, from, token.Span(start, from.Range()))
	p.check(err)
	glog.V(3).Infof("parsed import of %d names from %q", len(names), from.Value)
	return imp
}

// parseExport parses
//
//	export { A, B }
func parseExport(p *parser) *ast.Export {
	start := p.expect(token.Export).Range
	names, rng := parseNameList(p)

	export, err := ast.NewExport(names, token.Span(start, rng))
	p.check(err)
	return export
}

func parseDecl(p *parser) ast.Declaration {
	var decl ast.Declaration
	switch p.tok.Type {
	case token.Enum:
		decl = parseEnum(p)
	case token.Struct:
		decl = parseStruct(p)
	case token.Interface:
		decl = parseInterface(p)
	case token.Component:
		decl = parseComponent(p)
	default:
		p.errorExpectedOneOf(declarationStarts...)
	}

	glog.V(3).Infof("parsed declaration %s at %s", decl.DeclName(), decl.Range())
	return decl
}

// parseEnum parses
//
//	enum Name { A, B = 1, C = 2 }
func parseEnum(p *parser) *ast.EnumDeclaration {
	start := p.expect(token.Enum).Range
	name := parseIdentifier(p)
	p.expect(token.LeftBrace)

	var members []*ast.EnumMember
	for !p.is(token.RightBrace) {
		members = append(members, parseEnumMember(p))
		if !p.is(token.Comma) {
			break
		}
		p.expect(token.Comma)
	}

	end := p.expect(token.RightBrace).Range
	decl, err := ast.NewEnumDeclaration(name, members, token.Span(start, end))
	p.check(err)
	return decl
}

func parseEnumMember(p *parser) *ast.EnumMember {
	name := parseIdentifier(p)
	if !p.is(token.Equal) {
		member, err := ast.NewEnumMember(name, nil, name.Range())
		p.check(err)
		return member
	}

	p.expect(token.Equal)
	var value ast.Expr
	switch p.tok.Type {
	case token.Integer:
		tok := p.expect(token.Integer)
		lit, err := ast.NewIntegerLiteral(tok.Value, tok.Range)
		p.check(err)
		value = lit
	case token.String:
		value = parseString(p)
	default:
		p.errorExpectedOneOf(token.Integer, token.String)
	}

	member, err := ast.NewEnumMember(name, value, token.Span(name.Range(), value.Range()))
	p.check(err)
	return member
}

// parseFields parses "{ a: Type, b: Type }", with an optional trailing comma.
func parseFields(p *parser) ([]*ast.Field, token.Range) {
	start := p.expect(token.LeftBrace).Range
	var fields []*ast.Field
	for !p.is(token.RightBrace) {
		name := parseIdentifier(p)
		p.expect(token.Colon)
		typ := parseType(p)
		field, err := ast.NewField(name, typ, token.Span(name.Range(), typ.Range()))
		p.check(err)
		fields = append(fields, field)

		if !p.is(token.Comma) {
			break
		}
		p.expect(token.Comma)
	}
	end := p.expect(token.RightBrace).Range
	return fields, token.Span(start, end)
}

func parseStruct(p *parser) *ast.StructDeclaration {
	start := p.expect(token.Struct).Range
	name := parseIdentifier(p)
	fields, rng := parseFields(p)

	decl, err := ast.NewStructDeclaration(name, fields, token.Span(start, rng))
	p.check(err)
	return decl
}

func parseInterface(p *parser) *ast.InterfaceDeclaration {
	start := p.expect(token.Interface).Range
	name := parseIdentifier(p)
	fields, rng := parseFields(p)

	decl, err := ast.NewInterfaceDeclaration(name, fields, token.Span(start, rng))
	p.check(err)
	return decl
}

// parseComponent parses
//
//	component Name(a: Type, b: Type = default): Result { body }
//
// The result type is optional.
func parseComponent(p *parser) *ast.ComponentDeclaration {
	start := p.expect(token.Component).Range
	name := parseIdentifier(p)

	p.expect(token.LeftParen)
	var params []*ast.Parameter
	for !p.is(token.RightParen) {
		params = append(params, parseParameter(p))
		if !p.is(token.Comma) {
			break
		}
		p.expect(token.Comma)
	}
	p.expect(token.RightParen)

	var result ast.TypeExpr
	if p.is(token.Colon) {
		p.expect(token.Colon)
		result = parseType(p)
	}

	p.expect(token.LeftBrace)
	body := parseExpr(p)
	end := p.expect(token.RightBrace).Range

	decl, err := ast.NewComponentDeclaration(name, params, result, body, token.Span(start, end))
	p.check(err)
	return decl
}

func parseParameter(p *parser) *ast.Parameter {
	name := parseIdentifier(p)
	p.expect(token.Colon)
	typ := parseType(p)
	rng := token.Span(name.Range(), typ.Range())

	var def ast.Expr
	if p.is(token.Equal) {
		p.expect(token.Equal)
		def = parseExpr(p)
		rng = token.Span(rng, def.Range())
	}

	param, err := ast.NewParameter(name, typ, def, rng)
	p.check(err)
	return param
}

// parseType parses a type, which is a union of one or more optional types.
//
//	A
//	A?
//	A | B?
func parseType(p *parser) ast.TypeExpr {
	p.enter()
	defer p.leave()

	first := parseOptionalType(p)
	if !p.is(token.Pipe) {
		return first
	}

	members := []ast.TypeExpr{first}
	for p.is(token.Pipe) {
		p.expect(token.Pipe)
		members = append(members, parseOptionalType(p))
	}

	union, err := ast.NewUnionType(members)
	p.check(err)
	return union
}

func parseOptionalType(p *parser) ast.TypeExpr {
	var typ ast.TypeExpr
	if p.is(token.LeftParen) {
		p.expect(token.LeftParen)
		typ = parseType(p)
		p.expect(token.RightParen)
	} else if p.is(token.Identifier) || p.is(token.Null) {
		tok := p.tok
		p.next()
		typ = ast.NewNamedType(ast.NewIdentifier(tok.Value, tok.Range))
	} else {
		p.errorExpected("a type")
	}

	for p.is(token.Question) {
		end := p.expect(token.Question).Range
		opt, err := ast.NewOptionalType(typ, token.Span(typ.Range(), end))
		p.check(err)
		typ = opt
	}
	return typ
}
