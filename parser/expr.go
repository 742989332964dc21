package parser

import (
	"strconv"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/operator"
	"github.com/packagefactory/componentengine/scanner"
	"github.com/packagefactory/componentengine/token"
)

// parseExpr parses the loosest expressions: match and the ternary operation.
// Ternary operations are right associative.
func parseExpr(p *parser) ast.Expr {
	p.enter()
	defer p.leave()

	if p.is(token.Match) {
		return parseMatch(p)
	}

	cond := parseBinaryExpr(p, 1)
	if !p.is(token.Question) {
		return cond
	}

	p.expect(token.Question)
	trueBranch := parseExpr(p)
	p.expect(token.Colon)
	falseBranch := parseExpr(p)

	op, err := ast.NewTernaryOperation(cond, trueBranch, falseBranch)
	p.check(err)
	return op
}

// parseBinaryExpr parses binary operations using precedence climbing. Only
// operators with a precedence of at least minPrec are consumed.
func parseBinaryExpr(p *parser, minPrec uint) ast.Expr {
	left := parseUnaryExpr(p)
	for {
		info := p.table.Lookup(p.tok.Type)
		if info == nil || info.Precedence < minPrec {
			return left
		}

		p.next()
		nextPrec := info.Precedence + 1
		if info.Associativity == operator.Right {
			nextPrec = info.Precedence
		}

		right := parseBinaryExpr(p, nextPrec)
		op, err := ast.NewBinaryOperation(info.Operator, left, right)
		p.check(err)
		left = op

		if info.Associativity == operator.NonAssoc {
			if next := p.table.Lookup(p.tok.Type); next != nil && next.Precedence == info.Precedence {
				p.errorMessage(
					p.tok.Range,
					"The operator %s cannot follow %s without parentheses.",
					next.Operator, info.Operator,
				)
			}
		}
	}
}

func parseUnaryExpr(p *parser) ast.Expr {
	if !p.is(token.Not) {
		return parsePrimaryExpr(p)
	}

	p.enter()
	defer p.leave()

	start := p.expect(token.Not).Range
	operand := parseUnaryExpr(p)
	op, err := ast.NewUnaryOperation(ast.Not, operand, token.Span(start, operand.Range()))
	p.check(err)
	return op
}

func parsePrimaryExpr(p *parser) ast.Expr {
	switch p.tok.Type {
	case token.Null:
		return ast.NewNullLiteral(p.expect(token.Null).Range)

	case token.True, token.False:
		tok := p.tok
		p.next()
		return ast.NewBooleanLiteral(tok.Type == token.True, tok.Range)

	case token.Integer:
		tok := p.expect(token.Integer)
		lit, err := ast.NewIntegerLiteral(tok.Value, tok.Range)
		p.check(err)
		return lit

	case token.String:
		return parseString(p)

	case token.Backtick:
		return parseTemplate(p)

	case token.Identifier:
		return parseValueReference(p)

	case token.Less:
		return parseTag(p, scanner.Default)

	case token.LeftParen:
		p.expect(token.LeftParen)
		expr := parseExpr(p)
		p.expect(token.RightParen)
		return expr
	}

	p.errorExpected("an expression")
	return nil
}

func parseIdentifier(p *parser) *ast.Identifier {
	tok := p.expect(token.Identifier)
	return ast.NewIdentifier(tok.Value, tok.Range)
}

func parseValueReference(p *parser) *ast.ValueReference {
	name := parseIdentifier(p)
	var members []*ast.Identifier
	for p.is(token.Dot) {
		p.expect(token.Dot)
		members = append(members, parseIdentifier(p))
	}
	return ast.NewValueReference(name, members...)
}

func parseString(p *parser) *ast.StringLiteral {
	tok := p.expect(token.String)
	value, err := strconv.Unquote(tok.Value)
	if err != nil {
		p.errorMessage(tok.Range, "The string %s contains an invalid escape sequence.", tok.Value)
	}
	return ast.NewStringLiteral(value, tok.Range)
}

// parseMatch parses
//
//	match subject { pattern, pattern => body, default => body }
func parseMatch(p *parser) *ast.Match {
	start := p.expect(token.Match).Range
	subject := parseBinaryExpr(p, 1)
	p.expect(token.LeftBrace)

	var arms []*ast.MatchArm
	for !p.is(token.RightBrace) {
		arms = append(arms, parseMatchArm(p))
		if !p.is(token.Comma) {
			break
		}
		p.expect(token.Comma)
	}

	end := p.expect(token.RightBrace).Range
	m, err := ast.NewMatch(subject, arms, token.Span(start, end))
	p.check(err)
	return m
}

func parseMatchArm(p *parser) *ast.MatchArm {
	if p.is(token.Default) {
		start := p.expect(token.Default).Range
		p.expect(token.Arrow)
		body := parseExpr(p)
		arm, err := ast.NewDefaultArm(body, token.Span(start, body.Range()))
		p.check(err)
		return arm
	}

	patterns := []ast.Expr{parseBinaryExpr(p, 1)}
	for p.is(token.Comma) {
		p.expect(token.Comma)
		patterns = append(patterns, parseBinaryExpr(p, 1))
	}

	p.expect(token.Arrow)
	body := parseExpr(p)
	arm, err := ast.NewMatchArm(patterns, body, token.Span(patterns[0].Range(), body.Range()))
	p.check(err)
	return arm
}
