package parser

import (
	"strings"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/scanner"
	"github.com/packagefactory/componentengine/token"
)

// parseTag parses a tag. resume is the grammar of the token after the tag:
// the default grammar when the tag is an expression on its own, or the markup
// grammar when it is a child of another tag.
func parseTag(p *parser, resume *scanner.Grammar) *ast.Tag {
	p.enter()
	defer p.leave()

	start := p.expect(token.Less).Range
	name := parseIdentifier(p)

	var attrs []*ast.Attribute
	for p.is(token.Identifier) {
		attrs = append(attrs, parseAttribute(p))
	}

	if p.is(token.SlashGreater) {
		end := p.expectIn(token.SlashGreater, resume).Range
		tag, err := ast.NewTag(name, nil, attrs, nil, token.Span(start, end))
		p.check(err)
		return tag
	}

	if !p.is(token.Greater) {
		p.errorExpectedOneOf(token.Identifier, token.Greater, token.SlashGreater)
	}
	p.expectIn(token.Greater, scanner.Markup)

	var children []ast.Child
	for !p.is(token.LessSlash) {
		switch p.tok.Type {
		case token.Text:
			tok := p.expectIn(token.Text, scanner.Markup)
			if strings.TrimSpace(tok.Value) != "" {
				children = append(children, ast.NewText(tok.Value, tok.Range))
			}

		case token.LeftBrace:
			children = append(children, parseEmbedded(p, scanner.Markup))

		case token.Less:
			children = append(children, parseTag(p, scanner.Markup))

		default:
			p.errorExpected("text, an embedded expression or a tag")
		}
	}

	p.expect(token.LessSlash)
	closing := parseIdentifier(p)
	end := p.expectIn(token.Greater, resume).Range

	tag, err := ast.NewTag(name, closing, attrs, children, token.Span(start, end))
	p.check(err)
	return tag
}

// parseAttribute parses one of
//
//	name
//	name="value"
//	name={expr}
func parseAttribute(p *parser) *ast.Attribute {
	name := parseIdentifier(p)
	if !p.is(token.Equal) {
		attr, err := ast.NewAttribute(name, nil, name.Range())
		p.check(err)
		return attr
	}

	p.expect(token.Equal)
	var value ast.AttributeValue
	switch p.tok.Type {
	case token.String:
		value = parseString(p)
	case token.LeftBrace:
		value = parseEmbedded(p, scanner.Default)
	default:
		p.errorExpectedOneOf(token.String, token.LeftBrace)
	}

	attr, err := ast.NewAttribute(name, value, token.Span(name.Range(), value.Range()))
	p.check(err)
	return attr
}

// parseEmbedded parses an expression between braces. resume is the grammar
// of the token after the closing brace.
func parseEmbedded(p *parser, resume *scanner.Grammar) *ast.Embedded {
	start := p.expect(token.LeftBrace).Range
	expr := parseExpr(p)
	end := p.expectIn(token.RightBrace, resume).Range

	e, err := ast.NewEmbedded(expr, token.Span(start, end))
	p.check(err)
	return e
}

var templateEscapes = map[byte]string{
	'n': "\n",
	't': "\t",
	'r': "\r",
}

// parseTemplate parses a template literal. Consecutive runs of text, escape
// sequences and lone dollar signs are joined in a single text span.
func parseTemplate(p *parser) *ast.TemplateLiteral {
	p.enter()
	defer p.leave()

	start := p.expectIn(token.Backtick, scanner.Template).Range

	var (
		spans   []ast.TemplateSpan
		text    strings.Builder
		textRng token.Range
		hasText bool
	)

	flush := func() {
		if hasText {
			spans = append(spans, ast.NewTemplateText(text.String(), textRng))
			text.Reset()
			hasText = false
		}
	}

	addText := func(tok *token.Token, value string) {
		if !hasText {
			textRng = tok.Range
			hasText = true
		}
		textRng.End = tok.Range.End
		text.WriteString(value)
	}

	for !p.is(token.Backtick) {
		tok := p.tok
		switch tok.Type {
		case token.TemplateText, token.Dollar:
			addText(tok, tok.Value)
			p.nextIn(scanner.Template)

		case token.TemplateEscape:
			value := tok.Value[1:]
			if esc, ok := templateEscapes[value[0]]; ok && len(value) == 1 {
				value = esc
			}
			addText(tok, value)
			p.nextIn(scanner.Template)

		case token.TemplateOpen:
			flush()
			p.expect(token.TemplateOpen)
			expr := parseExpr(p)
			end := p.expectIn(token.RightBrace, scanner.Template).Range
			e, err := ast.NewEmbedded(expr, token.Span(tok.Range, end))
			p.check(err)
			spans = append(spans, e)

		default:
			p.errorExpectedOneOf(token.Backtick)
		}
	}
	flush()

	end := p.expect(token.Backtick).Range
	lit, err := ast.NewTemplateLiteral(spans, token.Span(start, end))
	p.check(err)
	return lit
}
