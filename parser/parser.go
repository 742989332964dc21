// Package parser builds the syntax tree of component modules. Every grammar
// production has its own parse function. All of them fail fast: the first
// problem found aborts parsing and is returned as a report.
package parser

import (
	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/operator"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/scanner"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// DefaultMaxDepth is the default maximum nesting of expressions, tags and
// types.
const DefaultMaxDepth = 256

type options struct {
	maxDepth int
	table    *operator.Table
}

// Option configures the parser.
type Option func(*options)

// MaxDepth sets the maximum nesting of expressions, tags and types. Inputs
// nested deeper are rejected with a syntax error.
func MaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// Operators sets the operator table used to parse binary operations.
func Operators(t *operator.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// ParseModule returns the syntax tree of the module in the given source.
func ParseModule(src *source.Source, opts ...Option) (mod *ast.Module, err error) {
	err = run(src, opts, func(p *parser) {
		mod = parseModule(p)
	})
	if err != nil {
		return nil, err
	}
	return mod, nil
}

// ParseExpr returns the syntax tree of the single expression in the given
// source.
func ParseExpr(src *source.Source, opts ...Option) (expr ast.Expr, err error) {
	err = run(src, opts, func(p *parser) {
		expr = parseExpr(p)
		p.expect(token.EOF)
	})
	if err != nil {
		return nil, err
	}
	return expr, nil
}

func run(src *source.Source, opts []Option, fn func(*parser)) (err error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	if o.table == nil {
		o.table = operator.BuiltinTable()
	}

	p := &parser{
		src:      src,
		scanner:  scanner.New(src),
		table:    o.table,
		maxDepth: o.maxDepth,
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			glog.V(3).Infof("parsing %s failed: %s", src.Path, p.err)
			err = p.err
		}
	}()

	p.next()
	fn(p)
	return nil
}

type parser struct {
	src      *source.Source
	scanner  *scanner.Scanner
	table    *operator.Table
	maxDepth int
	depth    int

	tok *token.Token
	err error
}

type bailout struct{}

// next scans the token after the current one with the default grammar.
func (p *parser) next() {
	p.nextIn(scanner.Default)
}

// nextIn scans the token after the current one with the given grammar.
func (p *parser) nextIn(g *scanner.Grammar) {
	tok, err := p.scanner.Next(g)
	if err != nil {
		p.fail(err)
	}
	p.tok = tok
}

// peek returns the token after the current one without consuming anything.
func (p *parser) peek() *token.Token {
	tok, err := p.scanner.Peek(scanner.Default)
	if err != nil {
		p.fail(err)
	}
	return tok
}

func (p *parser) is(typ token.Type) bool {
	return p.tok.Type == typ
}

// expect consumes the current token, which must be of the given type, and
// returns it.
func (p *parser) expect(typ token.Type) *token.Token {
	return p.expectIn(typ, scanner.Default)
}

// expectIn works like expect, but the token after it is scanned with the
// given grammar.
func (p *parser) expectIn(typ token.Type, g *scanner.Grammar) *token.Token {
	tok := p.tok
	if tok.Type != typ {
		p.errorExpectedOneOf(typ)
	}

	if typ != token.EOF {
		p.nextIn(g)
	}
	return tok
}

// enter must be called by productions that nest, paired with a deferred
// leave.
func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.fail(report.NewSyntaxError(
			p.src,
			p.tok.Range,
			"This is nested too deeply, the maximum nesting is %d.",
			p.maxDepth,
		))
	}
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) fail(err error) {
	p.err = err
	panic(bailout{})
}

// check fails if the given error, returned by a node constructor, is not nil.
func (p *parser) check(err error) {
	if err == nil {
		return
	}

	if se, ok := err.(*ast.StructuralError); ok {
		p.fail(report.NewStructuralError(p.src, se))
	}
	p.fail(err)
}

func (p *parser) errorExpectedOneOf(types ...token.Type) {
	p.fail(report.NewUnexpectedTokenError(p.src, p.tok, types...))
}

func (p *parser) errorExpected(what string) {
	p.fail(report.NewExpectedError(p.src, p.tok, what))
}

func (p *parser) errorMessage(rng token.Range, msg string, args ...interface{}) {
	p.fail(report.NewSyntaxError(p.src, rng, msg, args...))
}
