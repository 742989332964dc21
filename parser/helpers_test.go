package parser

import (
	"testing"

	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/source"
	"github.com/stretchr/testify/require"
)

type (
	ExprAssert  func(*testing.T, ast.Expr)
	TypeAssert  func(*testing.T, ast.TypeExpr)
	DeclAssert  func(*testing.T, ast.Declaration)
	ChildAssert func(*testing.T, ast.Child)
	AttrAssert  func(*testing.T, *ast.Attribute)
	SpanAssert  func(*testing.T, ast.TemplateSpan)
	ArmAssert   func(*testing.T, *ast.MatchArm)
	FieldAssert func(*testing.T, *ast.Field)
	ParamAssert func(*testing.T, *ast.Parameter)
)

func mustParseExpr(t *testing.T, input string, opts ...Option) ast.Expr {
	t.Helper()
	expr, err := ParseExpr(source.NewMemorySource(input), opts...)
	require.NoError(t, err, "parsing %q", input)
	return expr
}

func mustParseModule(t *testing.T, input string) *ast.Module {
	t.Helper()
	mod, err := ParseModule(source.NewSource("test.cmp", input))
	require.NoError(t, err, "parsing %q", input)
	return mod
}

func Null() ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		_, ok := e.(*ast.NullLiteral)
		require.True(t, ok, "expected null literal, got %T", e)
	}
}

func Bool(v bool) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		lit, ok := e.(*ast.BooleanLiteral)
		require.True(t, ok, "expected boolean literal, got %T", e)
		require.Equal(t, v, lit.Value)
	}
}

func Int(v int64, base ast.IntegerBase) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		lit, ok := e.(*ast.IntegerLiteral)
		require.True(t, ok, "expected integer literal, got %T", e)
		require.Equal(t, v, lit.Value)
		require.Equal(t, base, lit.Base)
	}
}

func Str(v string) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		lit, ok := e.(*ast.StringLiteral)
		require.True(t, ok, "expected string literal, got %T", e)
		require.Equal(t, v, lit.Value)
	}
}

func Ref(name string, members ...string) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		ref, ok := e.(*ast.ValueReference)
		require.True(t, ok, "expected value reference, got %T", e)
		require.Equal(t, name, ref.Name.Name)
		assertIdents(t, members, ref.Members)
	}
}

func Binary(op ast.BinaryOperator, left, right ExprAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		bin, ok := e.(*ast.BinaryOperation)
		require.True(t, ok, "expected binary operation, got %T", e)
		require.Equal(t, op, bin.Operator, "operator")
		left(t, bin.Left)
		right(t, bin.Right)
	}
}

func Not(operand ExprAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		un, ok := e.(*ast.UnaryOperation)
		require.True(t, ok, "expected unary operation, got %T", e)
		operand(t, un.Operand)
	}
}

func Ternary(cond, trueBranch, falseBranch ExprAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		op, ok := e.(*ast.TernaryOperation)
		require.True(t, ok, "expected ternary operation, got %T", e)
		cond(t, op.Condition)
		trueBranch(t, op.TrueBranch)
		falseBranch(t, op.FalseBranch)
	}
}

func Match(subject ExprAssert, arms ...ArmAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		m, ok := e.(*ast.Match)
		require.True(t, ok, "expected match, got %T", e)
		subject(t, m.Subject)
		require.Len(t, m.Arms, len(arms), "number of arms")
		for i := range arms {
			arms[i](t, m.Arms[i])
		}
	}
}

func Arm(body ExprAssert, patterns ...ExprAssert) ArmAssert {
	return func(t *testing.T, arm *ast.MatchArm) {
		require.False(t, arm.Default, "expected a non default arm")
		require.Len(t, arm.Patterns, len(patterns), "number of patterns")
		for i := range patterns {
			patterns[i](t, arm.Patterns[i])
		}
		body(t, arm.Body)
	}
}

func DefaultArm(body ExprAssert) ArmAssert {
	return func(t *testing.T, arm *ast.MatchArm) {
		require.True(t, arm.Default, "expected a default arm")
		body(t, arm.Body)
	}
}

func Tag(name string, attrs []AttrAssert, children ...ChildAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		tag, ok := e.(*ast.Tag)
		require.True(t, ok, "expected tag, got %T", e)
		assertTag(t, tag, name, false, attrs, children)
	}
}

func SelfClosing(name string, attrs ...AttrAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		tag, ok := e.(*ast.Tag)
		require.True(t, ok, "expected tag, got %T", e)
		assertTag(t, tag, name, true, attrs, nil)
	}
}

func assertTag(t *testing.T, tag *ast.Tag, name string, selfClosing bool, attrs []AttrAssert, children []ChildAssert) {
	require.Equal(t, name, tag.Name.Name)
	require.Equal(t, selfClosing, tag.SelfClosing, "self closing")
	require.Len(t, tag.Attributes, len(attrs), "number of attributes")
	for i := range attrs {
		attrs[i](t, tag.Attributes[i])
	}
	require.Len(t, tag.Children, len(children), "number of children")
	for i := range children {
		children[i](t, tag.Children[i])
	}
}

func ChildTag(tag ExprAssert) ChildAssert {
	return func(t *testing.T, c ast.Child) {
		e, ok := c.(*ast.Tag)
		require.True(t, ok, "expected tag child, got %T", c)
		tag(t, e)
	}
}

func Text(v string) ChildAssert {
	return func(t *testing.T, c ast.Child) {
		text, ok := c.(*ast.Text)
		require.True(t, ok, "expected text, got %T", c)
		require.Equal(t, v, text.Value)
	}
}

func Embedded(expr ExprAssert) ChildAssert {
	return func(t *testing.T, c ast.Child) {
		e, ok := c.(*ast.Embedded)
		require.True(t, ok, "expected embedded expression, got %T", c)
		expr(t, e.Expr)
	}
}

func Attr(name string) AttrAssert {
	return func(t *testing.T, a *ast.Attribute) {
		require.Equal(t, name, a.Name.Name)
		require.Nil(t, a.Value, "expected attribute without value")
	}
}

func StrAttr(name, value string) AttrAssert {
	return func(t *testing.T, a *ast.Attribute) {
		require.Equal(t, name, a.Name.Name)
		lit, ok := a.Value.(*ast.StringLiteral)
		require.True(t, ok, "expected string value, got %T", a.Value)
		require.Equal(t, value, lit.Value)
	}
}

func ExprAttr(name string, expr ExprAssert) AttrAssert {
	return func(t *testing.T, a *ast.Attribute) {
		require.Equal(t, name, a.Name.Name)
		e, ok := a.Value.(*ast.Embedded)
		require.True(t, ok, "expected embedded value, got %T", a.Value)
		expr(t, e.Expr)
	}
}

func Template(spans ...SpanAssert) ExprAssert {
	return func(t *testing.T, e ast.Expr) {
		lit, ok := e.(*ast.TemplateLiteral)
		require.True(t, ok, "expected template literal, got %T", e)
		require.Len(t, lit.Spans, len(spans), "number of spans")
		for i := range spans {
			spans[i](t, lit.Spans[i])
		}
	}
}

func TplText(v string) SpanAssert {
	return func(t *testing.T, s ast.TemplateSpan) {
		text, ok := s.(*ast.TemplateText)
		require.True(t, ok, "expected template text, got %T", s)
		require.Equal(t, v, text.Value)
	}
}

func TplExpr(expr ExprAssert) SpanAssert {
	return func(t *testing.T, s ast.TemplateSpan) {
		e, ok := s.(*ast.Embedded)
		require.True(t, ok, "expected embedded expression, got %T", s)
		expr(t, e.Expr)
	}
}

func Named(name string) TypeAssert {
	return func(t *testing.T, typ ast.TypeExpr) {
		n, ok := typ.(*ast.NamedType)
		require.True(t, ok, "expected named type, got %T", typ)
		require.Equal(t, name, n.Name.Name)
	}
}

func Optional(inner TypeAssert) TypeAssert {
	return func(t *testing.T, typ ast.TypeExpr) {
		opt, ok := typ.(*ast.OptionalType)
		require.True(t, ok, "expected optional type, got %T", typ)
		inner(t, opt.Inner)
	}
}

func Union(members ...TypeAssert) TypeAssert {
	return func(t *testing.T, typ ast.TypeExpr) {
		u, ok := typ.(*ast.UnionType)
		require.True(t, ok, "expected union type, got %T", typ)
		require.Len(t, u.Members, len(members), "number of members")
		for i := range members {
			members[i](t, u.Members[i])
		}
	}
}

// Enum asserts an enum declaration. members alternate names and values, an
// empty value means the member has no explicit value.
func Enum(name string, kind ast.EnumValueKind, members ...string) DeclAssert {
	return func(t *testing.T, d ast.Declaration) {
		enum, ok := d.(*ast.EnumDeclaration)
		require.True(t, ok, "expected enum, got %T", d)
		require.Equal(t, name, enum.Name.Name)
		require.Equal(t, kind, enum.Kind)
		require.Len(t, enum.Members, len(members)/2, "number of members")
		for i, m := range enum.Members {
			require.Equal(t, members[i*2], m.Name.Name)
			switch v := m.Value.(type) {
			case nil:
				require.Equal(t, "", members[i*2+1])
			case *ast.IntegerLiteral:
				require.Equal(t, members[i*2+1], v.Raw)
			case *ast.StringLiteral:
				require.Equal(t, members[i*2+1], v.Value)
			}
		}
	}
}

func Struct(name string, fields ...FieldAssert) DeclAssert {
	return func(t *testing.T, d ast.Declaration) {
		s, ok := d.(*ast.StructDeclaration)
		require.True(t, ok, "expected struct, got %T", d)
		require.Equal(t, name, s.Name.Name)
		assertFields(t, fields, s.Fields)
	}
}

func Interface(name string, fields ...FieldAssert) DeclAssert {
	return func(t *testing.T, d ast.Declaration) {
		s, ok := d.(*ast.InterfaceDeclaration)
		require.True(t, ok, "expected interface, got %T", d)
		require.Equal(t, name, s.Name.Name)
		assertFields(t, fields, s.Fields)
	}
}

func Field(name string, typ TypeAssert) FieldAssert {
	return func(t *testing.T, f *ast.Field) {
		require.Equal(t, name, f.Name.Name)
		typ(t, f.Type)
	}
}

func assertFields(t *testing.T, expected []FieldAssert, fields []*ast.Field) {
	require.Len(t, fields, len(expected), "number of fields")
	for i := range expected {
		expected[i](t, fields[i])
	}
}

func Component(name string, params []ParamAssert, result TypeAssert, body ExprAssert) DeclAssert {
	return func(t *testing.T, d ast.Declaration) {
		c, ok := d.(*ast.ComponentDeclaration)
		require.True(t, ok, "expected component, got %T", d)
		require.Equal(t, name, c.Name.Name)
		require.Len(t, c.Params, len(params), "number of parameters")
		for i := range params {
			params[i](t, c.Params[i])
		}

		if result != nil {
			result(t, c.Result)
		} else {
			require.Nil(t, c.Result, "expected no result type")
		}

		body(t, c.Body)
	}
}

func Param(name string, typ TypeAssert, def ExprAssert) ParamAssert {
	return func(t *testing.T, p *ast.Parameter) {
		require.Equal(t, name, p.Name.Name)
		typ(t, p.Type)
		if def != nil {
			def(t, p.Default)
		} else {
			require.Nil(t, p.Default, "expected no default value")
		}
	}
}

func assertIdents(t *testing.T, expected []string, idents []*ast.Identifier) {
	require.Len(t, idents, len(expected), "number of identifiers")
	for i := range expected {
		require.Equal(t, expected[i], idents[i].Name)
	}
}
