package ast

import (
	"strconv"
	"strings"

	"github.com/packagefactory/componentengine/token"
)

// Expr is an expression node.
type Expr interface {
	Node
	isExpr()
}

// NullLiteral is the "null" literal.
type NullLiteral struct {
	rng token.Range
}

// NewNullLiteral creates a new null literal.
func NewNullLiteral(rng token.Range) *NullLiteral {
	return &NullLiteral{rng}
}

func (l *NullLiteral) Range() token.Range { return l.rng }
func (*NullLiteral) isExpr()              {}

// BooleanLiteral is either "true" or "false".
type BooleanLiteral struct {
	Value bool
	rng   token.Range
}

// NewBooleanLiteral creates a new boolean literal.
func NewBooleanLiteral(value bool, rng token.Range) *BooleanLiteral {
	return &BooleanLiteral{value, rng}
}

func (l *BooleanLiteral) Range() token.Range { return l.rng }
func (*BooleanLiteral) isExpr()              {}

// IntegerBase is the numeric base an integer literal is written in.
type IntegerBase int

const (
	Decimal     IntegerBase = 10
	Binary      IntegerBase = 2
	Octal       IntegerBase = 8
	Hexadecimal IntegerBase = 16
)

var basePrefixes = map[IntegerBase]string{
	Binary:      "0b",
	Octal:       "0o",
	Hexadecimal: "0x",
}

func (b IntegerBase) String() string {
	switch b {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Hexadecimal:
		return "hexadecimal"
	default:
		return "decimal"
	}
}

// IntegerLiteral is an integer written in any base.
type IntegerLiteral struct {
	Value int64
	Base  IntegerBase
	// Raw is the literal as written in the source.
	Raw string
	rng token.Range
}

// NewIntegerLiteral parses the given raw integer literal, including its base
// prefix if any.
func NewIntegerLiteral(raw string, rng token.Range) (*IntegerLiteral, error) {
	base, digits := Decimal, raw
	if len(raw) > 2 {
		for b, prefix := range basePrefixes {
			if strings.HasPrefix(raw, prefix) {
				base, digits = b, raw[2:]
				break
			}
		}
	}

	value, err := strconv.ParseInt(digits, int(base), 64)
	if err != nil {
		return nil, structuralError(rng, "%q is not a valid %s integer.", raw, base)
	}

	return &IntegerLiteral{value, base, raw, rng}, nil
}

func (l *IntegerLiteral) Range() token.Range { return l.rng }
func (*IntegerLiteral) isExpr()              {}

// StringLiteral is a double quoted string.
type StringLiteral struct {
	// Value is the unescaped contents of the string.
	Value string
	rng   token.Range
}

// NewStringLiteral creates a new string literal with the already unescaped
// value.
func NewStringLiteral(value string, rng token.Range) *StringLiteral {
	return &StringLiteral{value, rng}
}

func (l *StringLiteral) Range() token.Range { return l.rng }
func (*StringLiteral) isExpr()              {}
func (*StringLiteral) isAttributeValue()    {}

// TemplateSpan is a part of a template literal: either text or an embedded
// expression.
type TemplateSpan interface {
	Node
	isTemplateSpan()
}

// TemplateText is literal text of a template, already unescaped.
type TemplateText struct {
	Value string
	rng   token.Range
}

// NewTemplateText creates a new template text span.
func NewTemplateText(value string, rng token.Range) *TemplateText {
	return &TemplateText{value, rng}
}

func (t *TemplateText) Range() token.Range { return t.rng }
func (*TemplateText) isTemplateSpan()      {}

// TemplateLiteral is a backtick delimited string that can embed expressions.
type TemplateLiteral struct {
	Spans []TemplateSpan
	rng   token.Range
}

// NewTemplateLiteral creates a new template literal.
func NewTemplateLiteral(spans []TemplateSpan, rng token.Range) (*TemplateLiteral, error) {
	children := make([]Node, len(spans))
	for i, s := range spans {
		children[i] = s
	}

	if err := within(rng, children...); err != nil {
		return nil, err
	}

	return &TemplateLiteral{spans, rng}, nil
}

func (l *TemplateLiteral) Range() token.Range { return l.rng }
func (*TemplateLiteral) isExpr()              {}

// ValueReference is a reference to a name in scope, optionally followed by
// member accesses, such as "Color.RED" or "point.x".
type ValueReference struct {
	Name    *Identifier
	Members []*Identifier
	rng     token.Range
}

// NewValueReference creates a new reference. Its range goes from the name to
// the last member.
func NewValueReference(name *Identifier, members ...*Identifier) *ValueReference {
	rng := name.Range()
	if len(members) > 0 {
		rng = token.Span(rng, members[len(members)-1].Range())
	}
	return &ValueReference{name, members, rng}
}

func (r *ValueReference) Range() token.Range { return r.rng }
func (*ValueReference) isExpr()              {}

func (r *ValueReference) String() string {
	parts := []string{r.Name.Name}
	for _, m := range r.Members {
		parts = append(parts, m.Name)
	}
	return strings.Join(parts, ".")
}

// BinaryOperator is an operator with two operands.
type BinaryOperator byte

const (
	NullishCoalescing BinaryOperator = iota
	And
	Or
	Equal
	NotEqual
	Greater
	GreaterEqual
	Less
	LessEqual
)

var binaryOperators = [...]string{
	NullishCoalescing: "??",
	And:               "and",
	Or:                "or",
	Equal:             "=",
	NotEqual:          "!=",
	Greater:           ">",
	GreaterEqual:      ">=",
	Less:              "<",
	LessEqual:         "<=",
}

func (o BinaryOperator) String() string { return binaryOperators[o] }

// IsComparison reports whether the operator compares the order of its
// operands.
func (o BinaryOperator) IsComparison() bool {
	return o >= Greater && o <= LessEqual
}

// IsEquality reports whether the operator compares its operands for
// equality.
func (o BinaryOperator) IsEquality() bool {
	return o == Equal || o == NotEqual
}

// BinaryOperation is an operation with two operands.
type BinaryOperation struct {
	Operator BinaryOperator
	Left     Expr
	Right    Expr
	rng      token.Range
}

// NewBinaryOperation creates a new binary operation, which spans from its left
// operand to its right operand.
func NewBinaryOperation(op BinaryOperator, left, right Expr) (*BinaryOperation, error) {
	rng := token.Span(left.Range(), right.Range())
	if !rng.IsValid() || right.Range().Start.Before(left.Range().End) {
		return nil, structuralError(rng, "The operands of %s are out of order.", op)
	}

	return &BinaryOperation{op, left, right, rng}, nil
}

func (o *BinaryOperation) Range() token.Range { return o.rng }
func (*BinaryOperation) isExpr()              {}

// UnaryOperator is an operator with a single operand.
type UnaryOperator byte

const (
	Not UnaryOperator = iota
)

func (o UnaryOperator) String() string { return "not" }

// UnaryOperation is an operation with a single operand.
type UnaryOperation struct {
	Operator UnaryOperator
	Operand  Expr
	rng      token.Range
}

// NewUnaryOperation creates a new unary operation. The range must include
// the operator.
func NewUnaryOperation(op UnaryOperator, operand Expr, rng token.Range) (*UnaryOperation, error) {
	if err := within(rng, operand); err != nil {
		return nil, err
	}
	return &UnaryOperation{op, operand, rng}, nil
}

func (o *UnaryOperation) Range() token.Range { return o.rng }
func (*UnaryOperation) isExpr()              {}

// TernaryOperation is "condition ? trueBranch : falseBranch".
type TernaryOperation struct {
	Condition   Expr
	TrueBranch  Expr
	FalseBranch Expr
	rng         token.Range
}

// NewTernaryOperation creates a new ternary operation. Its range goes from
// the start of the condition to the end of the false branch.
func NewTernaryOperation(cond, trueBranch, falseBranch Expr) (*TernaryOperation, error) {
	rng := token.Span(cond.Range(), falseBranch.Range())
	if err := within(rng, trueBranch); err != nil {
		return nil, err
	}
	return &TernaryOperation{cond, trueBranch, falseBranch, rng}, nil
}

func (o *TernaryOperation) Range() token.Range { return o.rng }
func (*TernaryOperation) isExpr()              {}

// MatchArm is a single arm of a match. Default arms have no patterns.
type MatchArm struct {
	Patterns []Expr
	Default  bool
	Body     Expr
	rng      token.Range
}

// NewMatchArm creates an arm that is taken when the subject equals any of
// the patterns.
func NewMatchArm(patterns []Expr, body Expr, rng token.Range) (*MatchArm, error) {
	if len(patterns) == 0 {
		return nil, structuralError(rng, "A match arm needs at least one pattern.")
	}

	children := make([]Node, 0, len(patterns)+1)
	for _, p := range patterns {
		children = append(children, p)
	}

	if err := within(rng, append(children, body)...); err != nil {
		return nil, err
	}

	return &MatchArm{patterns, false, body, rng}, nil
}

// NewDefaultArm creates an arm that is taken when no other arm is.
func NewDefaultArm(body Expr, rng token.Range) (*MatchArm, error) {
	if err := within(rng, body); err != nil {
		return nil, err
	}
	return &MatchArm{nil, true, body, rng}, nil
}

func (a *MatchArm) Range() token.Range { return a.rng }

// Match selects the body of the first arm whose pattern equals the subject.
type Match struct {
	Subject Expr
	Arms    []*MatchArm
	rng     token.Range
}

// NewMatch creates a new match, which needs at least one arm and can have at
// most one default arm.
func NewMatch(subject Expr, arms []*MatchArm, rng token.Range) (*Match, error) {
	if len(arms) == 0 {
		return nil, structuralError(rng, "A match needs at least one arm.")
	}

	children := []Node{subject}
	var hasDefault bool
	for _, a := range arms {
		if a.Default {
			if hasDefault {
				return nil, structuralError(a.Range(), "A match can only have one default arm.")
			}
			hasDefault = true
		}
		children = append(children, a)
	}

	if err := within(rng, children...); err != nil {
		return nil, err
	}

	return &Match{subject, arms, rng}, nil
}

func (m *Match) Range() token.Range { return m.rng }
func (*Match) isExpr()              {}

// DefaultArm returns the default arm of the match, or nil.
func (m *Match) DefaultArm() *MatchArm {
	for _, a := range m.Arms {
		if a.Default {
			return a
		}
	}
	return nil
}
