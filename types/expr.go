package types

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/report"
)

// expr resolves the type of an expression and records it.
func (c *checker) expr(e ast.Expr, scope *Scope) Type {
	t := c.resolve(e, scope)
	c.info.Types[e] = t
	glog.V(5).Infof("%s: %T has type %s", e.Range(), e, t)
	return t
}

func (c *checker) resolve(e ast.Expr, scope *Scope) Type {
	switch e := e.(type) {
	case *ast.NullLiteral:
		return c.primitive(Null)

	case *ast.BooleanLiteral:
		return c.primitive(Boolean)

	case *ast.IntegerLiteral:
		return c.primitive(Integer)

	case *ast.StringLiteral:
		return c.primitive(String)

	case *ast.TemplateLiteral:
		for _, s := range e.Spans {
			if emb, ok := s.(*ast.Embedded); ok {
				t := c.expr(emb.Expr, scope)
				if !renderable(t, false) {
					c.errorf(emb, report.NotRenderable, "A value of type %s cannot be used in a template.", t)
				}
			}
		}
		return c.primitive(String)

	case *ast.ValueReference:
		return c.reference(e, scope)

	case *ast.UnaryOperation:
		t := c.expr(e.Operand, scope)
		if !IsBoolean(t) {
			c.errorf(
				e.Operand,
				report.InvalidCondition,
				"The operand of %s has type %s, which cannot be used as a boolean.",
				e.Operator, t,
			)
		}
		return c.primitive(Boolean)

	case *ast.BinaryOperation:
		return c.binary(e, scope)

	case *ast.TernaryOperation:
		cond := c.expr(e.Condition, scope)
		if !IsBoolean(cond) {
			c.errorf(
				e.Condition,
				report.InvalidCondition,
				"The condition has type %s, which cannot be used as a boolean.",
				cond,
			)
		}
		return NewUnion(c.expr(e.TrueBranch, scope), c.expr(e.FalseBranch, scope))

	case *ast.Match:
		return c.match(e, scope)

	case *ast.Tag:
		return c.tag(e, scope)
	}
	panic(fmt.Sprintf("types: unknown expression %T", e))
}

func (c *checker) reference(ref *ast.ValueReference, scope *Scope) Type {
	name := ref.Name.Name
	t := scope.Lookup(name)
	if t == nil {
		c.errorf(
			ref.Name,
			report.UnknownIdentifier,
			"I cannot find a value named %q.%s",
			name, suggest(name, scope.Names()),
		)
	}

	for _, m := range ref.Members {
		t = c.member(ref, t, m)
	}
	return t
}

func fieldsOf(t Type) (fieldList, bool) {
	switch t := t.(type) {
	case *Struct:
		return t.Fields, true
	case *Interface:
		return t.Fields, true
	}
	return nil, false
}

// member resolves the access to the member m of a value of type t.
func (c *checker) member(ref *ast.ValueReference, t Type, m *ast.Identifier) Type {
	if e, ok := t.(*Enum); ok {
		member := e.Member(m.Name)
		if member == nil {
			c.errorf(
				m,
				report.UnknownMember,
				"The enum %s has no member named %q.%s",
				e.Name, m.Name, suggest(m.Name, e.memberNames()),
			)
		}
		c.info.Members[ref] = member
		return e.Instance()
	}

	if fields, ok := fieldsOf(t); ok {
		if f := fields.field(m.Name); f != nil {
			return f.Type
		}
		c.errorf(
			m,
			report.UnknownMember,
			"%s has no field named %q.%s",
			t, m.Name, suggest(m.Name, fields.names()),
		)
	}

	if containsKind(t, Null) {
		c.errorf(
			m,
			report.UnknownMember,
			"A value of type %s may be null, so I cannot access its member %q.",
			t, m.Name,
		)
	}

	c.errorf(m, report.UnknownMember, "A value of type %s has no member named %q.", t, m.Name)
	return nil
}

func (c *checker) binary(e *ast.BinaryOperation, scope *Scope) Type {
	left := c.expr(e.Left, scope)
	right := c.expr(e.Right, scope)

	switch {
	case e.Operator.IsComparison(), e.Operator.IsEquality():
		if !Comparable(left, right) {
			c.errorf(
				e,
				report.IncompatibleOperands,
				"I cannot compare a value of type %s with a value of type %s using %s.",
				left, right, e.Operator,
			)
		}
		return c.primitive(Boolean)

	case e.Operator == ast.NullishCoalescing:
		if rest := without(left, Null); rest != nil {
			return NewUnion(rest, right)
		}
		return right
	}

	return NewUnion(left, right)
}

func (c *checker) match(e *ast.Match, scope *Scope) Type {
	subject := c.expr(e.Subject, scope)
	covered := newStrSet()

	bodies := make([]Type, len(e.Arms))
	for i, arm := range e.Arms {
		for _, p := range arm.Patterns {
			t := c.expr(p, scope)
			if !Comparable(t, subject) {
				c.errorf(
					p,
					report.IncompatiblePattern,
					"This pattern has type %s, but the value matched has type %s.",
					t, subject,
				)
			}

			ref, ok := p.(*ast.ValueReference)
			if !ok {
				continue
			}
			if member := c.info.Members[ref]; member != nil && !covered.add(member.Name.Value) {
				c.errorf(p, report.DuplicateArm, "%s is matched more than once.", member)
			}
		}
		bodies[i] = c.expr(arm.Body, scope)
	}

	if e.DefaultArm() == nil {
		c.exhaustive(e, subject, covered)
	}
	return NewUnion(bodies...)
}

// exhaustive fails unless the covered members are all the members of the
// enum of the subject. Only matches over enums can go without default arm.
func (c *checker) exhaustive(e *ast.Match, subject Type, covered *strSet) {
	inst, ok := subject.(*EnumInstance)
	if !ok {
		c.errorf(
			e,
			report.NonExhaustiveMatch,
			"This match over a value of type %s needs a default arm.",
			subject,
		)
	}

	var missing []string
	for _, m := range inst.Enum.Members {
		if !covered.contains(m.Name.Value) {
			missing = append(missing, m.Name.Value)
		}
	}

	if len(missing) > 0 {
		c.errorf(
			e,
			report.NonExhaustiveMatch,
			"This match does not cover %s of %s, add arms for them or a default arm.",
			quoteAll(missing), inst,
		)
	}
}

func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func (c *checker) tag(e *ast.Tag, scope *Scope) Type {
	name := e.Name.Name
	if isComponentName(name) {
		t := scope.Lookup(name)
		if t == nil {
			c.errorf(
				e.Name,
				report.UnknownIdentifier,
				"I cannot find a component named %q.%s",
				name, suggest(name, scope.Names()),
			)
		}

		comp, ok := t.(*Component)
		if !ok {
			c.errorf(e.Name, report.NotRenderable, "%q has type %s, so it cannot be used as a tag.", name, t)
		}
		c.componentAttributes(e, comp, scope)
	} else {
		for _, a := range e.Attributes {
			if t := c.attributeValue(a, scope); !IsRenderable(t) {
				c.errorf(a, report.NotRenderable, "A value of type %s cannot be used as an attribute.", t)
			}
		}
	}

	for _, child := range e.Children {
		switch child := child.(type) {
		case *ast.Text:
		case *ast.Embedded:
			if t := c.expr(child.Expr, scope); !IsRenderable(t) {
				c.errorf(child, report.NotRenderable, "A value of type %s cannot be rendered.", t)
			}
		case *ast.Tag:
			c.expr(child, scope)
		}
	}

	return c.reg.Markup()
}

func (c *checker) attributeValue(a *ast.Attribute, scope *Scope) Type {
	switch v := a.Value.(type) {
	case nil:
		return c.primitive(Boolean)
	case *ast.StringLiteral:
		return c.expr(v, scope)
	case *ast.Embedded:
		return c.expr(v.Expr, scope)
	}
	panic(fmt.Sprintf("types: unknown attribute value %T", a.Value))
}

// componentAttributes checks the attributes of a tag against the parameters
// of the component it renders.
func (c *checker) componentAttributes(e *ast.Tag, comp *Component, scope *Scope) {
	for _, a := range e.Attributes {
		param := comp.Param(a.Name.Name)
		if param == nil {
			c.errorf(
				a.Name,
				report.UnknownAttribute,
				"The component %s has no parameter named %q.%s",
				comp.Name, a.Name.Name, suggest(a.Name.Name, comp.paramNames()),
			)
		}

		t := c.attributeValue(a, scope)
		if !Assignable(t, param.Type) {
			c.errorf(
				a,
				report.IncompatibleAttribute,
				"The parameter %q of %s has type %s, but it was given a value of type %s.",
				a.Name.Name, comp.Name, param.Type, t,
			)
		}
	}

	for _, p := range comp.Params {
		if p.Required() && e.Attribute(p.Name.Value) == nil {
			c.errorf(
				e.Name,
				report.MissingAttribute,
				"The component %s requires the parameter %q.",
				comp.Name, p.Name.Value,
			)
		}
	}
}
