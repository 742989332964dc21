// Package types resolves and validates the static type of every expression
// and declaration of a parsed module.
package types

import (
	"bytes"
	"fmt"

	"github.com/packagefactory/componentengine/ast"
)

// Type is the static type of a value.
type Type interface {
	fmt.Stringer
	isType()
}

// Kind identifies a primitive type.
type Kind byte

const (
	String Kind = iota
	Integer
	Boolean
	Null
)

var kindNames = [...]string{
	String:  "String",
	Integer: "Integer",
	Boolean: "Boolean",
	Null:    "Null",
}

func (k Kind) String() string { return kindNames[k] }

// Primitive is one of the parameterless built-in types. There is a single
// instance of each primitive per Registry.
type Primitive struct {
	kind Kind
}

func (p *Primitive) Kind() Kind      { return p.kind }
func (p *Primitive) String() string { return p.kind.String() }
func (*Primitive) isType()          {}

// MarkupType is the opaque type of tags.
type MarkupType struct{}

func (*MarkupType) String() string { return "Markup" }
func (*MarkupType) isType()        {}

// Enum is the static type of an enum declaration, that is, the type of the
// enum name itself. Its members are values of type Instance().
type Enum struct {
	Name    *Name
	Decl    *ast.EnumDeclaration
	Kind    ast.EnumValueKind
	Members []*EnumMember

	instance *EnumInstance
}

func newEnum(name *Name, decl *ast.EnumDeclaration) *Enum {
	e := &Enum{Name: name, Decl: decl, Kind: decl.Kind}
	e.instance = &EnumInstance{e}
	return e
}

func (e *Enum) String() string { return "enum " + e.Name.Value }
func (*Enum) isType()          {}

// Instance returns the type of the members of the enum.
func (e *Enum) Instance() *EnumInstance { return e.instance }

// Member returns the member with the given name, or nil.
func (e *Enum) Member(name string) *EnumMember {
	for _, m := range e.Members {
		if m.Name.Value == name {
			return m
		}
	}
	return nil
}

func (e *Enum) memberNames() []string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.Name.Value
	}
	return names
}

// EnumMember is a named value of an enum. Integer members carry their value in
// Int and string members in Str.
type EnumMember struct {
	Enum *Enum
	Name *Name
	Int  int64
	Str  string
}

// Value returns the value of the member as written in the source.
func (m *EnumMember) Value() string {
	if m.Enum.Kind == ast.StringValues {
		return fmt.Sprintf("%q", m.Str)
	}
	return fmt.Sprint(m.Int)
}

func (m *EnumMember) String() string {
	return m.Enum.Name.Value + "." + m.Name.Value
}

// EnumInstance is the type of the members of an enum.
type EnumInstance struct {
	Enum *Enum
}

func (i *EnumInstance) String() string { return i.Enum.Name.Value }
func (*EnumInstance) isType()          {}

// Field is a named and typed field of a struct or an interface.
type Field struct {
	Name *Name
	Type Type
}

type fieldList []*Field

func (l fieldList) field(name string) *Field {
	for _, f := range l {
		if f.Name.Value == name {
			return f
		}
	}
	return nil
}

func (l fieldList) names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name.Value
	}
	return names
}

// Struct is the type of the values of a struct declaration.
type Struct struct {
	Name   *Name
	Decl   *ast.StructDeclaration
	Fields []*Field
}

func (s *Struct) String() string { return s.Name.Value }
func (*Struct) isType()          {}

// Field returns the field with the given name, or nil.
func (s *Struct) Field(name string) *Field { return fieldList(s.Fields).field(name) }

// Interface is the type of the values of an interface declaration.
type Interface struct {
	Name   *Name
	Decl   *ast.InterfaceDeclaration
	Fields []*Field
}

func (i *Interface) String() string { return i.Name.Value }
func (*Interface) isType()          {}

// Field returns the field with the given name, or nil.
func (i *Interface) Field(name string) *Field { return fieldList(i.Fields).field(name) }

// Param is a parameter of a component.
type Param struct {
	Name *Name
	Type Type
	// HasDefault reports whether the parameter declares a default value.
	HasDefault bool
}

// Required reports whether the parameter must be given when the component is
// used.
func (p *Param) Required() bool {
	return !p.HasDefault && !containsKind(p.Type, Null)
}

// Component is the type of a component declaration.
type Component struct {
	Name   *Name
	Decl   *ast.ComponentDeclaration
	Params []*Param
	// Result is the declared result type or, if there is none, the type of
	// the body.
	Result Type
}

func (c *Component) String() string { return "component " + c.Name.Value }
func (*Component) isType()          {}

// Param returns the parameter with the given name, or nil.
func (c *Component) Param(name string) *Param {
	for _, p := range c.Params {
		if p.Name.Value == name {
			return p
		}
	}
	return nil
}

func (c *Component) paramNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name.Value
	}
	return names
}

// Union is a set of alternative types. Unions are always flat and have at
// least two members.
type Union struct {
	Members []Type
}

func (u *Union) String() string {
	var buf bytes.Buffer
	for i, m := range u.Members {
		if i > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString(m.String())
	}
	return buf.String()
}

func (*Union) isType() {}

// Contains reports whether t is one of the members of the union.
func (u *Union) Contains(t Type) bool {
	for _, m := range u.Members {
		if Equal(m, t) {
			return true
		}
	}
	return false
}

// NewUnion returns the union of the given types. Nested unions are flattened
// and repeated members removed. A union of a single type is that type.
func NewUnion(types ...Type) Type {
	var members []Type
	add := func(t Type) {
		for _, m := range members {
			if Equal(m, t) {
				return
			}
		}
		members = append(members, t)
	}

	for _, t := range types {
		if u, ok := t.(*Union); ok {
			for _, m := range u.Members {
				add(m)
			}
		} else {
			add(t)
		}
	}

	switch len(members) {
	case 0:
		panic("types: union of no types")
	case 1:
		return members[0]
	}
	return &Union{members}
}

// Equal reports whether a and b are the same type. All types are only equal
// to themselves, except unions, which are equal if they have the same set of
// members.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}

	ua, ok := a.(*Union)
	if !ok {
		return false
	}
	ub, ok := b.(*Union)
	if !ok || len(ua.Members) != len(ub.Members) {
		return false
	}

	for _, m := range ua.Members {
		if !ub.Contains(m) {
			return false
		}
	}
	return true
}

// Assignable reports whether a value of type from can be used where a value
// of type to is expected.
func Assignable(from, to Type) bool {
	if Equal(from, to) {
		return true
	}

	u, ok := to.(*Union)
	if !ok {
		return false
	}

	for _, m := range members(from) {
		if !u.Contains(m) {
			return false
		}
	}
	return true
}

// Comparable reports whether values of types a and b can be compared with
// each other.
func Comparable(a, b Type) bool {
	return Assignable(a, b) || Assignable(b, a)
}

// members returns the members of t if it is a union, or t itself otherwise.
func members(t Type) []Type {
	if u, ok := t.(*Union); ok {
		return u.Members
	}
	return []Type{t}
}

func containsKind(t Type, k Kind) bool {
	for _, m := range members(t) {
		if p, ok := m.(*Primitive); ok && p.kind == k {
			return true
		}
	}
	return false
}

// without returns the union of the members of t that are not of kind k, or
// nil if there are none.
func without(t Type, k Kind) Type {
	var rest []Type
	for _, m := range members(t) {
		if p, ok := m.(*Primitive); ok && p.kind == k {
			continue
		}
		rest = append(rest, m)
	}

	if len(rest) == 0 {
		return nil
	}
	return NewUnion(rest...)
}

// IsBoolean reports whether values of type t can be used as conditions.
func IsBoolean(t Type) bool {
	return containsKind(t, Boolean) || containsKind(t, Null)
}

// IsRenderable reports whether values of type t can be rendered inside a tag.
func IsRenderable(t Type) bool {
	return renderable(t, true)
}

func renderable(t Type, markup bool) bool {
	for _, m := range members(t) {
		switch m.(type) {
		case *Primitive, *EnumInstance:
		case *MarkupType:
			if !markup {
				return false
			}
		default:
			return false
		}
	}
	return true
}
